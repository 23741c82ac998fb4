//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goeat-api/internal/handler/api"
	"goeat-api/internal/usecase/commands"
	"goeat-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubAuthCommands struct {
	registerFn func(req commands.RegisterRequest) (*commands.AuthResult, error)
	loginFn    func(req commands.LoginRequest) (*commands.AuthResult, error)
}

func (s *stubAuthCommands) Register(_ context.Context, req commands.RegisterRequest) (*commands.AuthResult, error) {
	return s.registerFn(req)
}

func (s *stubAuthCommands) Login(_ context.Context, req commands.LoginRequest) (*commands.AuthResult, error) {
	return s.loginFn(req)
}

type stubUserQueries struct {
	currentFn func(userID uuid.UUID) (*queries.AuthorizedUserView, error)
}

func (s *stubUserQueries) GetCurrentUser(_ context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	return s.currentFn(userID)
}

type AuthHandlerSuite struct {
	suite.Suite
	router *gin.Engine
	cmds   *stubAuthCommands
	q      *stubUserQueries
	userID uuid.UUID
}

func (s *AuthHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.cmds = &stubAuthCommands{}
	s.q = &stubUserQueries{}
	s.userID = uuid.New()

	h := api.NewAuthHandler(s.cmds, s.q)
	s.router.POST("/auth/register", h.Register)
	s.router.POST("/auth/login", h.Login)
	s.router.GET("/auth/me", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
		h.Me(c)
	})
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) do(method, url, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerSuite) TestRegister() {
	s.Run("valid registration returns 201 with a token", func() {
		s.cmds.registerFn = func(req commands.RegisterRequest) (*commands.AuthResult, error) {
			s.Equal("new@example.com", req.Email)
			return &commands.AuthResult{UserID: s.userID, Role: "customer", AccessToken: "tok"}, nil
		}

		w := s.do(http.MethodPost, "/auth/register",
			`{"email":"new@example.com","password":"password123","name":"New"}`, nil)

		s.Equal(http.StatusCreated, w.Code)
		var body map[string]any
		s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal("tok", body["access_token"])
		s.Equal("customer", body["role"])
	})

	s.Run("taken email returns 409", func() {
		s.cmds.registerFn = func(commands.RegisterRequest) (*commands.AuthResult, error) {
			return nil, commands.ErrEmailTaken
		}

		w := s.do(http.MethodPost, "/auth/register",
			`{"email":"taken@example.com","password":"password123","name":"Late"}`, nil)

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("malformed body returns 400 before the command runs", func() {
		s.cmds.registerFn = func(commands.RegisterRequest) (*commands.AuthResult, error) {
			s.FailNow("command must not run")
			return nil, nil
		}

		w := s.do(http.MethodPost, "/auth/register", `{"email":"nope"`, nil)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("binding enforces the password minimum", func() {
		w := s.do(http.MethodPost, "/auth/register",
			`{"email":"a@example.com","password":"short","name":"N"}`, nil)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *AuthHandlerSuite) TestLogin() {
	s.Run("valid credentials return 200", func() {
		s.cmds.loginFn = func(req commands.LoginRequest) (*commands.AuthResult, error) {
			return &commands.AuthResult{UserID: s.userID, Role: "customer", AccessToken: "tok"}, nil
		}

		w := s.do(http.MethodPost, "/auth/login",
			`{"email":"diner@example.com","password":"password123"}`, nil)

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("bad credentials return 401", func() {
		s.cmds.loginFn = func(commands.LoginRequest) (*commands.AuthResult, error) {
			return nil, commands.ErrInvalidCredentials
		}

		w := s.do(http.MethodPost, "/auth/login",
			`{"email":"diner@example.com","password":"wrong-one"}`, nil)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *AuthHandlerSuite) TestMe() {
	s.Run("authenticated user sees their profile", func() {
		s.q.currentFn = func(userID uuid.UUID) (*queries.AuthorizedUserView, error) {
			s.Equal(s.userID, userID)
			return &queries.AuthorizedUserView{ID: userID, Email: "diner@example.com", IsActive: true}, nil
		}

		w := s.do(http.MethodGet, "/auth/me", "", map[string]string{"Authorization": "Bearer tok"})

		s.Equal(http.StatusOK, w.Code)
		var body map[string]any
		s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal("diner@example.com", body["email"])
	})

	s.Run("missing auth context returns 401", func() {
		w := s.do(http.MethodGet, "/auth/me", "", nil)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
