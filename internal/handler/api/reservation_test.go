//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/domain/user"
	"goeat-api/internal/handler/api"
	"goeat-api/internal/usecase/commands"
	"goeat-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubReservationCommands struct {
	createFn       func(req commands.CreateReservationRequest, userID, key uuid.UUID) (*commands.CreateReservationResult, error)
	updateStatusFn func(id uuid.UUID, next reservation.Status, actorID uuid.UUID, actorRole string) error
	cancelFn       func(id, actorID uuid.UUID, actorRole string) error
}

func (s *stubReservationCommands) Create(_ context.Context, req commands.CreateReservationRequest, userID, key uuid.UUID) (*commands.CreateReservationResult, error) {
	return s.createFn(req, userID, key)
}

func (s *stubReservationCommands) UpdateStatus(_ context.Context, id uuid.UUID, next reservation.Status, actorID uuid.UUID, actorRole string) error {
	return s.updateStatusFn(id, next, actorID, actorRole)
}

func (s *stubReservationCommands) Cancel(_ context.Context, id, actorID uuid.UUID, actorRole string) error {
	return s.cancelFn(id, actorID, actorRole)
}

type stubReservationQueries struct {
	getFn          func(actorID uuid.UUID, actorRole string, id uuid.UUID) (*queries.ReservationView, error)
	availabilityFn func(restaurantID uuid.UUID, date time.Time) (*queries.AvailabilityView, error)
}

func (s *stubReservationQueries) GetByID(_ context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*queries.ReservationView, error) {
	return s.getFn(actorID, actorRole, id)
}

func (s *stubReservationQueries) ListByUser(_ context.Context, _ uuid.UUID, _ *queries.Cursor, _ int) ([]*queries.ReservationView, *queries.Cursor, error) {
	return nil, nil, nil
}

func (s *stubReservationQueries) ListByRestaurant(_ context.Context, _ uuid.UUID, _ string, _ uuid.UUID, _ time.Time) ([]*queries.ReservationView, error) {
	return nil, nil
}

func (s *stubReservationQueries) Availability(_ context.Context, restaurantID uuid.UUID, date time.Time) (*queries.AvailabilityView, error) {
	return s.availabilityFn(restaurantID, date)
}

type ReservationHandlerSuite struct {
	suite.Suite
	router *gin.Engine
	cmds   *stubReservationCommands
	q      *stubReservationQueries
	userID uuid.UUID
}

func (s *ReservationHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.cmds = &stubReservationCommands{}
	s.q = &stubReservationQueries{}
	s.userID = uuid.New()

	h := api.NewReservationHandler(s.cmds, s.q)

	authed := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
	}
	s.router.POST("/reservations", authed, h.Create)
	s.router.DELETE("/reservations/:id", authed, h.Cancel)
	s.router.GET("/restaurants/:id/reservations/availability", h.Availability)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerSuite))
}

func (s *ReservationHandlerSuite) post(url, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

const validCreateBody = `{"restaurant_id":"7f9b0da2-63c4-4dbb-8f42-9302fa0c1a58","date":"2026-09-10","time_slot":"19:00","party_size":2}`

func (s *ReservationHandlerSuite) TestCreate() {
	reservationID := uuid.New()
	key := uuid.NewString()

	view := &queries.ReservationView{ID: reservationID, UserID: s.userID, TimeSlot: "19:00", Status: "pending"}

	s.Run("fresh request returns 201", func() {
		s.cmds.createFn = func(req commands.CreateReservationRequest, userID, gotKey uuid.UUID) (*commands.CreateReservationResult, error) {
			s.Equal(s.userID, userID)
			s.Equal(key, gotKey.String())
			s.Equal("19:00", req.TimeSlot)
			return &commands.CreateReservationResult{ReservationID: reservationID}, nil
		}
		s.q.getFn = func(_ uuid.UUID, _ string, id uuid.UUID) (*queries.ReservationView, error) {
			s.Equal(reservationID, id)
			return view, nil
		}

		w := s.post("/reservations", validCreateBody, map[string]string{"Idempotency-Key": key})

		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("replayed request returns 200 with the original reservation", func() {
		s.cmds.createFn = func(_ commands.CreateReservationRequest, _, _ uuid.UUID) (*commands.CreateReservationResult, error) {
			return &commands.CreateReservationResult{ReservationID: reservationID, IsReplayed: true}, nil
		}
		s.q.getFn = func(_ uuid.UUID, _ string, _ uuid.UUID) (*queries.ReservationView, error) {
			return view, nil
		}

		w := s.post("/reservations", validCreateBody, map[string]string{"Idempotency-Key": key})

		s.Equal(http.StatusOK, w.Code)
		var body queries.ReservationView
		s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal(reservationID, body.ID)
	})

	s.Run("missing idempotency key is a 400", func() {
		w := s.post("/reservations", validCreateBody, nil)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("non-UUID idempotency key is a 400", func() {
		w := s.post("/reservations", validCreateBody, map[string]string{"Idempotency-Key": "first-try"})

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("booked slot maps to 400", func() {
		s.cmds.createFn = func(_ commands.CreateReservationRequest, _, _ uuid.UUID) (*commands.CreateReservationResult, error) {
			return nil, commands.ErrReservationConflict
		}

		w := s.post("/reservations", validCreateBody, map[string]string{"Idempotency-Key": key})

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("key reuse with a different payload maps to 409", func() {
		s.cmds.createFn = func(_ commands.CreateReservationRequest, _, _ uuid.UUID) (*commands.CreateReservationResult, error) {
			return nil, commands.ErrDuplicateReservation
		}

		w := s.post("/reservations", validCreateBody, map[string]string{"Idempotency-Key": key})

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("bad date format is a 400", func() {
		body := `{"restaurant_id":"7f9b0da2-63c4-4dbb-8f42-9302fa0c1a58","date":"10/09/2026","time_slot":"19:00","party_size":2}`

		w := s.post("/reservations", body, map[string]string{"Idempotency-Key": key})

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ReservationHandlerSuite) TestCancel() {
	s.Run("successful cancel is a 204", func() {
		id := uuid.New()
		s.cmds.cancelFn = func(gotID, actorID uuid.UUID, actorRole string) error {
			s.Equal(id, gotID)
			s.Equal(s.userID, actorID)
			s.Equal("customer", actorRole)
			return nil
		}

		req := httptest.NewRequest(http.MethodDelete, "/reservations/"+id.String(), nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("someone else's reservation is a 403", func() {
		s.cmds.cancelFn = func(_, _ uuid.UUID, _ string) error {
			return commands.ErrReservationNotOwned
		}

		req := httptest.NewRequest(http.MethodDelete, "/reservations/"+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *ReservationHandlerSuite) TestAvailability() {
	restaurantID := uuid.New()

	s.Run("open slots for the day", func() {
		s.q.availabilityFn = func(gotID uuid.UUID, date time.Time) (*queries.AvailabilityView, error) {
			s.Equal(restaurantID, gotID)
			s.Equal("2026-09-10", date.Format(time.DateOnly))
			return &queries.AvailabilityView{
				RestaurantID:   restaurantID,
				Date:           "2026-09-10",
				AvailableSlots: []string{"11:00", "11:30"},
				BookedSlots:    20,
			}, nil
		}

		req := httptest.NewRequest(http.MethodGet, "/restaurants/"+restaurantID.String()+"/reservations/availability?date=2026-09-10", nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
		var body queries.AvailabilityView
		s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Len(body.AvailableSlots, 2)
		s.Equal(20, body.BookedSlots)
	})

	s.Run("missing date query is a 400", func() {
		req := httptest.NewRequest(http.MethodGet, "/restaurants/"+restaurantID.String()+"/reservations/availability", nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}
