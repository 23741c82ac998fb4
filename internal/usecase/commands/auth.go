package commands

import (
	"context"
	"log/slog"

	"goeat-api/internal/domain/user"
	"goeat-api/internal/infra"
	"goeat-api/internal/pkg/clock"
	"goeat-api/internal/pkg/errs"
	"goeat-api/internal/pkg/jwt"
	"goeat-api/internal/pkg/password"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken           = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type LoginRequest struct {
	Email    string
	Password string
}

type AuthResult struct {
	UserID      uuid.UUID
	Role        string
	AccessToken string
}

type AuthCommands interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, jwtService: jwtService, clock: clk}
}

func (a *authCommandsImpl) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	pass, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, err
	}
	name, err := user.NewName(req.Name)
	if err != nil {
		return nil, err
	}
	role := user.RoleCustomer
	if req.Role != "" {
		role, err = user.NewRole(req.Role)
		if err != nil {
			return nil, err
		}
	}

	hash, err := password.HashPassword(pass.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u := user.NewUser(email, hash, name, role)

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Users().Create(ctx, tx.DB(), u)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return derr
		}
		userID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := a.jwtService.GenerateToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &AuthResult{UserID: userID, Role: role.String(), AccessToken: token}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	creds, err := a.uow.CommandReads().UserByEmail(ctx, req.Email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}
	if !creds.IsActive {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(creds.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(creds.ID, creds.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	now := a.clock.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), creds.ID, now)
	})
	if err != nil {
		// Login already succeeded; a missed last_login stamp is not critical
		slog.Warn("failed to update last login", "user_id", creds.ID, "error", err.Error())
	}

	return &AuthResult{UserID: creds.ID, Role: creds.Role.String(), AccessToken: token}, nil
}
