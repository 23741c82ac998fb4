package repository

import (
	"context"
	"time"

	"goeat-api/internal/domain/user"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (email, password_hash, name, role, is_active)
VALUES ($1, $2, $3, $4, true)
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createUserSQL,
		u.Email().Value(),
		u.PasswordHash(),
		u.Name(),
		string(u.Role()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, at time.Time) error {
	_, err := dbtx.Exec(ctx, `UPDATE users SET last_login = $2, updated_at = now() WHERE id = $1`, userID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
