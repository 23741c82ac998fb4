package response

import (
	"goeat-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
}

func FromAuthResult(r *commands.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken: r.AccessToken,
		UserID:      r.UserID,
		Role:        r.Role,
	}
}
