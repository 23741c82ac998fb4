package response

import "github.com/google/uuid"

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}
