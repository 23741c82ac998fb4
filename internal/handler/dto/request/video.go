package request

import (
	"goeat-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateVideoRequest struct {
	RestaurantID *uuid.UUID `json:"restaurant_id,omitempty"`
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"video_url" binding:"required,url"`
	ThumbnailURL string     `json:"thumbnail_url" binding:"omitempty,url"`
}

func (r CreateVideoRequest) ToCommand() commands.CreateVideoRequest {
	return commands.CreateVideoRequest{
		RestaurantID: r.RestaurantID,
		Title:        r.Title,
		Description:  r.Description,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
	}
}

type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=1000"`
}
