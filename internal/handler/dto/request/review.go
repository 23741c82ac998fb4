package request

import (
	"goeat-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (r CreateReviewRequest) ToCommand(restaurantID uuid.UUID) commands.CreateReviewRequest {
	return commands.CreateReviewRequest{
		RestaurantID: restaurantID,
		Rating:       r.Rating,
		Comment:      r.Comment,
	}
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (r UpdateReviewRequest) ToCommand() commands.UpdateReviewRequest {
	return commands.UpdateReviewRequest{Rating: r.Rating, Comment: r.Comment}
}
