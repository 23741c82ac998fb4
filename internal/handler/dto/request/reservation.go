package request

import (
	"time"

	"goeat-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RestaurantID    uuid.UUID `json:"restaurant_id" binding:"required"`
	Date            string    `json:"date" binding:"required"`
	TimeSlot        string    `json:"time_slot" binding:"required"`
	PartySize       int       `json:"party_size" binding:"required,min=1"`
	SpecialRequests string    `json:"special_requests"`
}

func (r CreateReservationRequest) ToCommand() (commands.CreateReservationRequest, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return commands.CreateReservationRequest{}, err
	}
	return commands.CreateReservationRequest{
		RestaurantID:    r.RestaurantID,
		Date:            date,
		TimeSlot:        r.TimeSlot,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}
