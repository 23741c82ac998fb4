package request

import (
	"time"

	"goeat-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	RestaurantID *uuid.UUID `json:"restaurant_id,omitempty"`
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Date         string     `json:"date" binding:"required"`
	Time         string     `json:"time" binding:"required"`
	EndTime      string     `json:"end_time"`
	Price        *float64   `json:"price,omitempty" binding:"omitempty,min=0"`
	Location     string     `json:"location" binding:"required"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Capacity     *int       `json:"capacity,omitempty" binding:"omitempty,min=1"`
	EventType    string     `json:"event_type"`
	Featured     bool       `json:"featured"`
}

func (r CreateEventRequest) ToCommand() (commands.CreateEventRequest, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return commands.CreateEventRequest{}, err
	}
	return commands.CreateEventRequest{
		RestaurantID: r.RestaurantID,
		Title:        r.Title,
		Description:  r.Description,
		Date:         date,
		Time:         r.Time,
		EndTime:      r.EndTime,
		Price:        r.Price,
		Location:     r.Location,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Capacity:     r.Capacity,
		EventType:    r.EventType,
		Featured:     r.Featured,
	}, nil
}

type UpdateEventRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	EventType   *string  `json:"event_type,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Capacity    *int     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Date        *string  `json:"date,omitempty"`
	Time        *string  `json:"time,omitempty"`
	EndTime     *string  `json:"end_time,omitempty"`
}

func (r UpdateEventRequest) ToCommand() (commands.UpdateEventRequest, error) {
	date, err := parseDatePtr(r.Date)
	if err != nil {
		return commands.UpdateEventRequest{}, err
	}
	return commands.UpdateEventRequest{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		EventType:   r.EventType,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Date:        date,
		Time:        r.Time,
		EndTime:     r.EndTime,
	}, nil
}

type AttendEventRequest struct {
	Status string `json:"status" binding:"required,oneof=going interested"`
}
