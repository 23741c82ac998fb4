package shared

import (
	"time"

	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/domain/user"

	"github.com/google/uuid"
)

// UserCredentials is the authentication projection of a user row.
type UserCredentials struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         user.Role
	IsActive     bool
}

type RestaurantSnapshot struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	IsActive bool
}

type DealSnapshot struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	IsActive     bool
}

type EventSnapshot struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	RestaurantID   *uuid.UUID
	Capacity       *int
	AttendeesCount int
	IsActive       bool
}

type ReservationSnapshot struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	Date         time.Time
	TimeSlot     string
	Status       reservation.Status
}

type ReviewSnapshot struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	Rating       int
}

type VideoSnapshot struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	IsActive bool
}

type CommentSnapshot struct {
	ID      uuid.UUID
	VideoID uuid.UUID
	UserID  uuid.UUID
}

type AttendanceSnapshot struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Status  string
}

// IdempotencyRecord tracks a reservation create keyed by client token.
type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	Status      string
	ResultID    *uuid.UUID
	ExpiresAt   time.Time
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

// RestaurantUpdate carries the patchable columns of a restaurant row.
// Nil means "leave as is".
type RestaurantUpdate struct {
	Name        *string
	Description *string
	Cuisine     *string
	Address     *string
	ImageURL    *string
	PriceRange  *int
	Latitude    *float64
	Longitude   *float64
	IsActive    *bool
}

// DealWrite is the full column set for a deal insert or replace-style update.
type DealWrite struct {
	RestaurantID uuid.UUID
	Title        string
	Description  string
	Discount     string
	StartDate    *time.Time
	EndDate      *time.Time
	StartTime    *string
	EndTime      *string
	DayOfWeek    *int
	Featured     bool
	IsActive     bool
}

type EventUpdate struct {
	Title       *string
	Description *string
	Location    *string
	EventType   *string
	Price       *float64
	Capacity    *int
	Date        *time.Time
	Time        *string
	EndTime     *string
}
