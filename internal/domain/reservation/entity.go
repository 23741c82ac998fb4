package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlotTime   = errors.New("time is not a valid reservation slot")
	ErrInvalidPartySize  = errors.New("party size must be between 1 and 20")
	ErrPastDate          = errors.New("reservation date is in the past")
	ErrAlreadyCancelled  = errors.New("reservation is already cancelled")
	ErrNotCancellable    = errors.New("completed reservations cannot be cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRequestsTooLong   = errors.New("special requests exceed maximum length")
)

const (
	MaxPartySize          = 20
	MaxSpecialRequestsLen = 500
)

type Reservation struct {
	id              uuid.UUID
	userID          uuid.UUID
	restaurantID    uuid.UUID
	date            time.Time
	slot            string
	partySize       int
	specialRequests string
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

func NewReservation(
	userID, restaurantID uuid.UUID,
	date time.Time,
	slot string,
	partySize int,
	specialRequests string,
	now time.Time,
) (*Reservation, error) {
	if !IsValidSlot(slot) {
		return nil, ErrInvalidSlotTime
	}
	if partySize < 1 || partySize > MaxPartySize {
		return nil, ErrInvalidPartySize
	}
	if truncateDate(date).Before(truncateDate(now)) {
		return nil, ErrPastDate
	}
	specialRequests = strings.TrimSpace(specialRequests)
	if len(specialRequests) > MaxSpecialRequestsLen {
		return nil, ErrRequestsTooLong
	}

	return &Reservation{
		id:              uuid.New(),
		userID:          userID,
		restaurantID:    restaurantID,
		date:            truncateDate(date),
		slot:            slot,
		partySize:       partySize,
		specialRequests: specialRequests,
		status:          StatusPending,
	}, nil
}

func ReconstructReservation(
	id, userID, restaurantID uuid.UUID,
	date time.Time,
	slot string,
	partySize int,
	specialRequests string,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		userID:          userID,
		restaurantID:    restaurantID,
		date:            date,
		slot:            slot,
		partySize:       partySize,
		specialRequests: specialRequests,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (r *Reservation) Cancel() error {
	switch r.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrNotCancellable
	}
	r.status = StatusCancelled
	return nil
}

// Transition moves the reservation through the owner-driven lifecycle:
// pending -> confirmed -> completed. Cancellation is handled separately.
func (r *Reservation) Transition(next Status) error {
	valid := (r.status == StatusPending && next == StatusConfirmed) ||
		(r.status == StatusConfirmed && next == StatusCompleted)
	if !valid {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) RestaurantID() uuid.UUID { return r.restaurantID }
func (r *Reservation) Date() time.Time         { return r.date }
func (r *Reservation) Slot() string            { return r.slot }
func (r *Reservation) PartySize() int          { return r.partySize }
func (r *Reservation) SpecialRequests() string { return r.specialRequests }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
