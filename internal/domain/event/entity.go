package event

import (
	"errors"
	"strings"
	"time"

	"goeat-api/internal/domain/geo"

	"github.com/google/uuid"
)

var (
	ErrInvalidType       = errors.New("invalid event type")
	ErrInvalidAttendance = errors.New("attendance status must be going or interested")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyLocation     = errors.New("location cannot be empty")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidCapacity   = errors.New("capacity must be positive")
	ErrPartialCoords     = errors.New("latitude and longitude must be set together")
)

type Event struct {
	id             uuid.UUID
	restaurantID   *uuid.UUID
	userID         uuid.UUID
	title          string
	description    string
	date           time.Time
	time           string
	endTime        string
	price          *float64
	location       string
	coords         *geo.Point
	capacity       *int
	attendeesCount int
	eventType      Type
	isActive       bool
	featured       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewEvent(
	userID uuid.UUID,
	restaurantID *uuid.UUID,
	title, description string,
	date time.Time,
	startTime, endTime string,
	price *float64,
	location string,
	lat, lon *float64,
	capacity *int,
	eventType Type,
	featured bool,
) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(location) == "" {
		return nil, ErrEmptyLocation
	}
	if !eventType.IsValid() {
		return nil, ErrInvalidType
	}
	if price != nil && *price < 0 {
		return nil, ErrNegativePrice
	}
	if capacity != nil && *capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	coords, err := parseCoords(lat, lon)
	if err != nil {
		return nil, err
	}

	return &Event{
		id:           uuid.New(),
		restaurantID: restaurantID,
		userID:       userID,
		title:        title,
		description:  description,
		date:         date,
		time:         startTime,
		endTime:      endTime,
		price:        price,
		location:     location,
		coords:       coords,
		capacity:     capacity,
		eventType:    eventType,
		isActive:     true,
		featured:     featured,
	}, nil
}

func ReconstructEvent(
	id uuid.UUID,
	restaurantID *uuid.UUID,
	userID uuid.UUID,
	title, description string,
	date time.Time,
	startTime, endTime string,
	price *float64,
	location string,
	lat, lon *float64,
	capacity *int,
	attendeesCount int,
	eventType Type,
	isActive, featured bool,
	createdAt, updatedAt time.Time,
) *Event {
	coords, _ := parseCoords(lat, lon)
	return &Event{
		id:             id,
		restaurantID:   restaurantID,
		userID:         userID,
		title:          title,
		description:    description,
		date:           date,
		time:           startTime,
		endTime:        endTime,
		price:          price,
		location:       location,
		coords:         coords,
		capacity:       capacity,
		attendeesCount: attendeesCount,
		eventType:      eventType,
		isActive:       isActive,
		featured:       featured,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// HasCapacityFor reports whether another "going" attendee fits. Events
// without a capacity are unbounded.
func (e *Event) HasCapacityFor(goingCount int) bool {
	if e.capacity == nil {
		return true
	}
	return goingCount < *e.capacity
}

func (e *Event) IsOwnedBy(userID uuid.UUID) bool {
	return e.userID == userID
}

func (e *Event) Deactivate() {
	e.isActive = false
}

func (e *Event) ID() uuid.UUID            { return e.id }
func (e *Event) RestaurantID() *uuid.UUID { return e.restaurantID }
func (e *Event) UserID() uuid.UUID        { return e.userID }
func (e *Event) Title() string            { return e.title }
func (e *Event) Description() string      { return e.description }
func (e *Event) Date() time.Time          { return e.date }
func (e *Event) Time() string             { return e.time }
func (e *Event) EndTime() string          { return e.endTime }
func (e *Event) Price() *float64          { return e.price }
func (e *Event) Location() string         { return e.location }
func (e *Event) Coords() *geo.Point       { return e.coords }
func (e *Event) Capacity() *int           { return e.capacity }
func (e *Event) AttendeesCount() int      { return e.attendeesCount }
func (e *Event) EventType() Type          { return e.eventType }
func (e *Event) IsActive() bool           { return e.isActive }
func (e *Event) Featured() bool           { return e.featured }
func (e *Event) CreatedAt() time.Time     { return e.createdAt }
func (e *Event) UpdatedAt() time.Time     { return e.updatedAt }

func parseCoords(lat, lon *float64) (*geo.Point, error) {
	if (lat == nil) != (lon == nil) {
		return nil, ErrPartialCoords
	}
	if lat == nil {
		return nil, nil
	}
	p, err := geo.NewPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
