package queries

import (
	"context"
	"time"

	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/infra"

	"github.com/google/uuid"
)

type ReservationView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	RestaurantID    uuid.UUID `json:"restaurant_id"`
	RestaurantName  string    `json:"restaurant_name"`
	Date            time.Time `json:"date"`
	TimeSlot        string    `json:"time_slot"`
	PartySize       int       `json:"party_size"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AvailabilityView lists the open slots for one restaurant-day.
type AvailabilityView struct {
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	Date           string    `json:"date"`
	AvailableSlots []string  `json:"available_slots"`
	BookedSlots    int       `json:"booked_slots"`
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindByRestaurantOnDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]*ReservationView, error)
	// BookedSlots returns the slots held by blocking reservations for the
	// restaurant-day.
	BookedSlots(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]string, error)
	RestaurantOwner(ctx context.Context, restaurantID uuid.UUID) (uuid.UUID, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	ListByRestaurant(ctx context.Context, actorID uuid.UUID, actorRole string, restaurantID uuid.UUID, date time.Time) ([]*ReservationView, error)
	Availability(ctx context.Context, restaurantID uuid.UUID, date time.Time) (*AvailabilityView, error)
}

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

type reservationQueriesImpl struct {
	repo ReservationReadStore
}

func NewReservationQueries(repo ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*ReservationView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if err := q.authorize(ctx, actorID, actorRole, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// Visible to the guest who booked, the restaurant's owner, and admins.
func (q *reservationQueriesImpl) authorize(ctx context.Context, actorID uuid.UUID, actorRole string, rv *ReservationView) error {
	if actorRole == RoleAdmin || rv.UserID == actorID {
		return nil
	}
	if actorRole == RoleOwner {
		ownerID, err := q.repo.RestaurantOwner(ctx, rv.RestaurantID)
		if err == nil && ownerID == actorID {
			return nil
		}
	}
	return ErrReservationAccess
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ReservationView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByUserFirstPage(ctx, userID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByUserKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *reservationQueriesImpl) ListByRestaurant(ctx context.Context, actorID uuid.UUID, actorRole string, restaurantID uuid.UUID, date time.Time) ([]*ReservationView, error) {
	if actorRole != RoleAdmin {
		ownerID, err := q.repo.RestaurantOwner(ctx, restaurantID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrRestaurantNotFound
			}
			return nil, err
		}
		if ownerID != actorID {
			return nil, ErrReservationAccess
		}
	}
	return q.repo.FindByRestaurantOnDate(ctx, restaurantID, date)
}

func (q *reservationQueriesImpl) Availability(ctx context.Context, restaurantID uuid.UUID, date time.Time) (*AvailabilityView, error) {
	booked, err := q.repo.BookedSlots(ctx, restaurantID, date)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, s := range booked {
		bookedSet[s] = struct{}{}
	}

	return &AvailabilityView{
		RestaurantID:   restaurantID,
		Date:           date.Format("2006-01-02"),
		AvailableSlots: reservation.AvailableSlots(bookedSet),
		BookedSlots:    len(bookedSet),
	}, nil
}
