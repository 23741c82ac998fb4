package queries

import (
	"context"
	"time"

	"goeat-api/internal/domain/geo"
	"goeat-api/internal/infra"

	"github.com/google/uuid"
)

type EventView struct {
	ID             uuid.UUID  `json:"id"`
	RestaurantID   *uuid.UUID `json:"restaurant_id,omitempty"`
	UserID         uuid.UUID  `json:"user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Date           time.Time  `json:"date"`
	Time           string     `json:"time"`
	EndTime        string     `json:"end_time,omitempty"`
	Price          *float64   `json:"price,omitempty"`
	Location       string     `json:"location"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Capacity       *int       `json:"capacity,omitempty"`
	AttendeesCount int        `json:"attendees_count"`
	EventType      string     `json:"event_type"`
	Featured       bool       `json:"featured"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type AttendeeView struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

type EventFilters struct {
	EventType *string
	DateFrom  *time.Time
	DateTo    *time.Time
	Featured  *bool

	// Origin restricts the listing to events near a point. Box is derived
	// from Origin and RadiusKm before the read store sees the filters.
	Origin   *geo.Point
	RadiusKm float64
	Box      *geo.Box
}

type EventReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EventView, error)
	FindFirstPage(ctx context.Context, filters EventFilters, limit int32) ([]*EventView, error)
	FindKeyset(ctx context.Context, filters EventFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*EventView, error)
	FindAttendees(ctx context.Context, eventID uuid.UUID) ([]*AttendeeView, error)
}

type EventQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EventView, error)
	List(ctx context.Context, filters EventFilters, cursor *Cursor, limit int) ([]*EventView, *Cursor, error)
	ListAttendees(ctx context.Context, eventID uuid.UUID) ([]*AttendeeView, error)
}

type eventQueriesImpl struct {
	repo EventReadStore
}

func NewEventQueries(repo EventReadStore) EventQueries {
	return &eventQueriesImpl{repo: repo}
}

func (q *eventQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*EventView, error) {
	ev, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

func (q *eventQueriesImpl) List(ctx context.Context, filters EventFilters, cursor *Cursor, limit int) ([]*EventView, *Cursor, error) {
	limit = ValidateLimit(limit)

	radiusKm := filters.RadiusKm
	if filters.Origin != nil {
		if radiusKm <= 0 {
			radiusKm = DefaultNearbyRadiusKm
		}
		if radiusKm > MaxNearbyRadiusKm {
			radiusKm = MaxNearbyRadiusKm
		}
		box, err := geo.BoundingBox(*filters.Origin, radiusKm)
		if err != nil {
			return nil, nil, ErrInvalidCoordinates
		}
		filters.Box = &box
	}

	var rows []*EventView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFirstPage(ctx, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindKeyset(ctx, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	// The cursor has to come from the raw keyset page: the distance cut
	// below may shrink the page, and a cursor taken after the cut would
	// skip everything between the kept rows and the window's real edge.
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	if filters.Origin != nil {
		// The box is only a prefilter; cut the corners with real distance.
		kept := rows[:0]
		for _, ev := range rows {
			if ev.Latitude == nil || ev.Longitude == nil {
				continue
			}
			p := geo.Point{Latitude: *ev.Latitude, Longitude: *ev.Longitude}
			if geo.WithinRadius(*filters.Origin, p, radiusKm) {
				kept = append(kept, ev)
			}
		}
		rows = kept
	}
	return rows, next, nil
}

func (q *eventQueriesImpl) ListAttendees(ctx context.Context, eventID uuid.UUID) ([]*AttendeeView, error) {
	if _, err := q.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return q.repo.FindAttendees(ctx, eventID)
}
