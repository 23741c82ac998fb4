package repository

import (
	"context"

	"goeat-api/internal/domain/event"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

const createEventSQL = `
INSERT INTO events (user_id, restaurant_id, title, description, event_date, event_time, end_time, price, location, latitude, longitude, capacity, event_type, featured, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true)
RETURNING id`

func (r *EventRepository) Create(ctx context.Context, dbtx db.DBTX, e *event.Event) (uuid.UUID, error) {
	var lat, lon *float64
	if c := e.Coords(); c != nil {
		lat, lon = &c.Latitude, &c.Longitude
	}

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createEventSQL,
		e.UserID(),
		e.RestaurantID(),
		e.Title(),
		e.Description(),
		e.Date(),
		e.Time(),
		e.EndTime(),
		e.Price(),
		e.Location(),
		lat,
		lon,
		e.Capacity(),
		string(e.EventType()),
		e.Featured(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create event", err)
	}
	return id, nil
}

const updateEventSQL = `
UPDATE events SET
	title       = COALESCE($2, title),
	description = COALESCE($3, description),
	location    = COALESCE($4, location),
	event_type  = COALESCE($5, event_type),
	price       = COALESCE($6, price),
	capacity    = COALESCE($7, capacity),
	event_date  = COALESCE($8, event_date),
	event_time  = COALESCE($9, event_time),
	end_time    = COALESCE($10, end_time),
	updated_at  = now()
WHERE id = $1`

func (r *EventRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params shared.EventUpdate) error {
	tag, err := dbtx.Exec(ctx, updateEventSQL, id,
		params.Title,
		params.Description,
		params.Location,
		params.EventType,
		params.Price,
		params.Capacity,
		params.Date,
		params.Time,
		params.EndTime,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("event not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *EventRepository) Deactivate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `UPDATE events SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("event not found", nil, infra.KindNotFound)
	}
	return nil
}
