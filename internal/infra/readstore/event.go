package readstore

import (
	"context"
	"time"

	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/pkg/pgconv"
	"goeat-api/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, restaurant_id, user_id, title, description, event_date, event_time, end_time, price, location, latitude, longitude, capacity, attendees_count, event_type, featured, is_active, created_at, updated_at`

type EventReadStore struct {
	db db.DBTX
}

func NewEventReadStore(dbtx db.DBTX) *EventReadStore {
	return &EventReadStore{db: dbtx}
}

func (r *EventReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EventView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	ev, err := scanEvent(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event", err)
	}
	return ev, nil
}

func (r *EventReadStore) FindFirstPage(ctx context.Context, filters queries.EventFilters, limit int32) ([]*queries.EventView, error) {
	qb := r.listQuery(filters).Limit(uint64(limit))
	return r.queryList(ctx, qb)
}

func (r *EventReadStore) FindKeyset(ctx context.Context, filters queries.EventFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.EventView, error) {
	qb := r.listQuery(filters).
		Where(sq.Expr("(created_at, id) < (?, ?)", lastCreatedAt, lastID)).
		Limit(uint64(limit))
	return r.queryList(ctx, qb)
}

const findAttendeesSQL = `
SELECT a.user_id, u.name, a.status, a.created_at
FROM event_attendees a
JOIN users u ON u.id = a.user_id
WHERE a.event_id = $1
ORDER BY a.created_at ASC`

func (r *EventReadStore) FindAttendees(ctx context.Context, eventID uuid.UUID) ([]*queries.AttendeeView, error) {
	rows, err := r.db.Query(ctx, findAttendeesSQL, eventID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list attendees", err)
	}
	defer rows.Close()

	var out []*queries.AttendeeView
	for rows.Next() {
		var av queries.AttendeeView
		if err := rows.Scan(&av.UserID, &av.UserName, &av.Status, &av.JoinedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan attendee", err)
		}
		out = append(out, &av)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read attendee rows", err)
	}
	return out, nil
}

func (r *EventReadStore) listQuery(filters queries.EventFilters) sq.SelectBuilder {
	qb := psql.Select(eventColumns).
		From("events").
		Where(sq.Eq{"is_active": true}).
		OrderBy("created_at DESC, id DESC")

	if filters.EventType != nil {
		qb = qb.Where(sq.Eq{"event_type": *filters.EventType})
	}
	if filters.DateFrom != nil {
		qb = qb.Where(sq.GtOrEq{"event_date": *filters.DateFrom})
	}
	if filters.DateTo != nil {
		qb = qb.Where(sq.LtOrEq{"event_date": *filters.DateTo})
	}
	if filters.Featured != nil {
		qb = qb.Where(sq.Eq{"featured": *filters.Featured})
	}
	if filters.Box != nil {
		qb = qb.Where(sq.Expr("latitude BETWEEN ? AND ?", filters.Box.MinLat, filters.Box.MaxLat)).
			Where(sq.Expr("longitude BETWEEN ? AND ?", filters.Box.MinLon, filters.Box.MaxLon))
	}
	return qb
}

func (r *EventReadStore) queryList(ctx context.Context, qb sq.SelectBuilder) ([]*queries.EventView, error) {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build event query", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list events", err)
	}
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]*queries.EventView, error) {
	defer rows.Close()
	var out []*queries.EventView
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan event", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read event rows", err)
	}
	return out, nil
}

func scanEvent(row rowScanner) (*queries.EventView, error) {
	var ev queries.EventView
	err := row.Scan(
		&ev.ID,
		&ev.RestaurantID,
		&ev.UserID,
		&ev.Title,
		&ev.Description,
		&ev.Date,
		&ev.Time,
		&ev.EndTime,
		&ev.Price,
		&ev.Location,
		&ev.Latitude,
		&ev.Longitude,
		&ev.Capacity,
		&ev.AttendeesCount,
		&ev.EventType,
		&ev.Featured,
		&ev.IsActive,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
