package readstore

import (
	"context"
	"time"

	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/pkg/pgconv"
	"goeat-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationSelect = `
SELECT res.id, res.user_id, res.restaurant_id, r.name, res.reservation_date, res.time_slot,
       res.party_size, res.special_requests, res.status, res.created_at, res.updated_at
FROM reservations res
JOIN restaurants r ON r.id = res.restaurant_id`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationSelect+` WHERE res.id = $1`, id)
	rv, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return rv, nil
}

func (r *ReservationReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx,
		reservationSelect+` WHERE res.user_id = $1 ORDER BY res.created_at DESC, res.id DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return collectReservations(rows)
}

func (r *ReservationReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx,
		reservationSelect+` WHERE res.user_id = $1 AND (res.created_at, res.id) < ($2, $3)
		 ORDER BY res.created_at DESC, res.id DESC LIMIT $4`,
		userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations after cursor", err)
	}
	return collectReservations(rows)
}

func (r *ReservationReadStore) FindByRestaurantOnDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx,
		reservationSelect+` WHERE res.restaurant_id = $1 AND res.reservation_date = $2
		 ORDER BY res.time_slot ASC, res.created_at ASC`,
		restaurantID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations for restaurant", err)
	}
	return collectReservations(rows)
}

const bookedSlotsSQL = `
SELECT time_slot FROM reservations
WHERE restaurant_id = $1
  AND reservation_date = $2
  AND status IN ('pending', 'confirmed')`

func (r *ReservationReadStore) BookedSlots(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]string, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1 AND is_active)`, restaurantID).Scan(&exists); err != nil {
		return nil, infra.WrapRepoErr("failed to check restaurant", err)
	}
	if !exists {
		return nil, infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}

	rows, err := r.db.Query(ctx, bookedSlotsSQL, restaurantID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booked slots", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		out = append(out, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slot rows", err)
	}
	return out, nil
}

func (r *ReservationReadStore) RestaurantOwner(ctx context.Context, restaurantID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT owner_id FROM restaurants WHERE id = $1`, restaurantID).Scan(&ownerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find restaurant owner", err)
	}
	return ownerID, nil
}

func collectReservations(rows pgx.Rows) ([]*queries.ReservationView, error) {
	defer rows.Close()
	var out []*queries.ReservationView
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return out, nil
}

func scanReservation(row rowScanner) (*queries.ReservationView, error) {
	var rv queries.ReservationView
	err := row.Scan(
		&rv.ID,
		&rv.UserID,
		&rv.RestaurantID,
		&rv.RestaurantName,
		&rv.Date,
		&rv.TimeSlot,
		&rv.PartySize,
		&rv.SpecialRequests,
		&rv.Status,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
