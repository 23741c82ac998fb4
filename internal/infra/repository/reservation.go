package repository

import (
	"context"
	"time"

	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const createReservationSQL = `
INSERT INTO reservations (user_id, restaurant_id, reservation_date, time_slot, party_size, special_requests, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

// Create relies on the partial unique index over blocking reservations to
// reject a racing insert for the same restaurant/date/slot.
func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createReservationSQL,
		res.UserID(),
		res.RestaurantID(),
		res.Date(),
		res.Slot(),
		res.PartySize(),
		res.SpecialRequests(),
		string(res.Status()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status reservation.Status) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const slotTakenSQL = `
SELECT EXISTS (
	SELECT 1 FROM reservations
	WHERE restaurant_id = $1
	  AND reservation_date = $2
	  AND time_slot = $3
	  AND status IN ('pending', 'confirmed')
)`

func (r *ReservationRepository) SlotTaken(ctx context.Context, dbtx db.DBTX, restaurantID uuid.UUID, date time.Time, slot string) (bool, error) {
	var taken bool
	if err := dbtx.QueryRow(ctx, slotTakenSQL, restaurantID, date, slot).Scan(&taken); err != nil {
		return false, infra.WrapRepoErr("failed to check slot availability", err)
	}
	return taken, nil
}
