package readstore

import (
	"context"

	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/pkg/pgconv"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// SnapshotReadStore serves the minimal projections command handlers validate
// against. It takes the dbtx per call so it can run inside or outside a
// transaction.
type SnapshotReadStore struct{}

func NewSnapshotReadStore() *SnapshotReadStore {
	return &SnapshotReadStore{}
}

func (s *SnapshotReadStore) UserByEmail(ctx context.Context, dbtx db.DBTX, email string) (*shared.UserCredentials, error) {
	var c shared.UserCredentials
	err := dbtx.QueryRow(ctx,
		`SELECT id, email, password_hash, role, is_active FROM users WHERE email = $1`, email,
	).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.Role, &c.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &c, nil
}

func (s *SnapshotReadStore) RestaurantByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.RestaurantSnapshot, error) {
	var snap shared.RestaurantSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT id, owner_id, name, is_active FROM restaurants WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.OwnerID, &snap.Name, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant", err)
	}
	return &snap, nil
}

func (s *SnapshotReadStore) DealByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.DealSnapshot, error) {
	var snap shared.DealSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT id, restaurant_id, is_active FROM deals WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.RestaurantID, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("deal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deal", err)
	}
	return &snap, nil
}

func (s *SnapshotReadStore) EventByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.EventSnapshot, error) {
	var snap shared.EventSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT id, user_id, restaurant_id, capacity, attendees_count, is_active FROM events WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.OwnerID, &snap.RestaurantID, &snap.Capacity, &snap.AttendeesCount, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event", err)
	}
	return &snap, nil
}

// EventForUpdate reads the event under a row lock. Transactions run at
// read committed, so capacity checks have to hold the lock until commit
// to keep concurrent RSVPs from both passing the same headroom.
func (s *SnapshotReadStore) EventForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.EventSnapshot, error) {
	var snap shared.EventSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT id, user_id, restaurant_id, capacity, attendees_count, is_active FROM events WHERE id = $1 FOR UPDATE`, id,
	).Scan(&snap.ID, &snap.OwnerID, &snap.RestaurantID, &snap.Capacity, &snap.AttendeesCount, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock event", err)
	}
	return &snap, nil
}

func (s *SnapshotReadStore) ReservationByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var snap shared.ReservationSnapshot
	var status string
	err := dbtx.QueryRow(ctx,
		`SELECT id, user_id, restaurant_id, reservation_date, time_slot, status FROM reservations WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.UserID, &snap.RestaurantID, &snap.Date, &snap.TimeSlot, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	snap.Status = reservation.Status(status)
	return &snap, nil
}

func (s *SnapshotReadStore) ReviewByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	var snap shared.ReviewSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT id, user_id, restaurant_id, rating FROM reviews WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.UserID, &snap.RestaurantID, &snap.Rating)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review", err)
	}
	return &snap, nil
}

func (s *SnapshotReadStore) VideoByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.VideoSnapshot, error) {
	var snap shared.VideoSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT id, user_id, is_active FROM videos WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.UserID, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("video not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find video", err)
	}
	return &snap, nil
}

func (s *SnapshotReadStore) CommentByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.CommentSnapshot, error) {
	var snap shared.CommentSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT id, video_id, user_id FROM video_comments WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.VideoID, &snap.UserID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("comment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find comment", err)
	}
	return &snap, nil
}

func (s *SnapshotReadStore) AttendanceFor(ctx context.Context, dbtx db.DBTX, eventID, userID uuid.UUID) (*shared.AttendanceSnapshot, error) {
	var snap shared.AttendanceSnapshot
	err := dbtx.QueryRow(ctx,
		`SELECT event_id, user_id, status FROM event_attendees WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&snap.EventID, &snap.UserID, &snap.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("attendance not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find attendance", err)
	}
	return &snap, nil
}

func (s *SnapshotReadStore) IdempotencyByKey(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := dbtx.QueryRow(ctx,
		`SELECT key, user_id, endpoint, request_hash, status, result_reservation_id, expires_at
		 FROM idempotency_keys WHERE key = $1 AND user_id = $2`,
		key, userID,
	).Scan(&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &rec.Status, &rec.ResultID, &rec.ExpiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	return &rec, nil
}
