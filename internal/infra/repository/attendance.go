package repository

import (
	"context"

	"goeat-api/internal/domain/event"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"

	"github.com/google/uuid"
)

type AttendanceRepository struct{}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{}
}

const upsertAttendanceSQL = `
INSERT INTO event_attendees (event_id, user_id, status)
VALUES ($1, $2, $3)
ON CONFLICT (event_id, user_id) DO UPDATE SET status = EXCLUDED.status`

func (r *AttendanceRepository) Upsert(ctx context.Context, dbtx db.DBTX, eventID, userID uuid.UUID, status event.AttendanceStatus) error {
	if _, err := dbtx.Exec(ctx, upsertAttendanceSQL, eventID, userID, string(status)); err != nil {
		return infra.WrapRepoErr("failed to upsert attendance", err)
	}
	return nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, dbtx db.DBTX, eventID, userID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete attendance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("attendance not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AttendanceRepository) CountGoing(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID) (int, error) {
	var count int
	err := dbtx.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_attendees WHERE event_id = $1 AND status = 'going'`, eventID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count attendees", err)
	}
	return count, nil
}

const recalcAttendeesSQL = `
UPDATE events SET attendees_count = (
	SELECT COUNT(*) FROM event_attendees
	WHERE event_id = $1 AND status = 'going'
), updated_at = now()
WHERE id = $1`

func (r *AttendanceRepository) RecalcAttendeesCount(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, recalcAttendeesSQL, eventID); err != nil {
		return infra.WrapRepoErr("failed to recalc attendees count", err)
	}
	return nil
}
