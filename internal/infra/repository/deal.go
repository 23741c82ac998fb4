package repository

import (
	"context"

	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type DealRepository struct{}

func NewDealRepository() *DealRepository {
	return &DealRepository{}
}

const createDealSQL = `
INSERT INTO deals (restaurant_id, title, description, discount, start_date, end_date, start_time, end_time, day_of_week, featured, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

func (r *DealRepository) Create(ctx context.Context, dbtx db.DBTX, d shared.DealWrite) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createDealSQL,
		d.RestaurantID,
		d.Title,
		d.Description,
		d.Discount,
		d.StartDate,
		d.EndDate,
		d.StartTime,
		d.EndTime,
		d.DayOfWeek,
		d.Featured,
		d.IsActive,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create deal", err)
	}
	return id, nil
}

const updateDealSQL = `
UPDATE deals SET
	title       = $2,
	description = $3,
	discount    = $4,
	start_date  = $5,
	end_date    = $6,
	start_time  = $7,
	end_time    = $8,
	day_of_week = $9,
	featured    = $10,
	is_active   = $11,
	updated_at  = now()
WHERE id = $1`

func (r *DealRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, d shared.DealWrite) error {
	tag, err := dbtx.Exec(ctx, updateDealSQL, id,
		d.Title,
		d.Description,
		d.Discount,
		d.StartDate,
		d.EndDate,
		d.StartTime,
		d.EndTime,
		d.DayOfWeek,
		d.Featured,
		d.IsActive,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update deal", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("deal not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *DealRepository) Deactivate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `UPDATE deals SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate deal", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("deal not found", nil, infra.KindNotFound)
	}
	return nil
}
