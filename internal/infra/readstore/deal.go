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

const dealSelect = `
SELECT d.id, d.restaurant_id, r.name, d.title, d.description, d.discount,
       d.start_date, d.end_date, d.start_time, d.end_time, d.day_of_week,
       d.featured, d.is_active, d.created_at, d.updated_at
FROM deals d
JOIN restaurants r ON r.id = d.restaurant_id`

type DealReadStore struct {
	db db.DBTX
}

func NewDealReadStore(dbtx db.DBTX) *DealReadStore {
	return &DealReadStore{db: dbtx}
}

func (r *DealReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DealView, error) {
	row := r.db.QueryRow(ctx, dealSelect+` WHERE d.id = $1`, id)
	dv, err := scanDeal(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("deal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deal", err)
	}
	return dv, nil
}

func (r *DealReadStore) FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*queries.DealView, error) {
	rows, err := r.db.Query(ctx, dealSelect+` WHERE d.restaurant_id = $1 ORDER BY d.created_at DESC, d.id DESC`, restaurantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list deals by restaurant", err)
	}
	return collectDeals(rows)
}

// The date-range and day-of-week predicates are coarse SQL narrowing; the
// caller applies the exact validity check.
const findActiveOnSQL = dealSelect + `
WHERE d.is_active
  AND r.is_active
  AND (d.start_date IS NULL OR d.start_date <= $1::date)
  AND (d.end_date IS NULL OR d.end_date >= $1::date)
  AND (d.day_of_week IS NULL OR d.day_of_week = $2)
ORDER BY d.featured DESC, d.created_at DESC, d.id DESC`

func (r *DealReadStore) FindActiveOn(ctx context.Context, date time.Time, dayOfWeek int) ([]*queries.DealView, error) {
	rows, err := r.db.Query(ctx, findActiveOnSQL, date, dayOfWeek)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active deals", err)
	}
	return collectDeals(rows)
}

func collectDeals(rows pgx.Rows) ([]*queries.DealView, error) {
	defer rows.Close()
	var out []*queries.DealView
	for rows.Next() {
		dv, err := scanDeal(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan deal", err)
		}
		out = append(out, dv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read deal rows", err)
	}
	return out, nil
}

func scanDeal(row rowScanner) (*queries.DealView, error) {
	var dv queries.DealView
	err := row.Scan(
		&dv.ID,
		&dv.RestaurantID,
		&dv.RestaurantName,
		&dv.Title,
		&dv.Description,
		&dv.Discount,
		&dv.StartDate,
		&dv.EndDate,
		&dv.StartTime,
		&dv.EndTime,
		&dv.DayOfWeek,
		&dv.Featured,
		&dv.IsActive,
		&dv.CreatedAt,
		&dv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dv, nil
}
