package repository

import (
	"context"

	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"

	"github.com/google/uuid"
)

type RatingStatsRepository struct{}

func NewRatingStatsRepository() *RatingStatsRepository {
	return &RatingStatsRepository{}
}

// Recomputes the denormalized rating columns from the review rows. Runs in
// the same transaction as the review mutation so readers never observe a
// stale aggregate.
const recalcRatingSQL = `
UPDATE restaurants SET
	rating = COALESCE((
		SELECT ROUND(AVG(rating)::numeric, 2)
		FROM reviews WHERE restaurant_id = $1
	), 0),
	total_reviews = (
		SELECT COUNT(*) FROM reviews WHERE restaurant_id = $1
	),
	updated_at = now()
WHERE id = $1`

func (r *RatingStatsRepository) RecalcRestaurantRating(ctx context.Context, dbtx db.DBTX, restaurantID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, recalcRatingSQL, restaurantID); err != nil {
		return infra.WrapRepoErr("failed to recalc restaurant rating", err)
	}
	return nil
}
