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

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

const reviewSelect = `
SELECT rv.id, rv.user_id, u.name, rv.restaurant_id, rv.rating, rv.comment, rv.created_at, rv.updated_at
FROM reviews rv
JOIN users u ON u.id = rv.user_id`

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	row := r.db.QueryRow(ctx, reviewSelect+` WHERE rv.id = $1`, id)
	rv, err := scanReview(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review", err)
	}
	return rv, nil
}

func (r *ReviewReadStore) FindByRestaurantFirstPage(ctx context.Context, restaurantID uuid.UUID, filters queries.ReviewFilters, limit int32) ([]*queries.ReviewView, error) {
	qb := r.listQuery(restaurantID, filters).Limit(uint64(limit))
	return r.queryList(ctx, qb)
}

func (r *ReviewReadStore) FindByRestaurantKeyset(ctx context.Context, restaurantID uuid.UUID, filters queries.ReviewFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReviewView, error) {
	qb := r.listQuery(restaurantID, filters).
		Where(sq.Expr("(rv.created_at, rv.id) < (?, ?)", lastCreatedAt, lastID)).
		Limit(uint64(limit))
	return r.queryList(ctx, qb)
}

func (r *ReviewReadStore) listQuery(restaurantID uuid.UUID, filters queries.ReviewFilters) sq.SelectBuilder {
	qb := psql.Select("rv.id", "rv.user_id", "u.name", "rv.restaurant_id", "rv.rating", "rv.comment", "rv.created_at", "rv.updated_at").
		From("reviews rv").
		Join("users u ON u.id = rv.user_id").
		Where(sq.Eq{"rv.restaurant_id": restaurantID}).
		OrderBy("rv.created_at DESC, rv.id DESC")

	if filters.MinRating != nil {
		qb = qb.Where(sq.GtOrEq{"rv.rating": *filters.MinRating})
	}
	if filters.MaxRating != nil {
		qb = qb.Where(sq.LtOrEq{"rv.rating": *filters.MaxRating})
	}
	return qb
}

func (r *ReviewReadStore) queryList(ctx context.Context, qb sq.SelectBuilder) ([]*queries.ReviewView, error) {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build review query", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return collectReviews(rows)
}

func collectReviews(rows pgx.Rows) ([]*queries.ReviewView, error) {
	defer rows.Close()
	var out []*queries.ReviewView
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan review", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read review rows", err)
	}
	return out, nil
}

func scanReview(row rowScanner) (*queries.ReviewView, error) {
	var rv queries.ReviewView
	err := row.Scan(
		&rv.ID,
		&rv.UserID,
		&rv.UserName,
		&rv.RestaurantID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
