package readstore

import (
	"context"
	"time"

	"goeat-api/internal/domain/geo"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/pkg/pgconv"
	"goeat-api/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// psql builds statements with $n placeholders for pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const restaurantColumns = `id, owner_id, name, description, cuisine, address, latitude, longitude, price_range, image_url, rating, total_reviews, featured, is_active, created_at, updated_at`

type RestaurantReadStore struct {
	db db.DBTX
}

func NewRestaurantReadStore(dbtx db.DBTX) *RestaurantReadStore {
	return &RestaurantReadStore{db: dbtx}
}

func (r *RestaurantReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RestaurantView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	rv, err := scanRestaurant(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant", err)
	}
	return rv, nil
}

func (r *RestaurantReadStore) FindFirstPage(ctx context.Context, filters queries.RestaurantFilters, limit int32) ([]*queries.RestaurantView, error) {
	qb := r.listQuery(filters).Limit(uint64(limit))
	return r.queryList(ctx, qb, "failed to list restaurants")
}

func (r *RestaurantReadStore) FindKeyset(ctx context.Context, filters queries.RestaurantFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RestaurantView, error) {
	qb := r.listQuery(filters).
		Where(sq.Expr("(created_at, id) < (?, ?)", lastCreatedAt, lastID)).
		Limit(uint64(limit))
	return r.queryList(ctx, qb, "failed to list restaurants after cursor")
}

func (r *RestaurantReadStore) FindInBox(ctx context.Context, box geo.Box, limit int32) ([]*queries.RestaurantView, error) {
	qb := psql.Select(restaurantColumns).
		From("restaurants").
		Where(sq.Eq{"is_active": true}).
		Where(sq.Expr("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)).
		Where(sq.Expr("longitude BETWEEN ? AND ?", box.MinLon, box.MaxLon)).
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(limit))
	return r.queryList(ctx, qb, "failed to find restaurants in bounding box")
}

func (r *RestaurantReadStore) listQuery(filters queries.RestaurantFilters) sq.SelectBuilder {
	qb := psql.Select(restaurantColumns).
		From("restaurants").
		Where(sq.Eq{"is_active": true}).
		OrderBy("created_at DESC, id DESC")

	if filters.Cuisine != nil {
		qb = qb.Where(sq.Eq{"cuisine": *filters.Cuisine})
	}
	if filters.MinRating != nil {
		qb = qb.Where(sq.GtOrEq{"rating": *filters.MinRating})
	}
	if filters.PriceRange != nil {
		qb = qb.Where(sq.Eq{"price_range": *filters.PriceRange})
	}
	if filters.Featured != nil {
		qb = qb.Where(sq.Eq{"featured": *filters.Featured})
	}
	if filters.Search != nil {
		qb = qb.Where(sq.ILike{"name": "%" + *filters.Search + "%"})
	}
	return qb
}

func (r *RestaurantReadStore) queryList(ctx context.Context, qb sq.SelectBuilder, msg string) ([]*queries.RestaurantView, error) {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	var out []*queries.RestaurantView
	for rows.Next() {
		rv, err := scanRestaurant(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (*queries.RestaurantView, error) {
	var rv queries.RestaurantView
	err := row.Scan(
		&rv.ID,
		&rv.OwnerID,
		&rv.Name,
		&rv.Description,
		&rv.Cuisine,
		&rv.Address,
		&rv.Latitude,
		&rv.Longitude,
		&rv.PriceRange,
		&rv.ImageURL,
		&rv.Rating,
		&rv.TotalReviews,
		&rv.Featured,
		&rv.IsActive,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
