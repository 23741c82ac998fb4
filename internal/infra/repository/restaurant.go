package repository

import (
	"context"

	"goeat-api/internal/domain/restaurant"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RestaurantRepository struct{}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{}
}

const createRestaurantSQL = `
INSERT INTO restaurants (owner_id, name, description, cuisine, address, latitude, longitude, price_range, image_url, featured, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
RETURNING id`

func (r *RestaurantRepository) Create(ctx context.Context, dbtx db.DBTX, rest *restaurant.Restaurant) (uuid.UUID, error) {
	var id uuid.UUID
	loc := rest.Location()
	err := dbtx.QueryRow(ctx, createRestaurantSQL,
		rest.OwnerID(),
		rest.Name(),
		rest.Description(),
		rest.Cuisine(),
		rest.Address(),
		loc.Latitude,
		loc.Longitude,
		rest.PriceRange(),
		rest.ImageURL(),
		rest.Featured(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create restaurant", err)
	}
	return id, nil
}

// Update uses COALESCE so a nil field leaves the column untouched.
const updateRestaurantSQL = `
UPDATE restaurants SET
	name        = COALESCE($2, name),
	description = COALESCE($3, description),
	cuisine     = COALESCE($4, cuisine),
	address     = COALESCE($5, address),
	image_url   = COALESCE($6, image_url),
	price_range = COALESCE($7, price_range),
	latitude    = COALESCE($8, latitude),
	longitude   = COALESCE($9, longitude),
	is_active   = COALESCE($10, is_active),
	updated_at  = now()
WHERE id = $1`

func (r *RestaurantRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params shared.RestaurantUpdate) error {
	tag, err := dbtx.Exec(ctx, updateRestaurantSQL, id,
		params.Name,
		params.Description,
		params.Cuisine,
		params.Address,
		params.ImageURL,
		params.PriceRange,
		params.Latitude,
		params.Longitude,
		params.IsActive,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update restaurant", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	return nil
}
