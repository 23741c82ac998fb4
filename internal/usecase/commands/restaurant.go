package commands

import (
	"context"

	"goeat-api/internal/domain/geo"
	"goeat-api/internal/domain/restaurant"
	"goeat-api/internal/pkg/errs"
	"goeat-api/internal/usecase/queries"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRestaurantNotOwned = errs.New("restaurant not owned by user")
	ErrNotOwnerRole       = errs.New("owner role required")
	ErrPartialCoordinates = errs.New("latitude and longitude must be set together")
)

type CreateRestaurantRequest struct {
	Name        string
	Description string
	Cuisine     string
	Address     string
	Latitude    float64
	Longitude   float64
	PriceRange  int
	ImageURL    string
}

type UpdateRestaurantRequest struct {
	Name        *string
	Description *string
	Cuisine     *string
	Address     *string
	ImageURL    *string
	PriceRange  *int
	Latitude    *float64
	Longitude   *float64
	IsActive    *bool
}

type RestaurantCommands interface {
	Create(ctx context.Context, req CreateRestaurantRequest, actorID uuid.UUID, actorRole string) (uuid.UUID, error)
	Update(ctx context.Context, restaurantID uuid.UUID, req UpdateRestaurantRequest, actorID uuid.UUID, actorRole string) error
}

type restaurantCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewRestaurantCommands(uow shared.UnitOfWork) RestaurantCommands {
	return &restaurantCommandsImpl{uow: uow}
}

func (c *restaurantCommandsImpl) Create(ctx context.Context, req CreateRestaurantRequest, actorID uuid.UUID, actorRole string) (uuid.UUID, error) {
	if actorRole != queries.RoleOwner && actorRole != queries.RoleAdmin {
		return uuid.Nil, ErrNotOwnerRole
	}

	rest, err := restaurant.NewRestaurant(actorID, req.Name, req.Description, req.Cuisine, req.Address, req.Latitude, req.Longitude, req.PriceRange, req.ImageURL)
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Restaurants().Create(ctx, tx.DB(), rest)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *restaurantCommandsImpl) Update(ctx context.Context, restaurantID uuid.UUID, req UpdateRestaurantRequest, actorID uuid.UUID, actorRole string) error {
	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude == nil || req.Longitude == nil {
			return ErrPartialCoordinates
		}
		if _, err := geo.NewPoint(*req.Latitude, *req.Longitude); err != nil {
			return err
		}
	}
	if req.PriceRange != nil && (*req.PriceRange < 1 || *req.PriceRange > 4) {
		return restaurant.ErrInvalidPriceRange
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().RestaurantByID(ctx, restaurantID)
		if derr != nil {
			return derr
		}
		if actorRole != queries.RoleAdmin && snap.OwnerID != actorID {
			return ErrRestaurantNotOwned
		}

		return tx.Restaurants().Update(ctx, tx.DB(), restaurantID, shared.RestaurantUpdate{
			Name:        req.Name,
			Description: req.Description,
			Cuisine:     req.Cuisine,
			Address:     req.Address,
			ImageURL:    req.ImageURL,
			PriceRange:  req.PriceRange,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			IsActive:    req.IsActive,
		})
	})
}
