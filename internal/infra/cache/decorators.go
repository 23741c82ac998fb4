package cache

import (
	"context"
	"fmt"

	"goeat-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// CachedRestaurantQueries caches single-restaurant lookups; list and nearby
// reads always hit the database. Entries expire by TTL, writes do not
// invalidate.
type CachedRestaurantQueries struct {
	queries.RestaurantQueries
	store *Store
}

func NewCachedRestaurantQueries(inner queries.RestaurantQueries, store *Store) queries.RestaurantQueries {
	if store == nil {
		return inner
	}
	return &CachedRestaurantQueries{RestaurantQueries: inner, store: store}
}

func restaurantKey(id uuid.UUID) string {
	return fmt.Sprintf("restaurant:%s", id)
}

func (c *CachedRestaurantQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.RestaurantView, error) {
	var cached queries.RestaurantView
	if c.store.GetJSON(ctx, restaurantKey(id), &cached) {
		return &cached, nil
	}

	rv, err := c.RestaurantQueries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store.SetJSON(ctx, restaurantKey(id), rv)
	return rv, nil
}

// CachedDealQueries caches the today feed, the hottest read in the API.
type CachedDealQueries struct {
	queries.DealQueries
	store *Store
}

func NewCachedDealQueries(inner queries.DealQueries, store *Store) queries.DealQueries {
	if store == nil {
		return inner
	}
	return &CachedDealQueries{DealQueries: inner, store: store}
}

const dealsTodayKey = "deals:today"

func (c *CachedDealQueries) Today(ctx context.Context) ([]*queries.DealView, error) {
	var cached []*queries.DealView
	if c.store.GetJSON(ctx, dealsTodayKey, &cached) {
		return cached, nil
	}

	rows, err := c.DealQueries.Today(ctx)
	if err != nil {
		return nil, err
	}
	c.store.SetJSON(ctx, dealsTodayKey, rows)
	return rows, nil
}
