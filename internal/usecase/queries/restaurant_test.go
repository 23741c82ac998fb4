//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"goeat-api/internal/domain/geo"
	"goeat-api/internal/infra"
	"goeat-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRestaurantReadStore struct {
	byID      map[uuid.UUID]*queries.RestaurantView
	pages     []*queries.RestaurantView
	inBox     []*queries.RestaurantView
	lastBox   geo.Box
	keysetLen int
}

func (s *stubRestaurantReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.RestaurantView, error) {
	if rv, ok := s.byID[id]; ok {
		return rv, nil
	}
	return nil, infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
}

func (s *stubRestaurantReadStore) FindFirstPage(_ context.Context, _ queries.RestaurantFilters, limit int32) ([]*queries.RestaurantView, error) {
	if int(limit) < len(s.pages) {
		return s.pages[:limit], nil
	}
	return s.pages, nil
}

func (s *stubRestaurantReadStore) FindKeyset(_ context.Context, _ queries.RestaurantFilters, _ time.Time, _ uuid.UUID, limit int32) ([]*queries.RestaurantView, error) {
	s.keysetLen = int(limit)
	if int(limit) < len(s.pages) {
		return s.pages[:limit], nil
	}
	return s.pages, nil
}

func (s *stubRestaurantReadStore) FindInBox(_ context.Context, box geo.Box, _ int32) ([]*queries.RestaurantView, error) {
	s.lastBox = box
	return s.inBox, nil
}

func viewAt(name string, lat, lon float64) *queries.RestaurantView {
	return &queries.RestaurantView{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

func TestRestaurantGetByID(t *testing.T) {
	rv := viewAt("Sakura", 35.0, 139.0)
	store := &stubRestaurantReadStore{byID: map[uuid.UUID]*queries.RestaurantView{rv.ID: rv}}
	q := queries.NewRestaurantQueries(store)

	t.Run("found", func(t *testing.T) {
		got, err := q.GetByID(context.Background(), rv.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sakura", got.Name)
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, queries.ErrRestaurantNotFound)
	})
}

func TestRestaurantList(t *testing.T) {
	ctx := context.Background()

	makePages := func(n int) []*queries.RestaurantView {
		out := make([]*queries.RestaurantView, n)
		base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		for i := range out {
			out[i] = viewAt("R", 35, 139)
			out[i].CreatedAt = base.Add(time.Duration(-i) * time.Hour)
		}
		return out
	}

	t.Run("short page has no next cursor", func(t *testing.T) {
		store := &stubRestaurantReadStore{pages: makePages(3)}
		q := queries.NewRestaurantQueries(store)

		rows, next, err := q.List(ctx, queries.RestaurantFilters{}, nil, 20)

		require.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Nil(t, next)
	})

	t.Run("overfetch produces a next cursor and trims the page", func(t *testing.T) {
		store := &stubRestaurantReadStore{pages: makePages(6)}
		q := queries.NewRestaurantQueries(store)

		rows, next, err := q.List(ctx, queries.RestaurantFilters{}, nil, 5)

		require.NoError(t, err)
		assert.Len(t, rows, 5)
		require.NotNil(t, next)

		// The cursor points at the last returned row.
		ts, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[4].ID, id)
		assert.True(t, ts.Equal(rows[4].CreatedAt))
	})

	t.Run("an invalid cursor is rejected", func(t *testing.T) {
		store := &stubRestaurantReadStore{pages: makePages(1)}
		q := queries.NewRestaurantQueries(store)

		_, _, err := q.List(ctx, queries.RestaurantFilters{}, &queries.Cursor{After: "garbage"}, 5)

		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})

	t.Run("a valid cursor routes to the keyset query", func(t *testing.T) {
		store := &stubRestaurantReadStore{pages: makePages(2)}
		q := queries.NewRestaurantQueries(store)
		after := queries.EncodeAfterCursor(time.Now(), uuid.New())

		_, _, err := q.List(ctx, queries.RestaurantFilters{}, &queries.Cursor{After: after}, 10)

		require.NoError(t, err)
		assert.Equal(t, 11, store.keysetLen)
	})
}

func TestRestaurantNearby(t *testing.T) {
	ctx := context.Background()
	centerLat, centerLon := 35.6812, 139.7671

	t.Run("results filter to the radius and sort nearest first", func(t *testing.T) {
		near := viewAt("Near", centerLat+0.005, centerLon)  // ~0.6 km
		mid := viewAt("Mid", centerLat+0.02, centerLon)     // ~2.2 km
		farAway := viewAt("Far", centerLat+0.08, centerLon) // ~8.9 km, outside 5 km
		store := &stubRestaurantReadStore{inBox: []*queries.RestaurantView{mid, farAway, near}}
		q := queries.NewRestaurantQueries(store)

		results, err := q.Nearby(ctx, centerLat, centerLon, 5, 20)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Near", results[0].Name)
		assert.Equal(t, "Mid", results[1].Name)
		assert.Less(t, results[0].DistanceKm, results[1].DistanceKm)
	})

	t.Run("zero radius falls back to the default", func(t *testing.T) {
		inRange := viewAt("Close", centerLat+0.01, centerLon)
		store := &stubRestaurantReadStore{inBox: []*queries.RestaurantView{inRange}}
		q := queries.NewRestaurantQueries(store)

		results, err := q.Nearby(ctx, centerLat, centerLon, 0, 20)

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("radius is capped", func(t *testing.T) {
		store := &stubRestaurantReadStore{}
		q := queries.NewRestaurantQueries(store)

		_, err := q.Nearby(ctx, centerLat, centerLon, 500, 20)

		require.NoError(t, err)
		// A 500 km request searches a box no wider than the 50 km cap allows.
		span := store.lastBox.MaxLat - store.lastBox.MinLat
		assert.InDelta(t, 2*queries.MaxNearbyRadiusKm/111.0, span, 0.01)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		q := queries.NewRestaurantQueries(&stubRestaurantReadStore{})

		_, err := q.Nearby(ctx, 95, 139, 5, 20)

		assert.ErrorIs(t, err, queries.ErrInvalidCoordinates)
	})

	t.Run("limit truncates after sorting", func(t *testing.T) {
		views := []*queries.RestaurantView{
			viewAt("C", centerLat+0.02, centerLon),
			viewAt("A", centerLat+0.001, centerLon),
			viewAt("B", centerLat+0.01, centerLon),
		}
		store := &stubRestaurantReadStore{inBox: views}
		q := queries.NewRestaurantQueries(store)

		results, err := q.Nearby(ctx, centerLat, centerLon, 5, 2)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "A", results[0].Name)
		assert.Equal(t, "B", results[1].Name)
	})
}
