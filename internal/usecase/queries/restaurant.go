package queries

import (
	"context"
	"sort"
	"time"

	"goeat-api/internal/domain/geo"
	"goeat-api/internal/infra"

	"github.com/google/uuid"
)

type RestaurantView struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Cuisine      string    `json:"cuisine"`
	Address      string    `json:"address"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	PriceRange   int       `json:"price_range"`
	ImageURL     string    `json:"image_url"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"total_reviews"`
	Featured     bool      `json:"featured"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type NearbyRestaurantView struct {
	RestaurantView
	DistanceKm float64 `json:"distance_km"`
}

type RestaurantFilters struct {
	Cuisine    *string
	MinRating  *float64
	PriceRange *int
	Featured   *bool
	Search     *string
}

type RestaurantReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
	FindFirstPage(ctx context.Context, filters RestaurantFilters, limit int32) ([]*RestaurantView, error)
	FindKeyset(ctx context.Context, filters RestaurantFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RestaurantView, error)
	FindInBox(ctx context.Context, box geo.Box, limit int32) ([]*RestaurantView, error)
}

type RestaurantQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
	List(ctx context.Context, filters RestaurantFilters, cursor *Cursor, limit int) ([]*RestaurantView, *Cursor, error)
	Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*NearbyRestaurantView, error)
}

const (
	DefaultNearbyRadiusKm = 5.0
	MaxNearbyRadiusKm     = 50.0
	// Oversampling factor for the box prefilter; corner hits get cut by the
	// exact distance check.
	nearbyOverscan = 3
)

type restaurantQueriesImpl struct {
	repo RestaurantReadStore
}

func NewRestaurantQueries(repo RestaurantReadStore) RestaurantQueries {
	return &restaurantQueriesImpl{repo: repo}
}

func (q *restaurantQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *restaurantQueriesImpl) List(ctx context.Context, filters RestaurantFilters, cursor *Cursor, limit int) ([]*RestaurantView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*RestaurantView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFirstPage(ctx, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindKeyset(ctx, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

// Nearby prefilters with a latitude-corrected bounding box in SQL, then cuts
// the box corners with an exact haversine distance and sorts nearest-first.
func (q *restaurantQueriesImpl) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*NearbyRestaurantView, error) {
	center, err := geo.NewPoint(lat, lon)
	if err != nil {
		return nil, ErrInvalidCoordinates
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	if radiusKm > MaxNearbyRadiusKm {
		radiusKm = MaxNearbyRadiusKm
	}
	limit = ValidateLimit(limit)

	box, err := geo.BoundingBox(center, radiusKm)
	if err != nil {
		return nil, ErrInvalidCoordinates
	}

	rows, err := q.repo.FindInBox(ctx, box, int32(limit*nearbyOverscan))
	if err != nil {
		return nil, err
	}

	results := make([]*NearbyRestaurantView, 0, len(rows))
	for _, rv := range rows {
		p := geo.Point{Latitude: rv.Latitude, Longitude: rv.Longitude}
		d := geo.DistanceKm(center, p)
		if d > radiusKm {
			continue
		}
		results = append(results, &NearbyRestaurantView{RestaurantView: *rv, DistanceKm: d})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
