package restaurant

import (
	"errors"
	"strings"
	"time"

	"goeat-api/internal/domain/geo"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyAddress      = errors.New("address cannot be empty")
	ErrInvalidPriceRange = errors.New("price range must be between 1 and 4")
)

type Restaurant struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	name         string
	description  string
	cuisine      string
	address      string
	location     geo.Point
	priceRange   int
	imageURL     string
	rating       float64
	totalReviews int
	isActive     bool
	featured     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewRestaurant(
	ownerID uuid.UUID,
	name, description, cuisine, address string,
	lat, lon float64,
	priceRange int,
	imageURL string,
) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}
	if priceRange < 1 || priceRange > 4 {
		return nil, ErrInvalidPriceRange
	}
	location, err := geo.NewPoint(lat, lon)
	if err != nil {
		return nil, err
	}

	return &Restaurant{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		cuisine:     cuisine,
		address:     address,
		location:    location,
		priceRange:  priceRange,
		imageURL:    imageURL,
		isActive:    true,
	}, nil
}

func (r *Restaurant) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

func (r *Restaurant) ID() uuid.UUID        { return r.id }
func (r *Restaurant) OwnerID() uuid.UUID   { return r.ownerID }
func (r *Restaurant) Name() string         { return r.name }
func (r *Restaurant) Description() string  { return r.description }
func (r *Restaurant) Cuisine() string      { return r.cuisine }
func (r *Restaurant) Address() string      { return r.address }
func (r *Restaurant) Location() geo.Point  { return r.location }
func (r *Restaurant) PriceRange() int      { return r.priceRange }
func (r *Restaurant) ImageURL() string     { return r.imageURL }
func (r *Restaurant) Rating() float64      { return r.rating }
func (r *Restaurant) TotalReviews() int    { return r.totalReviews }
func (r *Restaurant) IsActive() bool       { return r.isActive }
func (r *Restaurant) Featured() bool       { return r.featured }
func (r *Restaurant) CreatedAt() time.Time { return r.createdAt }
func (r *Restaurant) UpdatedAt() time.Time { return r.updatedAt }
