// Package geo holds the shared location math used by the restaurant and
// event search paths. Both use the same bounding box and the same haversine
// distance so the two endpoints cannot drift apart.
package geo

import (
	"errors"
	"math"
)

const (
	// Kilometers per degree of latitude.
	kmPerDegree = 111.0
	earthRadius = 6371.0
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrInvalidRadius    = errors.New("radius must be positive")
)

type Point struct {
	Latitude  float64
	Longitude float64
}

func NewPoint(lat, lon float64) (Point, error) {
	if lat < -90 || lat > 90 {
		return Point{}, ErrInvalidLatitude
	}
	if lon < -180 || lon > 180 {
		return Point{}, ErrInvalidLongitude
	}
	return Point{Latitude: lat, Longitude: lon}, nil
}

// Box is a rectangular latitude/longitude approximation of a circular search
// radius. It over-includes points near the corners; callers that need an
// exact circle post-filter with DistanceKm.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundingBox computes the degree bounds for a radius around center. The
// longitude delta is corrected by cos(latitude) so the box does not widen
// toward the poles.
func BoundingBox(center Point, radiusKm float64) (Box, error) {
	if radiusKm <= 0 {
		return Box{}, ErrInvalidRadius
	}

	latDelta := radiusKm / kmPerDegree
	lonDelta := latDelta
	if cosLat := math.Cos(center.Latitude * math.Pi / 180); cosLat > 1e-6 {
		lonDelta = latDelta / cosLat
	}

	return Box{
		MinLat: center.Latitude - latDelta,
		MaxLat: center.Latitude + latDelta,
		MinLon: center.Longitude - lonDelta,
		MaxLon: center.Longitude + lonDelta,
	}, nil
}

func (b Box) Contains(p Point) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon
}

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := latB - latA
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadius * math.Asin(math.Sqrt(h))
}

// WithinRadius reports whether p lies within radiusKm of center, measured as
// great-circle distance.
func WithinRadius(center, p Point, radiusKm float64) bool {
	return DistanceKm(center, p) <= radiusKm
}
