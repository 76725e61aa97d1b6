package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// Elevation at one sampled point along a path.
type ElevationSample struct {
	ElevationM         float64 `json:"elevation_m"`
	DistanceFromStartM float64 `json:"distance_from_start_m"`
}

// Contract for retrieving elevation samples along a path.
type ElevationProvider interface {
	// Return one sample per input point, in input order.
	FetchProfile(ctx context.Context, points []domain.GeoPoint) ([]ElevationSample, error)
}
