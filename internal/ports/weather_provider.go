package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// Contract for retrieving current conditions near a point.
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, lat, lng float64) (domain.WeatherSample, error)
}
