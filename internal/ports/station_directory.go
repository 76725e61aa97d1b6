package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// Contract for finding charging stations around a point.
type ChargingStationDirectory interface {
	// Return stations within radiusKm of (lat, lng). When connectors is non-empty only
	// stations offering at least one of them are returned. Order is significant and stable.
	FindNearby(ctx context.Context, lat, lng, radiusKm float64, connectors []domain.ConnectorType) ([]domain.ChargingStation, error)
}
