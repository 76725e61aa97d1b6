package stations

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/ports"
)

// FallbackRecorder is notified when the fallback catalog answers a query.
type FallbackRecorder interface {
	RecordFallback(provider string)
}

// Directory answers from a live directory and degrades to the curated catalog when the
// live source fails. A nil live directory means fallback-only mode.
type Directory struct {
	live     ports.ChargingStationDirectory
	fallback *Catalog
	recorder FallbackRecorder
	log      logger.Logger
}

func NewDirectory(live ports.ChargingStationDirectory, fallback *Catalog, recorder FallbackRecorder, log logger.Logger) *Directory {
	if fallback == nil {
		fallback = DefaultCatalog()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Directory{live: live, fallback: fallback, recorder: recorder, log: log}
}

func (d *Directory) FindNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	connectors []domain.ConnectorType,
) ([]domain.ChargingStation, error) {
	if d.live == nil {
		return d.fallback.FindNearby(ctx, lat, lng, radiusKm, connectors)
	}

	found, err := d.live.FindNearby(ctx, lat, lng, radiusKm, connectors)
	if err == nil {
		return found, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	d.log.Warnf("live station directory failed, using fallback catalog: %v", err)
	if d.recorder != nil {
		d.recorder.RecordFallback("stations")
	}
	return d.fallback.FindNearby(ctx, lat, lng, radiusKm, connectors)
}
