package mock

import (
	"context"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"fmt"
	"strings"
	"sync"
)

var ErrUnavailable = errors.New("mock provider unavailable")

// Geocoder answers from a fixed place table keyed by lower-cased query.
type Geocoder struct {
	places map[string][]ports.GeocodeResult
}

func NewGeocoder(places map[string][]ports.GeocodeResult) *Geocoder {
	m := make(map[string][]ports.GeocodeResult, len(places))
	for k, v := range places {
		m[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Geocoder{m}
}

func (g *Geocoder) Resolve(ctx context.Context, text string) ([]ports.GeocodeResult, error) {
	return g.places[strings.ToLower(strings.TrimSpace(text))], nil
}

// ElevationProvider returns a fixed elevation series, or Err when set.
// Shorter series are repeated from the last value to match the number of points.
type ElevationProvider struct {
	Elevations []float64
	Err        error

	mu    sync.Mutex
	calls int
}

func (p *ElevationProvider) FetchProfile(ctx context.Context, points []domain.GeoPoint) ([]ports.ElevationSample, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}

	out := make([]ports.ElevationSample, len(points))
	dist := 0.0
	for i := range points {
		if i > 0 {
			dist += domain.HaversineKm(points[i-1], points[i]) * 1000
		}
		e := 0.0
		if len(p.Elevations) > 0 {
			e = p.Elevations[min(i, len(p.Elevations)-1)]
		}
		out[i] = ports.ElevationSample{ElevationM: e, DistanceFromStartM: dist}
	}
	return out, nil
}

func (p *ElevationProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// WeatherProvider returns Sample, or Err when set.
type WeatherProvider struct {
	Sample domain.WeatherSample
	Err    error
}

func (p *WeatherProvider) FetchCurrent(ctx context.Context, lat, lng float64) (domain.WeatherSample, error) {
	if p.Err != nil {
		return domain.WeatherSample{}, p.Err
	}
	return p.Sample, nil
}

// StationDirectory filters a static station list by haversine radius and connectors,
// preserving list order. Every query is recorded.
type StationDirectory struct {
	Stations []domain.ChargingStation
	Err      error

	mu      sync.Mutex
	queries []domain.GeoPoint
}

func (d *StationDirectory) FindNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	connectors []domain.ConnectorType,
) ([]domain.ChargingStation, error) {
	d.mu.Lock()
	d.queries = append(d.queries, domain.NewGeoPoint(lat, lng))
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}

	center := domain.NewGeoPoint(lat, lng)
	out := []domain.ChargingStation{}
	for _, s := range d.Stations {
		if domain.HaversineKm(center, s.Location) > radiusKm {
			continue
		}
		if !s.HasConnector(connectors) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *StationDirectory) Queries() []domain.GeoPoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.GeoPoint(nil), d.queries...)
}

// PlanRepository keeps plans in memory.
type PlanRepository struct {
	mu    sync.Mutex
	plans []*domain.RoutePlan
}

func (r *PlanRepository) SavePlan(ctx context.Context, plan *domain.RoutePlan) error {
	if plan == nil || plan.ID == "" {
		return fmt.Errorf("save plan: plan id must be non-empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, plan)
	return nil
}

func (r *PlanRepository) GetPlan(ctx context.Context, id string) (*domain.RoutePlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("get plan %q: %w", id, domain.ErrPlanNotFound)
}

func (r *PlanRepository) ListPlans(ctx context.Context, limit int) ([]*domain.RoutePlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.RoutePlan, 0, len(r.plans))
	for i := len(r.plans) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, r.plans[i])
	}
	return out, nil
}
