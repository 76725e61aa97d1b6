package services

import (
	"context"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Location is either explicit coordinates or a free-text place to geocode.
type Location struct {
	Point *domain.GeoPoint
	Query string
}

type PlanTripRequest struct {
	Origin      Location
	Destination Location
	Waypoints   []Location
	Vehicle     domain.Vehicle
	InitialSOC  float64
	// Weather overrides the provider lookup when set.
	Weather *domain.WeatherSample
	// SegmentLengthKm overrides the configured split length when set.
	SegmentLengthKm *float64
}

// TripPlannerDeps wires the collaborators of a TripPlanner. Geocoder and Weather may be nil:
// requests then need explicit coordinates and use the default weather sample.
type TripPlannerDeps struct {
	Geocoder       ports.Geocoder
	Weather        ports.WeatherProvider
	Segmenter      *RouteSegmenter
	Charging       *ChargingStopPlanner
	WeatherTimeout time.Duration
	Logger         logger.Logger
	Metrics        *obs.Metrics
	Now            func() time.Time
	NewID          func() string
}

// TripPlanner runs one planning request end to end. It holds no per-request state and is
// safe for concurrent use.
type TripPlanner struct {
	deps TripPlannerDeps
}

func NewTripPlanner(deps TripPlannerDeps) (*TripPlanner, error) {
	if deps.Segmenter == nil {
		return nil, errors.New("new trip planner: segmenter is required")
	}
	if deps.Charging == nil {
		return nil, errors.New("new trip planner: charging stop planner is required")
	}
	if deps.WeatherTimeout <= 0 {
		deps.WeatherTimeout = 5 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = logger.NopLogger{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &TripPlanner{deps: deps}, nil
}

// PlanTrip resolves the trip points, builds segments, inserts charging stops and returns
// the assembled plan. Provider failures degrade; invalid input and unknown places are fatal.
func (t *TripPlanner) PlanTrip(ctx context.Context, req PlanTripRequest) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "planner.PlanTrip")(&err)
	start := time.Now()

	if err := req.Vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	if math.IsNaN(req.InitialSOC) || req.InitialSOC < 0 || req.InitialSOC > 100 {
		return nil, fmt.Errorf("plan trip: %w (got %v)", domain.ErrInvalidSOC, req.InitialSOC)
	}

	if req.SegmentLengthKm != nil {
		if err := ValidateSegmentLength(*req.SegmentLengthKm); err != nil {
			return nil, fmt.Errorf("plan trip: %w", err)
		}
	}

	points, err := t.resolvePoints(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	segmenter := t.deps.Segmenter
	if req.SegmentLengthKm != nil {
		segmenter = segmenter.WithSegmentLength(*req.SegmentLengthKm)
	}

	legs, err := segmenter.Legs(points)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	// Elevation and weather are independent lookups.
	var (
		profiles []ElevationProfile
		weather  domain.WeatherSample
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		profiles, e = segmenter.Profiles(gctx, legs)
		return e
	})
	g.Go(func() error {
		weather = t.currentWeather(gctx, req, points[0])
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	segments, err := BuildSegments(legs, profiles, req.Vehicle, weather)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	charging, err := t.deps.Charging.Plan(ctx, segments, req.Vehicle, req.InitialSOC)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	plan := AssemblePlan(AssembleInput{
		ID:          t.deps.NewID(),
		CreatedAt:   t.deps.Now().UTC(),
		Origin:      points[0],
		Destination: points[len(points)-1],
		Vehicle:     req.Vehicle,
		InitialSOC:  req.InitialSOC,
		Weather:     weather,
		Segments:    segments,
		Charging:    charging,
	})

	t.deps.Metrics.RecordPlan(plan, time.Since(start))
	t.deps.Logger.Infow("plan ready", map[string]any{
		"plan_id":     plan.ID,
		"vehicle":     req.Vehicle.ID,
		"segments":    len(plan.Segments),
		"stops":       len(plan.ChargingStops),
		"distance_km": plan.TotalDistanceKm,
		"final_soc":   plan.FinalSOC,
		"feasible":    plan.Feasible,
	})

	return plan, nil
}

// ResolveLocation returns explicit coordinates as is and geocodes free text.
// Zero geocoding results are reported as domain.ErrLocationNotFound.
func (t *TripPlanner) ResolveLocation(ctx context.Context, loc Location) (domain.GeoPoint, error) {
	if loc.Point != nil {
		p := domain.GeoPoint{Lat: loc.Point.Lat, Lng: loc.Point.Lng}
		if !p.Valid() {
			return domain.GeoPoint{}, fmt.Errorf("resolve location: %w", domain.ErrInvalidLocation)
		}
		return p, nil
	}

	q := strings.TrimSpace(loc.Query)
	if q == "" {
		return domain.GeoPoint{}, fmt.Errorf("resolve location: empty query: %w", domain.ErrInvalidLocation)
	}
	if t.deps.Geocoder == nil {
		return domain.GeoPoint{}, fmt.Errorf("resolve location %q: no geocoder configured: %w", q, domain.ErrLocationNotFound)
	}

	results, err := t.deps.Geocoder.Resolve(ctx, q)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("resolve location %q: %w", q, err)
	}
	if len(results) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("resolve location %q: %w", q, domain.ErrLocationNotFound)
	}

	return domain.NewGeoPoint(results[0].Lat, results[0].Lng), nil
}

// resolvePoints geocodes origin, waypoints and destination concurrently, keeping order.
func (t *TripPlanner) resolvePoints(ctx context.Context, req PlanTripRequest) ([]domain.GeoPoint, error) {
	locs := make([]Location, 0, len(req.Waypoints)+2)
	locs = append(locs, req.Origin)
	locs = append(locs, req.Waypoints...)
	locs = append(locs, req.Destination)

	points := make([]domain.GeoPoint, len(locs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, loc := range locs {
		g.Go(func() error {
			p, err := t.ResolveLocation(gctx, loc)
			if err != nil {
				return err
			}
			points[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func (t *TripPlanner) currentWeather(ctx context.Context, req PlanTripRequest, at domain.GeoPoint) domain.WeatherSample {
	if req.Weather != nil {
		return *req.Weather
	}
	if t.deps.Weather == nil {
		return domain.DefaultWeather()
	}

	callCtx, cancel := context.WithTimeout(ctx, t.deps.WeatherTimeout)
	defer cancel()

	w, err := t.deps.Weather.FetchCurrent(callCtx, at.Lat, at.Lng)
	if err != nil {
		t.deps.Logger.Warnf("weather lookup failed, using default sample: %v", err)
		t.deps.Metrics.RecordFallback("weather")
		return domain.DefaultWeather()
	}
	return w
}
