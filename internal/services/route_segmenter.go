package services

import (
	"context"
	"errors"
	"ev-route-service/internal/domain"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

const (
	// MinSegmentLengthKm is the shortest accepted split length; 0 disables splitting.
	MinSegmentLengthKm = 1.0
	// MaxRouteSegments caps the segments of one trip. Each one costs an elevation lookup.
	MaxRouteSegments = 500
)

// ValidateSegmentLength accepts 0 (no splitting) or a length of at least MinSegmentLengthKm.
func ValidateSegmentLength(km float64) error {
	if math.IsNaN(km) || km < 0 || (km > 0 && km < MinSegmentLengthKm) {
		return fmt.Errorf("%w: %v km (use 0 or at least %v km)", domain.ErrInvalidSegmentLength, km, MinSegmentLengthKm)
	}
	return nil
}

// Leg is a straight-line piece of the trip before energy is attached to it.
type Leg struct {
	Start      domain.GeoPoint
	End        domain.GeoPoint
	DistanceKm float64
}

// RouteSegmenter turns an ordered list of trip points into contiguous route segments.
//
// Each consecutive pair of points is one leg. With a positive segment length, legs longer
// than that are split into equal straight-line pieces so the charging planner can react
// part-way through a long leg. Elevation for every piece is fetched concurrently.
type RouteSegmenter struct {
	elevation       *ElevationProfileBuilder
	segmentLengthKm float64
	maxConcurrency  int
}

func NewRouteSegmenter(elevation *ElevationProfileBuilder, segmentLengthKm float64) *RouteSegmenter {
	if segmentLengthKm < 0 {
		segmentLengthKm = 0
	}
	return &RouteSegmenter{
		elevation:       elevation,
		segmentLengthKm: segmentLengthKm,
		maxConcurrency:  5,
	}
}

// WithSegmentLength returns a copy using a different split length (0 disables splitting).
func (s *RouteSegmenter) WithSegmentLength(km float64) *RouteSegmenter {
	cp := *s
	cp.segmentLengthKm = math.Max(0, km)
	return &cp
}

// Legs splits the trip points into ordered legs.
func (s *RouteSegmenter) Legs(points []domain.GeoPoint) ([]Leg, error) {
	if len(points) < 2 {
		return nil, errors.New("segment route: at least origin and destination are required")
	}

	for i, p := range points {
		if !p.Valid() {
			return nil, fmt.Errorf("segment route: point %d (%v, %v): %w", i, p.Lat, p.Lng, domain.ErrInvalidLocation)
		}
	}

	dists := make([]float64, len(points)-1)
	counts := make([]int, len(points)-1)
	total := 0
	for i := range dists {
		dists[i] = domain.HaversineKm(points[i], points[i+1])
		counts[i] = s.pieces(dists[i])
		total += counts[i]
		if total > MaxRouteSegments {
			return nil, fmt.Errorf("segment route: more than %d segments at %v km: %w",
				MaxRouteSegments, s.segmentLengthKm, domain.ErrTooManySegments)
		}
	}

	legs := make([]Leg, 0, total)
	for i := range dists {
		from := domain.GeoPoint{Lat: points[i].Lat, Lng: points[i].Lng}
		to := domain.GeoPoint{Lat: points[i+1].Lat, Lng: points[i+1].Lng}
		dist, pieces := dists[i], counts[i]

		if pieces == 1 {
			legs = append(legs, Leg{Start: from, End: to, DistanceKm: dist})
			continue
		}

		cuts := domain.Interpolate(from, to, pieces+1)
		for j := 0; j < pieces; j++ {
			legs = append(legs, Leg{
				Start:      cuts[j],
				End:        cuts[j+1],
				DistanceKm: domain.HaversineKm(cuts[j], cuts[j+1]),
			})
		}
	}

	return legs, nil
}

// pieces is how many equal parts a leg of dist km is cut into.
func (s *RouteSegmenter) pieces(dist float64) int {
	if s.segmentLengthKm <= 0 || dist <= s.segmentLengthKm {
		return 1
	}
	n := math.Ceil(dist / s.segmentLengthKm)
	if n > MaxRouteSegments {
		return MaxRouteSegments + 1
	}
	return int(n)
}

// Profiles fetches the elevation profile of every leg. Results keep leg order.
func (s *RouteSegmenter) Profiles(ctx context.Context, legs []Leg) ([]ElevationProfile, error) {
	profiles := make([]ElevationProfile, len(legs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, leg := range legs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles[i] = s.elevation.Build(gctx, leg.Start, leg.End)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("segment route: elevation profiles: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("segment route: %w", err)
	}

	return profiles, nil
}

// BuildSegments attaches energy and duration to each leg.
func BuildSegments(legs []Leg, profiles []ElevationProfile, vehicle domain.Vehicle, weather domain.WeatherSample) ([]domain.RouteSegment, error) {
	if len(legs) != len(profiles) {
		return nil, fmt.Errorf("build segments: %d legs but %d elevation profiles", len(legs), len(profiles))
	}

	segments := make([]domain.RouteSegment, 0, len(legs))
	for i, leg := range legs {
		gain := profiles[i].GainM
		energy, duration := ComputeSegmentEnergy(leg.DistanceKm, gain, vehicle, weather)

		segments = append(segments, domain.RouteSegment{
			Start:             leg.Start,
			End:               leg.End,
			DistanceKm:        leg.DistanceKm,
			DurationMin:       duration,
			ElevationGainM:    gain,
			EnergyRequiredKWh: energy,
		})
	}
	return segments, nil
}

// Segment runs the whole pipeline for the given trip points.
func (s *RouteSegmenter) Segment(
	ctx context.Context,
	points []domain.GeoPoint,
	vehicle domain.Vehicle,
	weather domain.WeatherSample,
) ([]domain.RouteSegment, error) {
	legs, err := s.Legs(points)
	if err != nil {
		return nil, err
	}

	profiles, err := s.Profiles(ctx, legs)
	if err != nil {
		return nil, err
	}

	return BuildSegments(legs, profiles, vehicle, weather)
}
