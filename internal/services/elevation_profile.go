package services

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/ports"
	"fmt"
	"strconv"
	"time"
)

const DefaultElevationSamples = 10

// FallbackRecorder is notified whenever an external lookup is answered by a fallback.
type FallbackRecorder interface {
	RecordFallback(provider string)
}

type nopFallbackRecorder struct{}

func (nopFallbackRecorder) RecordFallback(string) {}

// ElevationProfile is the reduced elevation information for one leg.
type ElevationProfile struct {
	Samples []ports.ElevationSample
	GainM   float64
	Flat    bool
}

// ElevationProfileBuilder samples a straight line between two points and reduces the
// provider answer to the total ascent. Provider failures degrade to a flat profile.
type ElevationProfileBuilder struct {
	provider ports.ElevationProvider
	cache    ports.ElevationCache
	samples  int
	timeout  time.Duration
	log      logger.Logger
	fallback FallbackRecorder
}

type ElevationOption func(*ElevationProfileBuilder)

func WithElevationSamples(n int) ElevationOption {
	return func(b *ElevationProfileBuilder) {
		if n >= 2 {
			b.samples = n
		}
	}
}

func WithElevationTimeout(d time.Duration) ElevationOption {
	return func(b *ElevationProfileBuilder) { b.timeout = d }
}

func WithElevationLogger(l logger.Logger) ElevationOption {
	return func(b *ElevationProfileBuilder) { b.log = l }
}

// WithElevationCache stores successful provider answers per leg.
func WithElevationCache(c ports.ElevationCache) ElevationOption {
	return func(b *ElevationProfileBuilder) { b.cache = c }
}

func WithElevationFallbackRecorder(r FallbackRecorder) ElevationOption {
	return func(b *ElevationProfileBuilder) { b.fallback = r }
}

func NewElevationProfileBuilder(provider ports.ElevationProvider, opts ...ElevationOption) *ElevationProfileBuilder {
	b := &ElevationProfileBuilder{
		provider: provider,
		samples:  DefaultElevationSamples,
		timeout:  10 * time.Second,
		log:      logger.NopLogger{},
		fallback: nopFallbackRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the elevation profile for the straight line from -> to.
func (b *ElevationProfileBuilder) Build(ctx context.Context, from, to domain.GeoPoint) ElevationProfile {
	if b.provider == nil {
		return flatProfile(from, to)
	}

	fromKey, toKey := LegKey(from), LegKey(to)
	if b.cache != nil {
		cached, ok, err := b.cache.GetProfile(ctx, fromKey, toKey, b.samples)
		if err != nil {
			b.log.Warnf("elevation cache read failed: %v", err)
		} else if ok && len(cached) >= 2 {
			return ElevationProfile{Samples: cached, GainM: ElevationGain(cached)}
		}
	}

	points := domain.Interpolate(from, to, b.samples)

	callCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	samples, err := b.provider.FetchProfile(callCtx, points)
	if err == nil && len(samples) < 2 {
		err = fmt.Errorf("elevation profile: expected %d samples, got %d", len(points), len(samples))
	}
	if err != nil {
		b.log.Warnf("elevation lookup failed, using flat profile: %v", err)
		b.fallback.RecordFallback("elevation")
		return flatProfile(from, to)
	}

	if b.cache != nil {
		if err := b.cache.PutProfile(ctx, fromKey, toKey, b.samples, samples); err != nil {
			b.log.Warnf("elevation cache write failed: %v", err)
		}
	}

	return ElevationProfile{Samples: samples, GainM: ElevationGain(samples)}
}

// LegKey renders a point as a cache key with five decimals (about one metre).
func LegKey(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lat, 'f', 5, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 5, 64)
}

// ElevationGain sums the positive deltas between consecutive samples. Descents are ignored.
func ElevationGain(samples []ports.ElevationSample) float64 {
	gain := 0.0
	for i := 1; i < len(samples); i++ {
		if d := samples[i].ElevationM - samples[i-1].ElevationM; d > 0 {
			gain += d
		}
	}
	return gain
}

func flatProfile(from, to domain.GeoPoint) ElevationProfile {
	return ElevationProfile{
		Samples: []ports.ElevationSample{
			{ElevationM: 0, DistanceFromStartM: 0},
			{ElevationM: 0, DistanceFromStartM: domain.HaversineKm(from, to) * 1000},
		},
		GainM: 0,
		Flat:  true,
	}
}
