package stations

import (
	"context"
	"errors"
	"ev-route-service/internal/adapters/mock"
	"ev-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct{ calls map[string]int }

func (r *countingRecorder) RecordFallback(provider string) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[provider]++
}

func TestDirectoryUsesLiveResults(t *testing.T) {
	live := &mock.StationDirectory{Stations: []domain.ChargingStation{{
		ID:          "live-1",
		Location:    domain.NewGeoPoint(25.2, 55.27),
		Connectors:  []domain.ConnectorType{domain.ConnectorCCS2},
		IsAvailable: true,
	}}}
	rec := &countingRecorder{}

	got, err := NewDirectory(live, nil, rec, nil).FindNearby(context.Background(), 25.2048, 55.2708, 50, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"live-1"}, ids(got))
	assert.Zero(t, rec.calls["stations"])
}

func TestDirectoryFallsBackWhenLiveFails(t *testing.T) {
	live := &mock.StationDirectory{Err: mock.ErrUnavailable}
	rec := &countingRecorder{}
	d := NewDirectory(live, DefaultCatalog(), rec, nil)

	got, err := d.FindNearby(context.Background(), 24.4539, 54.3773, 50, nil)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.LessOrEqual(t, domain.HaversineKm(domain.NewGeoPoint(24.4539, 54.3773), s.Location), 50.0)
	}
	assert.Equal(t, 1, rec.calls["stations"])

	again, err := d.FindNearby(context.Background(), 24.4539, 54.3773, 50, nil)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestDirectoryFallbackOnly(t *testing.T) {
	got, err := NewDirectory(nil, nil, nil, nil).FindNearby(context.Background(), 25.2048, 55.2708, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"uae-tesla-dubai-mall", "uae-dewa-city-walk"}, ids(got))
}

func TestDirectoryReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	live := &mock.StationDirectory{Err: errors.New("request aborted")}
	_, err := NewDirectory(live, nil, nil, nil).FindNearby(ctx, 25.2, 55.27, 50, nil)
	require.ErrorIs(t, err, context.Canceled)
}
