package obs

import (
	"ev-route-service/internal/domain"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.RecordPlan(&domain.RoutePlan{Feasible: true, ChargingStops: make([]domain.ChargingStop, 2)}, time.Second)
	m.RecordPlan(&domain.RoutePlan{Feasible: false}, time.Second)
	m.RecordFallback("weather")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.plans.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.plans.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stops))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("weather")))
}

func TestMetricsReuseRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	first.RecordFallback("elevation")
	assert.Equal(t, 1.0, testutil.ToFloat64(second.fallbacks.WithLabelValues("elevation")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordPlan(&domain.RoutePlan{}, time.Second)
	m.RecordFallback("stations")
	m.RecordRequest("GET", "/health", 200)
}
