package obs

import (
	"errors"
	"ev-route-service/internal/domain"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records planner and HTTP metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	plans     *prometheus.CounterVec
	stops     prometheus.Counter
	fallbacks *prometheus.CounterVec
	latency   prometheus.Histogram
	requests  *prometheus.CounterVec
}

// NewMetrics registers the metrics on reg. A nil registerer defaults to the global one.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evroute_plans_total",
		Help: "Number of route plans produced",
	}, []string{"feasible"})
	stops := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "evroute_charging_stops_total",
		Help: "Number of charging stops inserted into plans",
	})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evroute_provider_fallbacks_total",
		Help: "Number of external lookups answered by a fallback",
	}, []string{"provider"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "evroute_plan_duration_seconds",
		Help:    "Time spent producing a route plan",
		Buckets: prometheus.DefBuckets,
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evroute_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if stops, err = register(reg, stops); err != nil {
		return nil, err
	}
	if fallbacks, err = register(reg, fallbacks); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}

	return &Metrics{plans: plans, stops: stops, fallbacks: fallbacks, latency: latency, requests: requests}, nil
}

// register reuses an already registered collector of the same type.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) RecordPlan(plan *domain.RoutePlan, took time.Duration) {
	if m == nil || plan == nil {
		return
	}
	m.plans.WithLabelValues(strconv.FormatBool(plan.Feasible)).Inc()
	m.stops.Add(float64(len(plan.ChargingStops)))
	m.latency.Observe(took.Seconds())
}

func (m *Metrics) RecordFallback(provider string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(provider).Inc()
}

func (m *Metrics) RecordRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
