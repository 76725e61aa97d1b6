package api

import (
	"ev-route-service/internal/api/handlers"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer needs. Geocoder may be nil.
type Deps struct {
	Planner        *services.TripPlanner
	Plans          ports.PlanRepository
	Vehicles       *services.VehicleCatalog
	Geocoder       ports.Geocoder
	Stations       ports.ChargingStationDirectory
	DB             handlers.Pinger
	Logger         logger.Logger
	Metrics        *obs.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	HistoryLimit   int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logger.NopLogger{}
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestID)
	r.Use(accessLog(d.Logger, d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	health := &handlers.HealthHandler{DB: d.DB}
	plans := &handlers.PlanHandler{
		Planner:      d.Planner,
		Repo:         d.Plans,
		Vehicles:     d.Vehicles,
		Log:          d.Logger,
		DefaultLimit: d.HistoryLimit,
	}
	vehicles := &handlers.VehicleHandler{Catalog: d.Vehicles, Log: d.Logger}
	geocode := &handlers.GeocodeHandler{Geocoder: d.Geocoder, Log: d.Logger}
	stations := &handlers.StationHandler{Directory: d.Stations, Log: d.Logger}

	r.Get("/health", health.Health)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	r.Get("/vehicles", vehicles.List)
	r.Get("/vehicles/{id}", vehicles.Get)
	r.Get("/geocode", geocode.Search)
	r.Get("/stations", stations.Nearby)

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", plans.Create)
		r.Get("/", plans.List)
		r.Get("/{id}", plans.Get)
	})

	return r
}
