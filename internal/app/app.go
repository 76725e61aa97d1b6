package app

import (
	"context"
	"database/sql"
	"errors"
	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/adapters/ors"
	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/adapters/stations"
	"ev-route-service/internal/adapters/weather"
	"ev-route-service/internal/api"
	"ev-route-service/internal/config"
	"ev-route-service/internal/platform/db"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// App is the composition root: it wires concrete adapters behind ports.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Redis    *redis.Client
	Planner  *services.TripPlanner
	Plans    ports.PlanRepository
	Vehicles *services.VehicleCatalog
	Geocoder ports.Geocoder
	Stations ports.ChargingStationDirectory
	Metrics  *obs.Metrics
	Registry *prometheus.Registry

	log logger.Logger
}

// New opens the database (creating the schema), connects Redis when configured and
// builds the planner with every provider available in cfg.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg, log: logger.New("app")}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Registry = prometheus.NewRegistry()
	if a.Metrics, err = obs.NewMetrics(a.Registry); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	if a.DB, err = db.Open(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		return nil, err
	}
	if err = repositories.InitSchema(ctx, a.DB, cfg.Database.Driver); err != nil {
		return nil, err
	}

	if cfg.Redis.Addr != "" {
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if perr := a.Redis.Ping(ctx).Err(); perr != nil {
			// Caches treat Redis errors as misses.
			a.log.Warnf("redis %s unreachable, caches will miss: %v", cfg.Redis.Addr, perr)
		}
	}

	if a.Vehicles, err = cfg.VehicleCatalog(); err != nil {
		return nil, err
	}

	var (
		geocodeCache   ports.GeocodeCache
		elevationCache ports.ElevationCache
	)
	if cfg.Database.Driver == db.DriverPostgres {
		a.Plans = repositories.NewSQLPlanRepository(a.DB)
		geocodeCache = cache.NewSQLGeocodeCache(a.DB)
		elevationCache = cache.NewSQLElevationCache(a.DB)
	} else {
		a.Plans = repositories.NewSqlitePlanRepository(a.DB)
		geocodeCache = cache.NewSqliteGeocodeCache(a.DB)
		elevationCache = cache.NewSqliteElevationCache(a.DB)
	}

	// Without an ORS key, requests need explicit coordinates and elevation is flat.
	var elevation ports.ElevationProvider
	if cfg.ORS.APIKey != "" {
		client, cerr := ors.NewClient(ors.Config{
			APIKey:  cfg.ORS.APIKey,
			BaseURL: cfg.ORS.BaseURL,
			Country: cfg.ORS.Country,
			Timeout: cfg.ORS.Timeout,
			Logger:  logger.New("ors"),
		}, geocodeCache)
		if cerr != nil {
			return nil, cerr
		}
		a.Geocoder = client
		elevation = client
	} else {
		a.log.Warnf("ORS api key not set: geocoding disabled, elevation profiles are flat")
	}

	var weatherProvider ports.WeatherProvider = weather.NewOpenMeteo(cfg.Weather.BaseURL, cfg.Weather.Timeout)
	if a.Redis != nil {
		weatherProvider = cache.NewRedisWeatherCache(weatherProvider, a.Redis, cfg.Weather.CacheTTL, logger.New("weather-cache"))
	}

	var live ports.ChargingStationDirectory
	if cfg.Stations.LiveStations() {
		live = stations.NewOpenChargeMap(cfg.Stations.BaseURL, cfg.Stations.APIKey, cfg.Stations.Timeout)
		if a.Redis != nil {
			live = cache.NewRedisStationCache(live, a.Redis, cfg.Stations.CacheTTL, logger.New("station-cache"))
		}
	}
	a.Stations = stations.NewDirectory(live, stations.DefaultCatalog(), a.Metrics, logger.New("stations"))

	elevationBuilder := services.NewElevationProfileBuilder(elevation,
		services.WithElevationSamples(cfg.Planner.ElevationSamples),
		services.WithElevationTimeout(cfg.Planner.ElevationTimeout),
		services.WithElevationCache(elevationCache),
		services.WithElevationLogger(logger.New("elevation")),
		services.WithElevationFallbackRecorder(a.Metrics),
	)

	a.Planner, err = services.NewTripPlanner(services.TripPlannerDeps{
		Geocoder:       a.Geocoder,
		Weather:        weatherProvider,
		Segmenter:      services.NewRouteSegmenter(elevationBuilder, cfg.Planner.SegmentLengthKm),
		Charging:       services.NewChargingStopPlanner(a.Stations, cfg.Planner.StationTimeout, logger.New("charging")),
		WeatherTimeout: cfg.Planner.WeatherTimeout,
		Logger:         logger.New("planner"),
		Metrics:        a.Metrics,
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler {
	return api.NewRouter(api.Deps{
		Planner:        a.Planner,
		Plans:          a.Plans,
		Vehicles:       a.Vehicles,
		Geocoder:       a.Geocoder,
		Stations:       a.Stations,
		DB:             a.DB,
		Logger:         logger.New("http"),
		Metrics:        a.Metrics,
		Gatherer:       a.Registry,
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		HistoryLimit:   a.Config.Planner.HistoryLimit,
	})
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
