package config

import (
	"errors"
	"ev-route-service/internal/services"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double underscore,
// e.g. EVP_PLANNER__SEGMENT_LENGTH_KM=120.
const EnvPrefix = "EVP_"

type Config struct {
	Server   ServerConfig    `koanf:"server"`
	Database DatabaseConfig  `koanf:"database"`
	Redis    RedisConfig     `koanf:"redis"`
	ORS      ORSConfig       `koanf:"ors"`
	Weather  WeatherConfig   `koanf:"weather"`
	Stations StationsConfig  `koanf:"stations"`
	Planner  PlannerConfig   `koanf:"planner"`
	Vehicles []VehicleConfig `koanf:"vehicles"`
}

type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	// WriteTimeout covers cold-cache planning, which waits on several external APIs.
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	IdleTimeout    time.Duration `koanf:"idle_timeout"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

// RedisConfig enables the weather and station caches when Addr is set.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type ORSConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Country string        `koanf:"country"`
	Timeout time.Duration `koanf:"timeout"`
}

type WeatherConfig struct {
	BaseURL  string        `koanf:"base_url"`
	Timeout  time.Duration `koanf:"timeout"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

type StationsConfig struct {
	BaseURL  string        `koanf:"base_url"`
	APIKey   string        `koanf:"api_key"`
	Timeout  time.Duration `koanf:"timeout"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
	// FallbackOnly skips the live directory and answers from the built-in catalog.
	FallbackOnly bool `koanf:"fallback_only"`
}

type PlannerConfig struct {
	ElevationSamples int           `koanf:"elevation_samples"`
	SegmentLengthKm  float64       `koanf:"segment_length_km"`
	ElevationTimeout time.Duration `koanf:"elevation_timeout"`
	WeatherTimeout   time.Duration `koanf:"weather_timeout"`
	StationTimeout   time.Duration `koanf:"station_timeout"`
	HistoryLimit     int           `koanf:"history_limit"`
}

// Load reads an optional YAML file, then EVP_ environment overrides. The legacy
// ORS_API_KEY and DATABASE_URL variables are honoured when the matching keys are unset.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil, fmt.Errorf("load config: unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load config: env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.ORS.APIKey == "" {
		cfg.ORS.APIKey = os.Getenv("ORS_API_KEY")
	}
	if cfg.Database.DSN == "" && os.Getenv("DATABASE_URL") != "" {
		cfg.Database.Driver = "postgres"
		cfg.Database.DSN = os.Getenv("DATABASE_URL")
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// SetDefaults fills every unset value.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 120 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "data/evroute.db"
	}

	if c.ORS.BaseURL == "" {
		c.ORS.BaseURL = "https://api.openrouteservice.org"
	}
	if c.ORS.Timeout == 0 {
		c.ORS.Timeout = 15 * time.Second
	}

	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = "https://api.open-meteo.com"
	}
	if c.Weather.Timeout == 0 {
		c.Weather.Timeout = 5 * time.Second
	}
	if c.Weather.CacheTTL == 0 {
		c.Weather.CacheTTL = 15 * time.Minute
	}

	if c.Stations.BaseURL == "" {
		c.Stations.BaseURL = "https://api.openchargemap.io"
	}
	if c.Stations.Timeout == 0 {
		c.Stations.Timeout = 10 * time.Second
	}
	if c.Stations.CacheTTL == 0 {
		c.Stations.CacheTTL = time.Hour
	}

	if c.Planner.ElevationSamples == 0 {
		c.Planner.ElevationSamples = 10
	}
	if c.Planner.ElevationTimeout == 0 {
		c.Planner.ElevationTimeout = 10 * time.Second
	}
	if c.Planner.WeatherTimeout == 0 {
		c.Planner.WeatherTimeout = 5 * time.Second
	}
	if c.Planner.StationTimeout == 0 {
		c.Planner.StationTimeout = 10 * time.Second
	}
	if c.Planner.HistoryLimit == 0 {
		c.Planner.HistoryLimit = 20
	}
}

// Validate checks values that defaults cannot repair.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.Planner.ElevationSamples < 2 {
		return fmt.Errorf("planner.elevation_samples must be at least 2, got %d", c.Planner.ElevationSamples)
	}
	if err := services.ValidateSegmentLength(c.Planner.SegmentLengthKm); err != nil {
		return fmt.Errorf("planner.segment_length_km: %w", err)
	}
	for i, v := range c.Vehicles {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("vehicles[%d]: id is required", i)
		}
	}
	return nil
}

// LiveStations reports whether the live station directory should be queried.
func (c StationsConfig) LiveStations() bool {
	return !c.FallbackOnly && c.APIKey != ""
}
