package config

import (
	"ev-route-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLegacyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ORS_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	clearLegacyEnv(t)
	path := writeConfig(t, `server:
  addr: ":9000"
  write_timeout: 90s
database:
  driver: postgres
  dsn: "postgres://ev:ev@localhost:5432/ev?sslmode=disable"
redis:
  addr: "localhost:6379"
ors:
  api_key: "ors-key"
  country: "ARE"
weather:
  cache_ttl: 5m
stations:
  api_key: "ocm-key"
planner:
  segment_length_km: 100
  elevation_samples: 12
vehicles:
  - id: "lucid-air"
    name: "Lucid Air"
    battery_capacity_kwh: 112
    efficiency_wh_per_km: 150
    max_charging_speed_kw: 300
    connectors: ["CCS2"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.addr", cfg.Server.Addr, ":9000"},
		{"server.write_timeout", cfg.Server.WriteTimeout, 90 * time.Second},
		{"server.read_timeout", cfg.Server.ReadTimeout, 10 * time.Second},
		{"database.driver", cfg.Database.Driver, "postgres"},
		{"redis.addr", cfg.Redis.Addr, "localhost:6379"},
		{"ors.api_key", cfg.ORS.APIKey, "ors-key"},
		{"ors.country", cfg.ORS.Country, "ARE"},
		{"ors.base_url", cfg.ORS.BaseURL, "https://api.openrouteservice.org"},
		{"weather.cache_ttl", cfg.Weather.CacheTTL, 5 * time.Minute},
		{"stations.live", cfg.Stations.LiveStations(), true},
		{"planner.segment_length_km", cfg.Planner.SegmentLengthKm, 100.0},
		{"planner.elevation_samples", cfg.Planner.ElevationSamples, 12},
		{"planner.station_timeout", cfg.Planner.StationTimeout, 10 * time.Second},
		{"vehicles", len(cfg.Vehicles), 1},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearLegacyEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/evroute.db", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Planner.ElevationSamples)
	assert.Equal(t, 0.0, cfg.Planner.SegmentLengthKm)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Stations.LiveStations())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearLegacyEnv(t)
	path := writeConfig(t, "server:\n  addr: \":9000\"\n")

	t.Setenv("EVP_SERVER__ADDR", ":7000")
	t.Setenv("EVP_PLANNER__SEGMENT_LENGTH_KM", "80")
	t.Setenv("EVP_STATIONS__FALLBACK_ONLY", "true")
	t.Setenv("EVP_STATIONS__API_KEY", "ocm-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 80.0, cfg.Planner.SegmentLengthKm)
	assert.True(t, cfg.Stations.FallbackOnly)
	assert.False(t, cfg.Stations.LiveStations())
}

func TestLoadLegacyEnv(t *testing.T) {
	t.Setenv("ORS_API_KEY", "legacy-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/ev")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "legacy-key", cfg.ORS.APIKey)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/ev", cfg.Database.DSN)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearLegacyEnv(t)

	_, err := Load(writeConfig(t, "database:\n  driver: mysql\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "planner:\n  segment_length_km: -5\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "planner:\n  segment_length_km: 0.01\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidSegmentLength)

	_, err = Load(writeConfig(t, "vehicles:\n  - name: anonymous\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "config.toml"))
	assert.Error(t, err)
}

func TestVehicleCatalogMergesPresets(t *testing.T) {
	cfg := Config{Vehicles: []VehicleConfig{
		{
			ID:                 "tesla-model-3-lr",
			Name:               "Model 3 (fleet)",
			BatteryCapacityKWh: 60,
			EfficiencyWhPerKm:  140,
			MaxChargingSpeedKW: 170,
			Connectors:         []string{"ccs", "Type 2"},
		},
		{
			ID:                 "byd-atto-3",
			Name:               "BYD Atto 3",
			BatteryCapacityKWh: 60.5,
			EfficiencyWhPerKm:  160,
			MaxChargingSpeedKW: 88,
			Connectors:         []string{"CCS2"},
		},
	}}

	catalog, err := cfg.VehicleCatalog()
	require.NoError(t, err)

	list := catalog.List()
	require.Len(t, list, 6)
	assert.Equal(t, "Model 3 (fleet)", list[0].Name)
	assert.Equal(t, []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2}, list[0].Connectors)
	assert.Equal(t, "byd-atto-3", list[5].ID)
}

func TestVehicleCatalogRejectsUnknownConnector(t *testing.T) {
	cfg := Config{Vehicles: []VehicleConfig{{
		ID:                 "mystery",
		BatteryCapacityKWh: 50,
		EfficiencyWhPerKm:  150,
		MaxChargingSpeedKW: 50,
		Connectors:         []string{"household socket"},
	}}}

	_, err := cfg.VehicleCatalog()
	assert.ErrorIs(t, err, domain.ErrInvalidVehicle)
}
