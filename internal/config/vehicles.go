package config

import (
	"ev-route-service/internal/domain"
	"ev-route-service/internal/services"
	"fmt"
)

// VehicleConfig adds a vehicle to the catalog or replaces a preset with the same id.
type VehicleConfig struct {
	ID                 string   `koanf:"id"`
	Name               string   `koanf:"name"`
	BatteryCapacityKWh float64  `koanf:"battery_capacity_kwh"`
	EfficiencyWhPerKm  float64  `koanf:"efficiency_wh_per_km"`
	MassKg             float64  `koanf:"mass_kg"`
	DragCoefficient    float64  `koanf:"drag_coefficient"`
	FrontalAreaM2      float64  `koanf:"frontal_area_m2"`
	MaxChargingSpeedKW float64  `koanf:"max_charging_speed_kw"`
	Connectors         []string `koanf:"connectors"`
}

func (v VehicleConfig) toDomain() (domain.Vehicle, error) {
	connectors := make([]domain.ConnectorType, 0, len(v.Connectors))
	for _, raw := range v.Connectors {
		c, err := domain.ParseConnectorType(raw)
		if err != nil {
			return domain.Vehicle{}, fmt.Errorf("vehicle %s: %w: %v", v.ID, domain.ErrInvalidVehicle, err)
		}
		connectors = append(connectors, c)
	}

	return domain.Vehicle{
		ID:                 v.ID,
		Name:               v.Name,
		BatteryCapacityKWh: v.BatteryCapacityKWh,
		EfficiencyWhPerKm:  v.EfficiencyWhPerKm,
		MassKg:             v.MassKg,
		DragCoefficient:    v.DragCoefficient,
		FrontalAreaM2:      v.FrontalAreaM2,
		MaxChargingSpeedKW: v.MaxChargingSpeedKW,
		Connectors:         connectors,
	}, nil
}

// VehicleCatalog merges the configured vehicles over the built-in presets.
func (c Config) VehicleCatalog() (*services.VehicleCatalog, error) {
	vehicles := services.DefaultVehicles()
	for _, vc := range c.Vehicles {
		v, err := vc.toDomain()
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return services.NewVehicleCatalog(vehicles)
}
