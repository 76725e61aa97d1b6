package domain

import (
	"fmt"
	"math"
)

// Vehicle describes an electric vehicle model. It is supplied per request and never mutated.
type Vehicle struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	BatteryCapacityKWh float64         `json:"battery_capacity_kwh"`
	EfficiencyWhPerKm  float64         `json:"efficiency_wh_per_km"`
	MassKg             float64         `json:"mass_kg"`
	DragCoefficient    float64         `json:"drag_coefficient"`
	FrontalAreaM2      float64         `json:"frontal_area_m2"`
	MaxChargingSpeedKW float64         `json:"max_charging_speed_kw"`
	Connectors         []ConnectorType `json:"connectors"`
}

// Validate rejects physically meaningless parameters before planning starts.
func (v Vehicle) Validate() error {
	checks := []struct {
		name  string
		value float64
		min   float64
		open  bool
	}{
		{"battery_capacity_kwh", v.BatteryCapacityKWh, 0, true},
		{"efficiency_wh_per_km", v.EfficiencyWhPerKm, 0, true},
		{"max_charging_speed_kw", v.MaxChargingSpeedKW, 0, true},
		{"mass_kg", v.MassKg, 0, false},
		{"drag_coefficient", v.DragCoefficient, 0, false},
		{"frontal_area_m2", v.FrontalAreaM2, 0, false},
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidVehicle, c.name)
		}
		if c.open && c.value <= c.min {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidVehicle, c.name, c.value)
		}
		if !c.open && c.value < c.min {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidVehicle, c.name, c.value)
		}
	}

	for _, c := range v.Connectors {
		if !c.Valid() {
			return fmt.Errorf("%w: unknown connector type %q", ErrInvalidVehicle, c)
		}
	}

	return nil
}

// Supports reports whether the vehicle can use at least one of the given connectors.
func (v Vehicle) Supports(connectors []ConnectorType) bool {
	for _, want := range v.Connectors {
		for _, have := range connectors {
			if want == have {
				return true
			}
		}
	}
	return false
}
