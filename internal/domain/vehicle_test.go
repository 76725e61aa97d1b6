package domain

import (
	"errors"
	"testing"
)

func validVehicle() Vehicle {
	return Vehicle{
		ID:                 "test",
		BatteryCapacityKWh: 75,
		EfficiencyWhPerKm:  150,
		MassKg:             1800,
		DragCoefficient:    0.23,
		FrontalAreaM2:      2.3,
		MaxChargingSpeedKW: 150,
		Connectors:         []ConnectorType{ConnectorCCS2},
	}
}

func TestVehicleValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *Vehicle)
		ok     bool
	}{
		{"valid", func(v *Vehicle) {}, true},
		{"negative capacity", func(v *Vehicle) { v.BatteryCapacityKWh = -1 }, false},
		{"zero efficiency", func(v *Vehicle) { v.EfficiencyWhPerKm = 0 }, false},
		{"zero charging speed", func(v *Vehicle) { v.MaxChargingSpeedKW = 0 }, false},
		{"negative mass", func(v *Vehicle) { v.MassKg = -5 }, false},
		{"unknown connector", func(v *Vehicle) { v.Connectors = []ConnectorType{"Schuko"} }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := validVehicle()
			tc.mutate(&v)
			err := v.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidVehicle) {
				t.Fatalf("err = %v, want ErrInvalidVehicle", err)
			}
		})
	}
}

func TestVehicleSupports(t *testing.T) {
	v := validVehicle()
	if !v.Supports([]ConnectorType{ConnectorType2, ConnectorCCS2}) {
		t.Fatalf("expected CCS2 vehicle to support CCS2 station")
	}
	if v.Supports([]ConnectorType{ConnectorCHAdeMO}) {
		t.Fatalf("expected CCS2 vehicle not to support CHAdeMO-only station")
	}
}
