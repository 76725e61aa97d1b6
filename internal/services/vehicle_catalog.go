package services

import (
	"ev-route-service/internal/domain"
	"fmt"
	"strings"
)

// VehicleCatalog is a read-only set of vehicle presets addressable by id.
// Listing keeps insertion order.
type VehicleCatalog struct {
	order []string
	byID  map[string]domain.Vehicle
}

// NewVehicleCatalog validates every vehicle. A later vehicle with an already seen id
// replaces the earlier one in place.
func NewVehicleCatalog(vehicles []domain.Vehicle) (*VehicleCatalog, error) {
	c := &VehicleCatalog{byID: make(map[string]domain.Vehicle, len(vehicles))}

	for _, v := range vehicles {
		v.ID = strings.TrimSpace(v.ID)
		if v.ID == "" {
			return nil, fmt.Errorf("vehicle catalog: %w: id is required", domain.ErrInvalidVehicle)
		}
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("vehicle catalog: %s: %w", v.ID, err)
		}

		if _, seen := c.byID[v.ID]; !seen {
			c.order = append(c.order, v.ID)
		}
		c.byID[v.ID] = v
	}

	return c, nil
}

func (c *VehicleCatalog) Get(id string) (domain.Vehicle, error) {
	v, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Vehicle{}, fmt.Errorf("vehicle %q: %w", id, domain.ErrVehicleNotFound)
	}
	return cloneVehicle(v), nil
}

func (c *VehicleCatalog) List() []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneVehicle(c.byID[id]))
	}
	return out
}

func cloneVehicle(v domain.Vehicle) domain.Vehicle {
	v.Connectors = append([]domain.ConnectorType(nil), v.Connectors...)
	return v
}

// DefaultVehicles are the built-in presets for common models sold in the Gulf region.
func DefaultVehicles() []domain.Vehicle {
	return []domain.Vehicle{
		{
			ID:                 "tesla-model-3-lr",
			Name:               "Tesla Model 3 Long Range",
			BatteryCapacityKWh: 75,
			EfficiencyWhPerKm:  150,
			MassKg:             1844,
			DragCoefficient:    0.23,
			FrontalAreaM2:      2.22,
			MaxChargingSpeedKW: 250,
			Connectors:         []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
		},
		{
			ID:                 "tesla-model-y-lr",
			Name:               "Tesla Model Y Long Range",
			BatteryCapacityKWh: 75,
			EfficiencyWhPerKm:  165,
			MassKg:             1979,
			DragCoefficient:    0.23,
			FrontalAreaM2:      2.58,
			MaxChargingSpeedKW: 250,
			Connectors:         []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
		},
		{
			ID:                 "nissan-leaf-e-plus",
			Name:               "Nissan Leaf e+",
			BatteryCapacityKWh: 59,
			EfficiencyWhPerKm:  172,
			MassKg:             1731,
			DragCoefficient:    0.28,
			FrontalAreaM2:      2.28,
			MaxChargingSpeedKW: 100,
			Connectors:         []domain.ConnectorType{domain.ConnectorCHAdeMO, domain.ConnectorType2},
		},
		{
			ID:                 "hyundai-ioniq-5",
			Name:               "Hyundai Ioniq 5 Long Range",
			BatteryCapacityKWh: 77.4,
			EfficiencyWhPerKm:  170,
			MassKg:             2020,
			DragCoefficient:    0.288,
			FrontalAreaM2:      2.65,
			MaxChargingSpeedKW: 235,
			Connectors:         []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
		},
		{
			ID:                 "bmw-ix3",
			Name:               "BMW iX3",
			BatteryCapacityKWh: 74,
			EfficiencyWhPerKm:  185,
			MassKg:             2185,
			DragCoefficient:    0.29,
			FrontalAreaM2:      2.6,
			MaxChargingSpeedKW: 150,
			Connectors:         []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
		},
	}
}
