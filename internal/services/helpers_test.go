package services

import (
	"ev-route-service/internal/domain"
)

var (
	dubai    = domain.NewGeoPoint(25.2048, 55.2708)
	abuDhabi = domain.NewGeoPoint(24.4539, 54.3773)
)

func testVehicle() domain.Vehicle {
	return domain.Vehicle{
		ID:                 "test-ev",
		Name:               "Test EV",
		BatteryCapacityKWh: 75,
		EfficiencyWhPerKm:  150,
		MassKg:             1800,
		DragCoefficient:    0.23,
		FrontalAreaM2:      2.3,
		MaxChargingSpeedKW: 250,
		Connectors:         []domain.ConnectorType{domain.ConnectorCCS2, domain.ConnectorType2},
	}
}

// bareVehicle has no mass or aerodynamic terms, so energy is distance times efficiency.
func bareVehicle(capacityKWh float64) domain.Vehicle {
	return domain.Vehicle{
		ID:                 "bare",
		BatteryCapacityKWh: capacityKWh,
		EfficiencyWhPerKm:  100,
		MaxChargingSpeedKW: 100,
		Connectors:         []domain.ConnectorType{domain.ConnectorCCS2},
	}
}

func calmWeather() domain.WeatherSample {
	return domain.WeatherSample{TemperatureC: 20, WindSpeedKmh: 0, Condition: "clear"}
}

func station(id string, at domain.GeoPoint, powerKW float64, network domain.Network, ports int, amenities ...string) domain.ChargingStation {
	return domain.ChargingStation{
		ID:            id,
		Name:          id,
		Location:      at,
		Network:       network,
		Connectors:    []domain.ConnectorType{domain.ConnectorCCS2},
		MaxPowerKW:    powerKW,
		IsAvailable:   true,
		NumberOfPorts: ports,
		Amenities:     amenities,
	}
}
