package services

import (
	"ev-route-service/internal/domain"
	"math"
)

const (
	airDensityKgM3     = 1.225
	cruiseSpeedKmh     = 80.0
	airLossFactor      = 0.1
	climbKWhPer100mTon = 0.1
	minAverageSpeedKmh = 30.0
)

// ComputeSegmentEnergy estimates the energy (kWh) and driving time (minutes) of one segment.
//
// Consumption is the sum of a rolling term (vehicle efficiency), a climb term (ascent only)
// and an aerodynamic term at a fixed cruise speed, scaled by a weather multiplier.
// Callers must pass finite, non-negative distance and elevation gain.
func ComputeSegmentEnergy(
	distanceKm float64,
	elevationGainM float64,
	vehicle domain.Vehicle,
	weather domain.WeatherSample,
) (energyKWh float64, durationMin float64) {
	base := distanceKm * vehicle.EfficiencyWhPerKm / 1000
	elevation := (elevationGainM / 100) * (vehicle.MassKg / 1000) * climbKWhPer100mTon

	// Drag force at cruise speed, converted to power and integrated over the cruise time.
	v := cruiseSpeedKmh / 3.6
	dragN := 0.5 * airDensityKgM3 * vehicle.DragCoefficient * vehicle.FrontalAreaM2 * v * v
	powerKW := dragN * v / 1000
	air := powerKW * (distanceKm / cruiseSpeedKmh) * airLossFactor

	energyKWh = math.Max(0, (base+elevation+air)*WeatherMultiplier(weather))
	durationMin = distanceKm / AverageSpeedKmh(distanceKm, weather) * 60

	return energyKWh, durationMin
}

// WeatherMultiplier scales consumption for temperature and wind. Bands stack additively.
func WeatherMultiplier(w domain.WeatherSample) float64 {
	m := 1.0

	switch {
	case w.TemperatureC < 0:
		m += 0.30
	case w.TemperatureC < 10:
		m += 0.15
	case w.TemperatureC > 35:
		m += 0.10
	}

	m += math.Min(0.20, w.WindSpeedKmh/100)
	return m
}

// AverageSpeedKmh picks a typical speed for the trip length, slowed by rain and strong wind.
func AverageSpeedKmh(distanceKm float64, w domain.WeatherSample) float64 {
	speed := 80.0
	switch {
	case distanceKm < 50:
		speed = 60
	case distanceKm < 200:
		speed = 70
	}

	if w.IsWet() {
		speed *= 0.8
	}
	if w.WindSpeedKmh > 50 {
		speed *= 0.9
	}

	return math.Max(minAverageSpeedKmh, speed)
}
