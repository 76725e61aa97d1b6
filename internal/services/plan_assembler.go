package services

import (
	"ev-route-service/internal/domain"
	"math"
	"time"
)

// AssembleInput carries everything the assembler needs to build the final plan.
type AssembleInput struct {
	ID          string
	CreatedAt   time.Time
	Origin      domain.GeoPoint
	Destination domain.GeoPoint
	Vehicle     domain.Vehicle
	InitialSOC  float64
	Weather     domain.WeatherSample
	Segments    []domain.RouteSegment
	Charging    *ChargingPlan
}

// AssemblePlan aggregates segments and stops into the RoutePlan returned to callers.
// Totals are computed from unrounded values and rounded once for display: whole units for
// distance, duration and SOC, one decimal for energy.
func AssemblePlan(in AssembleInput) *domain.RoutePlan {
	charging := in.Charging
	if charging == nil {
		charging = &ChargingPlan{}
	}

	var (
		totalDistance float64
		totalDuration float64
		totalEnergy   float64
		energyAdded   float64
	)

	segments := make([]domain.RouteSegment, 0, len(in.Segments))
	for _, s := range in.Segments {
		totalDistance += s.DistanceKm
		totalDuration += s.DurationMin
		totalEnergy += s.EnergyRequiredKWh

		segments = append(segments, domain.RouteSegment{
			Start:             s.Start,
			End:               s.End,
			DistanceKm:        math.Round(s.DistanceKm),
			DurationMin:       math.Round(s.DurationMin),
			ElevationGainM:    math.Round(s.ElevationGainM),
			EnergyRequiredKWh: roundTo(s.EnergyRequiredKWh, 1),
		})
	}

	stops := make([]domain.ChargingStop, 0, len(charging.Stops))
	for _, st := range charging.Stops {
		totalDuration += st.ChargingTimeMin
		energyAdded += st.EnergyAddedKWh

		st.ChargingTimeMin = math.Round(st.ChargingTimeMin)
		stops = append(stops, st)
	}

	warnings := charging.Warnings
	if warnings == nil {
		warnings = []domain.PlanWarning{}
	}

	return &domain.RoutePlan{
		ID:                 in.ID,
		CreatedAt:          in.CreatedAt,
		Origin:             in.Origin,
		Destination:        in.Destination,
		Vehicle:            in.Vehicle,
		InitialSOC:         in.InitialSOC,
		Weather:            in.Weather,
		Segments:           segments,
		ChargingStops:      stops,
		TotalDistanceKm:    math.Round(totalDistance),
		TotalDurationMin:   math.Round(totalDuration),
		TotalEnergyUsedKWh: roundTo(totalEnergy, 1),
		FinalSOC:           math.Round(FinalSOC(in.InitialSOC, totalEnergy, energyAdded, in.Vehicle.BatteryCapacityKWh)),
		WeatherImpact:      WeatherImpact(in.Weather),
		Feasible:           feasible(charging.SOCAfterSegment),
		Warnings:           warnings,
	}
}

// FinalSOC = clamp(initial - used% + added%, 0, 100).
func FinalSOC(initialSOC, energyUsedKWh, energyAddedKWh, capacityKWh float64) float64 {
	if capacityKWh <= 0 {
		return clampSOC(initialSOC)
	}
	soc := initialSOC - energyUsedKWh/capacityKWh*100 + energyAddedKWh/capacityKWh*100
	return clampSOC(soc)
}

// WeatherImpact is a bounded efficiency delta (percentage points) shown next to the plan.
func WeatherImpact(w domain.WeatherSample) float64 {
	impact := 0.0

	switch {
	case w.TemperatureC < 0:
		impact = -30
	case w.TemperatureC < 10:
		impact = -15
	case w.TemperatureC > 35:
		impact = -10
	}

	if w.WindSpeedKmh > 30 {
		impact -= 5
	}

	return math.Max(-40, math.Min(10, impact))
}

func feasible(socAfterSegment []float64) bool {
	for _, soc := range socAfterSegment {
		if soc < 0 {
			return false
		}
	}
	return true
}
