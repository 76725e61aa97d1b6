package domain

import "time"

// One contiguous driving leg with its own energy and time cost.
// Segments are produced in order and never modified afterwards.
type RouteSegment struct {
	Start             GeoPoint `json:"start"`
	End               GeoPoint `json:"end"`
	DistanceKm        float64  `json:"distance_km"`
	DurationMin       float64  `json:"duration_min"`
	ElevationGainM    float64  `json:"elevation_gain_m"`
	EnergyRequiredKWh float64  `json:"energy_required_kwh"`
}

// A single charging session at a station.
type ChargingStop struct {
	Station         ChargingStation `json:"station"`
	SegmentIndex    int             `json:"segment_index"`
	ArrivalSOC      float64         `json:"arrival_soc"`
	DepartureSOC    float64         `json:"departure_soc"`
	ChargingTimeMin float64         `json:"charging_time_min"`
	EnergyAddedKWh  float64         `json:"energy_added_kwh"`
}

type WarningCode string

const (
	WarningNoCompatibleStation WarningCode = "no_compatible_station"
	WarningSegmentExceedsRange WarningCode = "segment_exceeds_range"
	WarningSOCDepleted         WarningCode = "soc_depleted"
)

// PlanWarning flags a point of the trip where the safety buffer could not be kept.
type PlanWarning struct {
	Code         WarningCode `json:"code"`
	SegmentIndex int         `json:"segment_index"`
	Message      string      `json:"message"`
}

// Represents the energy-aware driving plan for a single trip.
// A RoutePlan is produced once per planning request and is never mutated afterwards.
// Feasible is false when the SOC trajectory drops below zero at a segment boundary.
type RoutePlan struct {
	ID                 string         `json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	Origin             GeoPoint       `json:"origin"`
	Destination        GeoPoint       `json:"destination"`
	Vehicle            Vehicle        `json:"vehicle"`
	InitialSOC         float64        `json:"initial_soc"`
	Weather            WeatherSample  `json:"weather"`
	Segments           []RouteSegment `json:"segments"`
	ChargingStops      []ChargingStop `json:"charging_stops"`
	TotalDistanceKm    float64        `json:"total_distance_km"`
	TotalDurationMin   float64        `json:"total_duration_min"`
	TotalEnergyUsedKWh float64        `json:"total_energy_used_kwh"`
	FinalSOC           float64        `json:"final_soc"`
	WeatherImpact      float64        `json:"weather_impact"`
	Feasible           bool           `json:"feasible"`
	Warnings           []PlanWarning  `json:"warnings"`
}
