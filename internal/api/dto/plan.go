package dto

import (
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/services"
	"net/http"
	"strings"
	"time"
)

// LocationRequest is either explicit coordinates or a free-text query.
type LocationRequest struct {
	Lat   *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng   *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Query string   `json:"query,omitempty" validate:"max=200"`
}

func (l LocationRequest) check(field string) error {
	hasPoint := l.Lat != nil || l.Lng != nil
	if hasPoint && (l.Lat == nil || l.Lng == nil) {
		return errors.New(field + ": lat and lng must be given together")
	}
	if !hasPoint && strings.TrimSpace(l.Query) == "" {
		return errors.New(field + ": either lat/lng or query is required")
	}
	if hasPoint && l.Query != "" {
		return errors.New(field + ": lat/lng and query are mutually exclusive")
	}
	return nil
}

type VehicleRequest struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	BatteryCapacityKWh float64  `json:"battery_capacity_kwh" validate:"gt=0,lte=300"`
	EfficiencyWhPerKm  float64  `json:"efficiency_wh_per_km" validate:"gt=0,lte=1000"`
	MassKg             float64  `json:"mass_kg" validate:"gte=0"`
	DragCoefficient    float64  `json:"drag_coefficient" validate:"gte=0,lte=2"`
	FrontalAreaM2      float64  `json:"frontal_area_m2" validate:"gte=0,lte=20"`
	MaxChargingSpeedKW float64  `json:"max_charging_speed_kw" validate:"gt=0,lte=1000"`
	Connectors         []string `json:"connectors" validate:"required,min=1,dive,required"`
}

type WeatherRequest struct {
	TemperatureC float64 `json:"temperature_c" validate:"gte=-60,lte=60"`
	WindSpeedKmh float64 `json:"wind_speed_kmh" validate:"gte=0,lte=300"`
	Condition    string  `json:"condition" validate:"max=64"`
}

type PlanRequest struct {
	Origin          *LocationRequest  `json:"origin" validate:"required"`
	Destination     *LocationRequest  `json:"destination" validate:"required"`
	Waypoints       []LocationRequest `json:"waypoints" validate:"max=8,dive"`
	VehicleID       string            `json:"vehicle_id"`
	Vehicle         *VehicleRequest   `json:"vehicle"`
	InitialSOC      *float64          `json:"initial_soc" validate:"required,gte=0,lte=100"`
	Weather         *WeatherRequest   `json:"weather"`
	SegmentLengthKm *float64          `json:"segment_length_km" validate:"omitempty,gte=0,lte=1000"`
}

// Bind checks the cross-field rules the struct tags cannot express.
func (p *PlanRequest) Bind(r *http.Request) error {
	if p.Origin == nil || p.Destination == nil {
		return errors.New("origin and destination are required")
	}
	if err := p.Origin.check("origin"); err != nil {
		return err
	}
	if err := p.Destination.check("destination"); err != nil {
		return err
	}
	for _, wp := range p.Waypoints {
		if err := wp.check("waypoint"); err != nil {
			return err
		}
	}

	if p.SegmentLengthKm != nil {
		if err := services.ValidateSegmentLength(*p.SegmentLengthKm); err != nil {
			return err
		}
	}

	hasID := strings.TrimSpace(p.VehicleID) != ""
	if hasID == (p.Vehicle != nil) {
		return errors.New("exactly one of vehicle_id or vehicle is required")
	}
	return nil
}

// PlanSummary is one row of the plan history listing.
type PlanSummary struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	Origin          domain.GeoPoint `json:"origin"`
	Destination     domain.GeoPoint `json:"destination"`
	VehicleID       string          `json:"vehicle_id"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	ChargingStops   int             `json:"charging_stops"`
	FinalSOC        float64         `json:"final_soc"`
	Feasible        bool            `json:"feasible"`
}

type ListPlansResponse struct {
	Plans []PlanSummary `json:"plans"`
}

func NewPlanSummary(p *domain.RoutePlan) PlanSummary {
	return PlanSummary{
		ID:              p.ID,
		CreatedAt:       p.CreatedAt,
		Origin:          p.Origin,
		Destination:     p.Destination,
		VehicleID:       p.Vehicle.ID,
		TotalDistanceKm: p.TotalDistanceKm,
		ChargingStops:   len(p.ChargingStops),
		FinalSOC:        p.FinalSOC,
		Feasible:        p.Feasible,
	}
}
