package handlers

import (
	"errors"
	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const maxListLimit = 200

type PlanHandler struct {
	Planner  *services.TripPlanner
	Repo     ports.PlanRepository
	Vehicles *services.VehicleCatalog
	Log      logger.Logger
	// DefaultLimit is the history size returned when the request has no limit.
	DefaultLimit int
}

// Create plans a trip, stores the plan and returns it.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if !bind(w, r, &req) {
		return
	}

	vehicle, err := h.vehicle(req)
	if err != nil {
		renderServiceError(w, r, h.Log, "resolve vehicle", err)
		return
	}

	svcReq := services.PlanTripRequest{
		Origin:          toLocation(*req.Origin),
		Destination:     toLocation(*req.Destination),
		Vehicle:         vehicle,
		InitialSOC:      *req.InitialSOC,
		SegmentLengthKm: req.SegmentLengthKm,
	}
	for _, wp := range req.Waypoints {
		svcReq.Waypoints = append(svcReq.Waypoints, toLocation(wp))
	}
	if req.Weather != nil {
		svcReq.Weather = &domain.WeatherSample{
			TemperatureC: req.Weather.TemperatureC,
			WindSpeedKmh: req.Weather.WindSpeedKmh,
			Condition:    strings.ToLower(strings.TrimSpace(req.Weather.Condition)),
		}
	}

	plan, err := h.Planner.PlanTrip(r.Context(), svcReq)
	if err != nil {
		renderServiceError(w, r, h.Log, "plan trip", err)
		return
	}

	if err := h.Repo.SavePlan(r.Context(), plan); err != nil {
		renderServiceError(w, r, h.Log, "save plan", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, plan)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		_ = render.Render(w, r, ErrInvalidRequest(errors.New("plan id is required")))
		return
	}

	plan, err := h.Repo.GetPlan(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, h.Log, "get plan", err)
		return
	}

	render.JSON(w, r, plan)
}

// List returns the most recent plans, newest first.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := h.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			_ = render.Render(w, r, ErrInvalidRequest(fmt.Errorf("limit must be between 1 and %d", maxListLimit)))
			return
		}
		limit = n
	}

	plans, err := h.Repo.ListPlans(r.Context(), limit)
	if err != nil {
		renderServiceError(w, r, h.Log, "list plans", err)
		return
	}

	res := dto.ListPlansResponse{Plans: make([]dto.PlanSummary, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.NewPlanSummary(p))
	}

	render.JSON(w, r, res)
}

func (h *PlanHandler) vehicle(req dto.PlanRequest) (domain.Vehicle, error) {
	if req.Vehicle == nil {
		return h.Vehicles.Get(req.VehicleID)
	}

	v := req.Vehicle
	connectors := make([]domain.ConnectorType, 0, len(v.Connectors))
	for _, raw := range v.Connectors {
		c, err := domain.ParseConnectorType(raw)
		if err != nil {
			return domain.Vehicle{}, fmt.Errorf("%w: %v", domain.ErrInvalidVehicle, err)
		}
		connectors = append(connectors, c)
	}

	id := strings.TrimSpace(v.ID)
	if id == "" {
		id = "custom"
	}

	return domain.Vehicle{
		ID:                 id,
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

func toLocation(l dto.LocationRequest) services.Location {
	if l.Lat != nil && l.Lng != nil {
		p := domain.NewGeoPoint(*l.Lat, *l.Lng)
		return services.Location{Point: &p}
	}
	return services.Location{Query: l.Query}
}
