package handlers

import (
	"errors"
	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const (
	defaultStationRadiusKm = services.StationSearchRadiusKm
	maxStationRadiusKm     = 200.0
)

// VehicleHandler exposes the read-only vehicle catalog.
type VehicleHandler struct {
	Catalog *services.VehicleCatalog
	Log     logger.Logger
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, dto.ListVehiclesResponse{Vehicles: h.Catalog.List()})
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		renderServiceError(w, r, h.Log, "get vehicle", err)
		return
	}
	render.JSON(w, r, v)
}

// GeocodeHandler passes free-text queries through to the configured geocoder.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
	Log      logger.Logger
}

func (h *GeocodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		_ = render.Render(w, r, ErrInvalidRequest(errors.New("q is required")))
		return
	}
	if h.Geocoder == nil {
		_ = render.Render(w, r, errResponse(http.StatusServiceUnavailable, errors.New("geocoding is not configured")))
		return
	}

	results, err := h.Geocoder.Resolve(r.Context(), q)
	if err != nil {
		renderServiceError(w, r, h.Log, "geocode", err)
		return
	}
	if results == nil {
		results = []ports.GeocodeResult{}
	}

	render.JSON(w, r, dto.GeocodeResponse{Query: q, Results: results})
}

// StationHandler lists charging stations around a point.
type StationHandler struct {
	Directory ports.ChargingStationDirectory
	Log       logger.Logger
}

func (h *StationHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := parseFloatParam(q.Get("lat"), "lat", -90, 90)
	if err != nil {
		_ = render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	lng, err := parseFloatParam(q.Get("lng"), "lng", -180, 180)
	if err != nil {
		_ = render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	radius := defaultStationRadiusKm
	if raw := q.Get("radius_km"); raw != "" {
		if radius, err = parseFloatParam(raw, "radius_km", 0, maxStationRadiusKm); err != nil || radius == 0 {
			_ = render.Render(w, r, ErrInvalidRequest(fmt.Errorf("radius_km must be in (0, %.0f]", maxStationRadiusKm)))
			return
		}
	}

	var connectors []domain.ConnectorType
	if raw := q.Get("connectors"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			c, err := domain.ParseConnectorType(part)
			if err != nil {
				_ = render.Render(w, r, ErrInvalidRequest(err))
				return
			}
			connectors = append(connectors, c)
		}
	}

	stations, err := h.Directory.FindNearby(r.Context(), lat, lng, radius, connectors)
	if err != nil {
		renderServiceError(w, r, h.Log, "find stations", err)
		return
	}
	if stations == nil {
		stations = []domain.ChargingStation{}
	}

	render.JSON(w, r, dto.ListStationsResponse{Stations: stations})
}

func parseFloatParam(raw, name string, lo, hi float64) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be between %v and %v", name, lo, hi)
	}
	return v, nil
}
