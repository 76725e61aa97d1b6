package dto

import (
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

type ListVehiclesResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
}

type GeocodeResponse struct {
	Query   string                `json:"query"`
	Results []ports.GeocodeResult `json:"results"`
}

type ListStationsResponse struct {
	Stations []domain.ChargingStation `json:"stations"`
}
