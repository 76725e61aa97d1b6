package ors

import (
	"context"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"fmt"

	"github.com/twpayne/go-polyline"
)

type elevationLineRequest struct {
	FormatIn  string `json:"format_in"`
	FormatOut string `json:"format_out"`
	Geometry  string `json:"geometry"`
}

type elevationLineResponse struct {
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
}

// FetchProfile retrieves elevations for a path using the OpenRouteService
// elevation/line endpoint. The path is sent as an encoded polyline.
func (c *Client) FetchProfile(ctx context.Context, points []domain.GeoPoint) (_ []ports.ElevationSample, err error) {
	defer obs.Time(ctx, "ors.FetchProfile")(&err)

	if len(points) < 2 {
		return nil, errors.New("ors elevation: at least two points are required")
	}

	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lng})
	}

	body := elevationLineRequest{
		FormatIn:  "encodedpolyline5",
		FormatOut: "geojson",
		Geometry:  string(polyline.EncodeCoords(coords)),
	}

	var decoded elevationLineResponse
	if err := c.http.PostJSON(ctx, c.baseURL+"/elevation/line", body, &decoded); err != nil {
		return nil, fmt.Errorf("ors elevation: %w", err)
	}

	line := decoded.Geometry.Coordinates
	if len(line) < 2 {
		return nil, fmt.Errorf("ors elevation: expected at least 2 points, got %d", len(line))
	}

	out := make([]ports.ElevationSample, 0, len(line))
	dist := 0.0
	var prev domain.GeoPoint
	for i, pt := range line {
		if len(pt) < 3 {
			return nil, fmt.Errorf("ors elevation: point %d has no elevation", i)
		}
		// GeoJSON order is [lon, lat, elevation].
		p := domain.NewGeoPoint(pt[1], pt[0])
		if i > 0 {
			dist += domain.HaversineKm(prev, p) * 1000
		}
		prev = p
		out = append(out, ports.ElevationSample{ElevationM: pt[2], DistanceFromStartM: dist})
	}

	return out, nil
}
