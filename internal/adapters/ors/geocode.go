package ors

import (
	"context"
	"errors"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"fmt"
	"net/url"
	"strconv"
)

const maxGeocodeResults = 5

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Resolve geocodes free text using OpenRouteService (/geocode/search).
// The best match is cached; a cache hit returns that single match.
func (c *Client) Resolve(ctx context.Context, text string) (_ []ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	key := normalize(text)
	if key == "" {
		return nil, errors.New("ors geocode: text must be non-empty")
	}

	// Resolve via cache before calling ORS geocoding.
	if c.geocodeCache != nil {
		hits, err := c.geocodeCache.GetMany(ctx, []string{key})
		if err != nil {
			c.log.Warnf("geocode cache read failed: %v", err)
		} else if hit, ok := hits[key]; ok {
			return []ports.GeocodeResult{hit}, nil
		}
	}

	q := url.Values{}
	q.Set("text", text)
	q.Set("size", strconv.Itoa(maxGeocodeResults))
	if c.country != "" {
		q.Set("boundary.country", c.country)
	}

	var decoded geocodeResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/geocode/search", q, &decoded); err != nil {
		return nil, fmt.Errorf("ors geocode %q: %w", text, err)
	}

	out := make([]ports.GeocodeResult, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		coords := f.Geometry.Coordinates
		if len(coords) < 2 {
			return nil, fmt.Errorf("ors geocode: invalid coordinate format for %q", text)
		}
		out = append(out, ports.GeocodeResult{
			Lng:         coords[0],
			Lat:         coords[1],
			DisplayName: f.Properties.Label,
		})
	}

	if c.geocodeCache != nil && len(out) > 0 {
		if err := c.geocodeCache.PutMany(ctx, map[string]ports.GeocodeResult{key: out[0]}); err != nil {
			c.log.Warnf("geocode cache write failed: %v", err)
		}
	}

	return out, nil
}
