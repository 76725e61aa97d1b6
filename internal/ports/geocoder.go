package ports

import "context"

// A single geocoding match.
type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

// Contract for resolving free-text place names to coordinates.
type Geocoder interface {
	// Return candidate matches, best first. An empty result is not an error here;
	// callers decide whether a missing location is fatal.
	Resolve(ctx context.Context, text string) ([]GeocodeResult, error)
}
