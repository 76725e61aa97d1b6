package ports

import "context"

// Optional persistent cache in front of a Geocoder. Keys are normalized query strings.
type GeocodeCache interface {
	GetMany(ctx context.Context, queries []string) (map[string]GeocodeResult, error)
	PutMany(ctx context.Context, results map[string]GeocodeResult) error
}
