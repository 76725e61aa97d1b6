package ports

import "context"

// Optional persistent cache of leg elevation profiles.
// Keys are rounded "lat,lng" endpoint strings plus the number of samples requested,
// which may differ from the number of samples the provider returned.
type ElevationCache interface {
	GetProfile(ctx context.Context, from, to string, samples int) ([]ElevationSample, bool, error)
	PutProfile(ctx context.Context, from, to string, samples int, profile []ElevationSample) error
}
