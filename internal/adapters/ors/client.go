package ors

import (
	"errors"
	"ev-route-service/internal/platform/httpx"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/ports"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openrouteservice.org"

// Client implements Geocoder and ElevationProvider using OpenRouteService.
//
// It coordinates:
//   - Query normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	http         *httpx.Client
	baseURL      string
	country      string
	geocodeCache ports.GeocodeCache
	log          logger.Logger
}

type Config struct {
	APIKey  string
	BaseURL string
	// Country restricts geocoding to an ISO 3166-1 alpha-2/3 country code (optional).
	Country string
	Timeout time.Duration
	// Logger defaults to an "ors" component logger.
	Logger logger.Logger
}

func NewClient(cfg Config, geocodeCache ports.GeocodeCache, opts ...httpx.Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	log := cfg.Logger
	if log == nil {
		log = logger.New("ors")
	}

	return &Client{
		http:         httpx.New(cfg.Timeout, append([]httpx.Option{httpx.WithHeader("Authorization", cfg.APIKey)}, opts...)...),
		baseURL:      baseURL,
		country:      cfg.Country,
		geocodeCache: geocodeCache,
		log:          log,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
