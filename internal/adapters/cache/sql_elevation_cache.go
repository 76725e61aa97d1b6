package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"fmt"
	"strings"
)

// SQLElevationCache is a Postgres-backed cache for leg elevation profiles.
type SQLElevationCache struct {
	DB *sql.DB
}

func NewSQLElevationCache(db *sql.DB) *SQLElevationCache {
	return &SQLElevationCache{DB: db}
}

func (s *SQLElevationCache) GetProfile(
	ctx context.Context,
	from, to string,
	samples int,
) (_ []ports.ElevationSample, _ bool, err error) {
	defer obs.Time(ctx, "elevation.cache.GetProfile")(&err)

	if s.DB == nil {
		return nil, false, errors.New("elevation cache: db is nil")
	}

	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil, false, errors.New("get elevation cache: leg keys must not be empty")
	}

	q := `
	SELECT profile_json
    FROM elevation_cache
    WHERE origin = $1
        AND destination = $2
        AND samples = $3;
	`

	var raw string
	err = s.DB.QueryRowContext(ctx, q, from, to, samples).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get elevation cache: query elevation_cache table: %w", err)
	}

	var profile []ports.ElevationSample
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, false, fmt.Errorf("get elevation cache: decode profile: %w", err)
	}

	return profile, true, nil
}

func (s *SQLElevationCache) PutProfile(
	ctx context.Context,
	from, to string,
	samples int,
	profile []ports.ElevationSample,
) (err error) {
	defer obs.Time(ctx, "elevation.cache.PutProfile")(&err)

	if s.DB == nil {
		return errors.New("elevation cache: db is nil")
	}

	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return errors.New("insert elevation cache: leg keys must not be empty")
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("insert elevation cache: encode profile: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO elevation_cache (origin, destination, samples, profile_json)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination, samples) DO UPDATE
	SET profile_json = EXCLUDED.profile_json;
	`, from, to, samples, string(raw))
	if err != nil {
		return fmt.Errorf("insert elevation cache %s -> %s: %w", from, to, err)
	}

	return nil
}
