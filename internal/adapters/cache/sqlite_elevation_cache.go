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

// SQLite backed cache for leg elevation profiles.
// Endpoint keys are expected to be consistent (e.g., rounded) by the caller.
type SqliteElevationCache struct {
	DB *sql.DB
}

func NewSqliteElevationCache(db *sql.DB) *SqliteElevationCache {
	return &SqliteElevationCache{DB: db}
}

// Fetch the cached profile for one leg.
func (s *SqliteElevationCache) GetProfile(
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
    WHERE origin = ?
        AND destination = ?
        AND samples = ?;
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

// Store the profile of one leg, replacing any previous entry.
func (s *SqliteElevationCache) PutProfile(
	ctx context.Context,
	from, to string,
	samples int,
	profile []ports.ElevationSample,
) error {
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
	INSERT OR REPLACE INTO elevation_cache (
        origin,
        destination,
        samples,
        profile_json
    )
    VALUES (?, ?, ?, ?)
	`, from, to, samples, string(raw))
	if err != nil {
		return fmt.Errorf("insert elevation cache %s -> %s: %w", from, to, err)
	}

	return nil
}
