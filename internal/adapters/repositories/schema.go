package repositories

import (
	"context"
	"database/sql"
	"errors"
	"ev-route-service/internal/platform/db"
	"fmt"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS elevation_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        samples INTEGER NOT NULL,
        profile_json TEXT NOT NULL,
        PRIMARY KEY (origin, destination, samples)
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS plans (
        id TEXT PRIMARY KEY,
        created_at INTEGER NOT NULL,
        feasible INTEGER NOT NULL,
        total_distance_km REAL NOT NULL,
        plan_json TEXT NOT NULL
    );
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_plans_created_at
    ON plans(created_at);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS elevation_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        samples INTEGER NOT NULL,
        profile_json TEXT NOT NULL,
        PRIMARY KEY (origin, destination, samples)
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS plans (
        id TEXT PRIMARY KEY,
        created_at TIMESTAMPTZ NOT NULL,
        feasible BOOLEAN NOT NULL,
        total_distance_km DOUBLE PRECISION NOT NULL,
        plan_json TEXT NOT NULL
    );
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_plans_created_at
    ON plans(created_at);
	`,
}

// InitSchema creates the cache and plan tables for the given driver.
func InitSchema(ctx context.Context, conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch driver {
	case db.DriverSQLite, "":
		statements = sqliteSchema
	case db.DriverPostgres:
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported driver %q", driver)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
