package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"ev-route-service/internal/domain"
	"fmt"
)

// SQLite implementation of ports.PlanRepository.
// Plans are stored as JSON next to a few indexed summary columns.
type SqlitePlanRepository struct {
	DB *sql.DB
}

func NewSqlitePlanRepository(db *sql.DB) *SqlitePlanRepository {
	return &SqlitePlanRepository{DB: db}
}

func (r *SqlitePlanRepository) SavePlan(ctx context.Context, plan *domain.RoutePlan) error {
	if r.DB == nil {
		return errors.New("save plan: db is nil")
	}
	if plan == nil || plan.ID == "" {
		return errors.New("save plan: plan id must be non-empty")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save plan %s: encode: %w", plan.ID, err)
	}

	query := `
	INSERT OR REPLACE INTO plans (
		id,
		created_at,
		feasible,
		total_distance_km,
		plan_json
	)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err = r.DB.ExecContext(ctx, query,
		plan.ID, plan.CreatedAt.UnixNano(), plan.Feasible, plan.TotalDistanceKm, string(raw))
	if err != nil {
		return fmt.Errorf("save plan %s: %w", plan.ID, err)
	}
	return nil
}

func (r *SqlitePlanRepository) GetPlan(ctx context.Context, id string) (*domain.RoutePlan, error) {
	if r.DB == nil {
		return nil, errors.New("get plan: db is nil")
	}

	var raw string
	err := r.DB.QueryRowContext(ctx, `SELECT plan_json FROM plans WHERE id = ?;`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %q: %w", id, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %q: %w", id, err)
	}

	return decodePlan(raw)
}

func (r *SqlitePlanRepository) ListPlans(ctx context.Context, limit int) ([]*domain.RoutePlan, error) {
	if r.DB == nil {
		return nil, errors.New("list plans: db is nil")
	}

	query := `
	SELECT plan_json
	FROM plans
	ORDER BY created_at DESC, id DESC
	LIMIT ?;
	`
	rows, err := r.DB.QueryContext(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list plans: query plans table: %w", err)
	}
	defer rows.Close()

	return scanPlans(rows)
}

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

func decodePlan(raw string) (*domain.RoutePlan, error) {
	var plan domain.RoutePlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}

func scanPlans(rows *sql.Rows) ([]*domain.RoutePlan, error) {
	plans := []*domain.RoutePlan{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("list plans: scan rows: %w", err)
		}
		plan, err := decodePlan(raw)
		if err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}
	return plans, nil
}
