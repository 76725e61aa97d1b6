package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"fmt"
)

// SQLPlanRepository is the Postgres implementation of ports.PlanRepository.
type SQLPlanRepository struct {
	DB *sql.DB
}

func NewSQLPlanRepository(db *sql.DB) *SQLPlanRepository {
	return &SQLPlanRepository{DB: db}
}

func (r *SQLPlanRepository) SavePlan(ctx context.Context, plan *domain.RoutePlan) (err error) {
	defer obs.Time(ctx, "plans.SavePlan")(&err)

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

	_, err = r.DB.ExecContext(ctx, `
	INSERT INTO plans (id, created_at, feasible, total_distance_km, plan_json)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		feasible = EXCLUDED.feasible,
		total_distance_km = EXCLUDED.total_distance_km,
		plan_json = EXCLUDED.plan_json;
	`, plan.ID, plan.CreatedAt, plan.Feasible, plan.TotalDistanceKm, string(raw))
	if err != nil {
		return fmt.Errorf("save plan %s: %w", plan.ID, err)
	}
	return nil
}

func (r *SQLPlanRepository) GetPlan(ctx context.Context, id string) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "plans.GetPlan")(&err)

	if r.DB == nil {
		return nil, errors.New("get plan: db is nil")
	}

	var raw string
	err = r.DB.QueryRowContext(ctx, `SELECT plan_json FROM plans WHERE id = $1;`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %q: %w", id, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %q: %w", id, err)
	}

	return decodePlan(raw)
}

func (r *SQLPlanRepository) ListPlans(ctx context.Context, limit int) (_ []*domain.RoutePlan, err error) {
	defer obs.Time(ctx, "plans.ListPlans")(&err)

	if r.DB == nil {
		return nil, errors.New("list plans: db is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT plan_json
	FROM plans
	ORDER BY created_at DESC, id DESC
	LIMIT $1;
	`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list plans: query plans table: %w", err)
	}
	defer rows.Close()

	return scanPlans(rows)
}
