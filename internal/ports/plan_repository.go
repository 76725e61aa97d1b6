package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// Port: a boundary for persisting finished RoutePlans.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.RoutePlan) error
	// Return domain.ErrPlanNotFound when no plan has the given id.
	GetPlan(ctx context.Context, id string) (*domain.RoutePlan, error)
	// Return the most recent plans, newest first.
	ListPlans(ctx context.Context, limit int) ([]*domain.RoutePlan, error)
}
