package repositories

import (
	"context"
	"database/sql"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/db"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(context.Background(), conn, db.DriverSQLite))
	return conn
}

func testPlan(id string, created time.Time) *domain.RoutePlan {
	return &domain.RoutePlan{
		ID:          id,
		CreatedAt:   created,
		Origin:      domain.NewGeoPoint(25.2048, 55.2708),
		Destination: domain.NewGeoPoint(24.4539, 54.3773),
		Vehicle: domain.Vehicle{
			ID:                 "tesla-model-3-lr",
			BatteryCapacityKWh: 75,
			EfficiencyWhPerKm:  150,
			MaxChargingSpeedKW: 250,
			Connectors:         []domain.ConnectorType{domain.ConnectorCCS2},
		},
		InitialSOC:      80,
		Weather:         domain.DefaultWeather(),
		TotalDistanceKm: 122.9,
		FinalSOC:        52,
		Feasible:        true,
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, InitSchema(context.Background(), conn, db.DriverSQLite))
}

func TestInitSchemaRejectsUnknownDriver(t *testing.T) {
	conn := openTestDB(t)
	require.Error(t, InitSchema(context.Background(), conn, "oracle"))
	require.Error(t, InitSchema(context.Background(), nil, db.DriverSQLite))
}

func TestSqlitePlanRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSqlitePlanRepository(openTestDB(t))

	plan := testPlan("plan-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.SavePlan(ctx, plan))

	got, err := repo.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)
	assert.True(t, plan.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, plan.Vehicle, got.Vehicle)
	assert.Equal(t, plan.TotalDistanceKm, got.TotalDistanceKm)
	assert.True(t, got.Feasible)
}

func TestSqlitePlanRepositoryNotFound(t *testing.T) {
	repo := NewSqlitePlanRepository(openTestDB(t))

	_, err := repo.GetPlan(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestSqlitePlanRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSqlitePlanRepository(openTestDB(t))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SavePlan(ctx, testPlan(fmt.Sprintf("plan-%d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	got, err := repo.ListPlans(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "plan-4", got[0].ID)
	assert.Equal(t, "plan-3", got[1].ID)
	assert.Equal(t, "plan-2", got[2].ID)

	all, err := repo.ListPlans(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSqlitePlanRepositoryRejectsEmptyID(t *testing.T) {
	repo := NewSqlitePlanRepository(openTestDB(t))
	require.Error(t, repo.SavePlan(context.Background(), &domain.RoutePlan{}))
	require.Error(t, repo.SavePlan(context.Background(), nil))
}

func TestSqlitePlanRepositorySaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewSqlitePlanRepository(openTestDB(t))

	plan := testPlan("plan-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.SavePlan(ctx, plan))

	plan.FinalSOC = 40
	require.NoError(t, repo.SavePlan(ctx, plan))

	got, err := repo.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.FinalSOC)

	all, err := repo.ListPlans(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
