package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/stats"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestAggregator_Recompute(t *testing.T) {
	gdb := testutil.NewDB(t)
	shop := testutil.SeedShop(t, gdb, "north", 40)
	other := testutil.SeedShop(t, gdb, "south", 10)

	for _, status := range []string{"completed", "completed", "cancelled", "pending"} {
		testutil.SeedAppointment(t, gdb, models.Appointment{TenantID: shop.Tenant.ID, Status: status})
	}
	testutil.SeedAppointment(t, gdb, models.Appointment{TenantID: other.Tenant.ID, Status: "completed"})

	ops := []models.Operation{
		{TenantID: shop.Tenant.ID, ServiceID: 1, PersonnelID: shop.Personnel.ID, Amount: 200, PaidAmount: 80, Points: 5},
		{TenantID: shop.Tenant.ID, ServiceID: 2, PersonnelID: shop.Personnel.ID, Amount: 100, PaidAmount: 40, Points: 2},
		{TenantID: other.Tenant.ID, ServiceID: 3, PersonnelID: other.Personnel.ID, Amount: 999, PaidAmount: 99, Points: 9},
	}
	require.NoError(t, gdb.Create(&ops).Error)

	agg := stats.NewAggregator(repository.NewStatisticsGormRepository(gdb), logging.Discard())

	s, err := agg.Recompute(context.Background(), shop.Tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.TotalAppointments)
	assert.Equal(t, int64(2), s.CompletedAppointments)
	assert.Equal(t, int64(1), s.CancelledAppointments)
	assert.Equal(t, int64(2), s.TotalOperations)
	assert.InDelta(t, 300, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 120, s.TotalCommission, 1e-9)
	assert.Equal(t, int64(7), s.TotalPoints)

	// second run updates the same row
	require.NoError(t, gdb.Create(&models.Operation{TenantID: shop.Tenant.ID, ServiceID: 4, PersonnelID: shop.Personnel.ID, Amount: 50, PaidAmount: 20}).Error)
	_, err = agg.Recompute(context.Background(), shop.Tenant.ID)
	require.NoError(t, err)

	stored, err := agg.Get(context.Background(), shop.Tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.TotalOperations)
	assert.InDelta(t, 350, stored.TotalRevenue, 1e-9)

	var rows int64
	require.NoError(t, gdb.Model(&models.ShopStatistics{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestAggregator_RecomputeAll(t *testing.T) {
	gdb := testutil.NewDB(t)
	a := testutil.SeedShop(t, gdb, "a", 10)
	b := testutil.SeedShop(t, gdb, "b", 10)
	testutil.SeedAppointment(t, gdb, models.Appointment{TenantID: b.Tenant.ID, Status: "pending"})

	agg := stats.NewAggregator(repository.NewStatisticsGormRepository(gdb), logging.Discard())
	require.NoError(t, agg.RecomputeAll(context.Background()))

	sa, err := agg.Get(context.Background(), a.Tenant.ID)
	require.NoError(t, err)
	assert.Zero(t, sa.TotalAppointments)

	sb, err := agg.Get(context.Background(), b.Tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sb.TotalAppointments)
}
