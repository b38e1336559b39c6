package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestUpsertOperation_SameLineUpdatesInPlace(t *testing.T) {
	gdb := testutil.NewDB(t)
	shop := testutil.SeedShop(t, gdb, "salon", 40,
		models.Service{Name: "Haircut", DurationMin: 30, Price: testutil.Ptr(10.0)},
	)
	ap := testutil.SeedAppointment(t, gdb, models.Appointment{
		TenantID:    shop.Tenant.ID,
		PersonnelID: &shop.Personnel.ID,
		Status:      "completed",
	}, shop.Services[0].ID)

	repo := repository.NewOperationGormRepository(gdb)
	ctx := context.Background()

	line := func(amount float64) *models.Operation {
		return &models.Operation{
			TenantID:             shop.Tenant.ID,
			AppointmentID:        &ap.ID,
			ServiceID:            shop.Services[0].ID,
			PersonnelID:          shop.Personnel.ID,
			CustomerID:           &shop.Customer.ID,
			Amount:               amount,
			CommissionPercentage: 40,
			PaidAmount:           amount * 0.4,
			Description:          "Haircut performed",
		}
	}

	first := line(10)
	require.NoError(t, repo.UpsertOperation(ctx, first))
	require.NotZero(t, first.ID)

	// no existence check: the second insert hits ux_operation_line
	second := line(20)
	require.NoError(t, repo.UpsertOperation(ctx, second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 20.0, second.Amount)

	var rows []models.Operation
	require.NoError(t, gdb.Where("appointment_id = ?", ap.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 20.0, rows[0].Amount)
	assert.InDelta(t, 8.0, rows[0].PaidAmount, 1e-9)
}

func TestUpsertOperation_DistinctPersonnelAreDistinctLines(t *testing.T) {
	gdb := testutil.NewDB(t)
	shop := testutil.SeedShop(t, gdb, "salon", 40,
		models.Service{Name: "Haircut", DurationMin: 30, Price: testutil.Ptr(10.0)},
	)
	helper := models.Personnel{TenantID: shop.Tenant.ID, Name: "Helper", Active: true}
	require.NoError(t, gdb.Create(&helper).Error)
	ap := testutil.SeedAppointment(t, gdb, models.Appointment{
		TenantID: shop.Tenant.ID,
		Status:   "completed",
	}, shop.Services[0].ID)

	repo := repository.NewOperationGormRepository(gdb)
	ctx := context.Background()

	for _, pid := range []uint{shop.Personnel.ID, helper.ID} {
		require.NoError(t, repo.UpsertOperation(ctx, &models.Operation{
			TenantID:      shop.Tenant.ID,
			AppointmentID: &ap.ID,
			ServiceID:     shop.Services[0].ID,
			PersonnelID:   pid,
			Amount:        10,
		}))
	}

	items, total, err := repo.ListOperations(ctx, operation.ListFilter{TenantID: shop.Tenant.ID, AppointmentID: &ap.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}
