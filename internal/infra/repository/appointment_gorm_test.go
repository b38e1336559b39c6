package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestUpdateAppointmentStatus_StaleReadCannotLeaveCompleted(t *testing.T) {
	gdb := testutil.NewDB(t)
	shop := testutil.SeedShop(t, gdb, "salon", 40,
		models.Service{Name: "Haircut", DurationMin: 30, Price: testutil.Ptr(200.0)},
	)
	ap := testutil.SeedAppointment(t, gdb, models.Appointment{
		TenantID:    shop.Tenant.ID,
		PersonnelID: &shop.Personnel.ID,
		Status:      string(domain.StatusConfirmed),
	}, shop.Services[0].ID)

	repo := repository.NewAppointmentGormRepository(gdb)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	// two callers read the confirmed row
	first, err := repo.GetAppointment(ctx, shop.Tenant.ID, ap.ID)
	require.NoError(t, err)
	stale, err := repo.GetAppointment(ctx, shop.Tenant.ID, ap.ID)
	require.NoError(t, err)

	// the first completes it
	_, err = domain.Transition(first, domain.StatusCompleted, now)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateAppointmentStatus(ctx, first, domain.StatusConfirmed))

	// the second still believes it is confirmed
	changed, err := domain.Transition(stale, domain.StatusCancelled, now)
	require.NoError(t, err)
	require.True(t, changed)

	err = repo.UpdateAppointmentStatus(ctx, stale, domain.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, "appointment_busy"), "got %v", err)

	stored, err := repo.GetAppointment(ctx, shop.Tenant.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
	assert.Nil(t, stored.CancelledAt)
}

func TestUpdateAppointmentStatus_OtherTenant(t *testing.T) {
	gdb := testutil.NewDB(t)
	shop := testutil.SeedShop(t, gdb, "salon", 40)
	other := testutil.SeedShop(t, gdb, "other", 40)
	ap := testutil.SeedAppointment(t, gdb, models.Appointment{
		TenantID: shop.Tenant.ID,
		Status:   string(domain.StatusPending),
	})

	repo := repository.NewAppointmentGormRepository(gdb)

	foreign := ap
	foreign.TenantID = other.Tenant.ID
	foreign.Status = string(domain.StatusConfirmed)

	err := repo.UpdateAppointmentStatus(context.Background(), &foreign, domain.StatusPending)
	assert.True(t, httperr.IsBusiness(err, "appointment_busy"))

	_, err = repo.GetAppointment(context.Background(), other.Tenant.ID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
