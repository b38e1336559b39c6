package appointment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

func TestListAppointments_ByDateAndMonth(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.create(f.input("14:00", f.shop.Services[0].ID))
	require.NoError(t, err)
	_, err = f.create(f.input("10:00", f.shop.Services[1].ID, f.shop.Services[0].ID))
	require.NoError(t, err)

	uc := usecase.NewListAppointments(f.repo)

	items, err := uc.ByDate(context.Background(), f.shop.Tenant.ID, nil, f.day.Format("2006-01-02"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "10:00", items[0].StartTime.UTC().Format("15:04"))
	assert.Equal(t, []string{"Blow dry", "Haircut"}, items[0].Services)
	assert.Equal(t, "Zeynep Kaya", items[0].CustomerName)
	assert.Equal(t, f.shop.Personnel.Name, items[0].PersonnelName)

	other := f.shop.Personnel.ID + 99
	none, err := uc.ByDate(context.Background(), f.shop.Tenant.ID, &other, f.day.Format("2006-01-02"))
	require.NoError(t, err)
	assert.Empty(t, none)

	month, err := uc.ByMonth(context.Background(), f.shop.Tenant.ID, &f.shop.Personnel.ID, f.day.Year(), int(f.day.Month()))
	require.NoError(t, err)
	assert.Len(t, month, 2)

	_, err = uc.ByDate(context.Background(), f.shop.Tenant.ID, nil, "10/03/2026")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.ByMonth(context.Background(), f.shop.Tenant.ID, nil, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}
