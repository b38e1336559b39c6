package operation

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func price(v float64) *float64 { return &v }
func points(v int) *int        { return &v }

func TestComputeLine_Commission(t *testing.T) {
	cases := []struct {
		price, commission, paid float64
	}{
		{200, 40, 80},
		{100, 40, 40},
		{99.9, 12.5, 12.4875},
		{0.1, 33, 0.033},
		{150, 0, 0},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v@%v", tc.price, tc.commission), func(t *testing.T) {
			line := ComputeLine(&models.Service{Price: price(tc.price)}, tc.commission)
			assert.InDelta(t, tc.price, line.Amount, 1e-9)
			assert.InDelta(t, tc.paid, line.PaidAmount, 1e-9)
			assert.InDelta(t, tc.price*tc.commission/100, line.PaidAmount, 1e-9)
		})
	}
}

func TestComputeLine_Defaults(t *testing.T) {
	line := ComputeLine(&models.Service{}, math.NaN())
	assert.Zero(t, line.Amount)
	assert.Zero(t, line.CommissionPercentage)
	assert.Zero(t, line.PaidAmount)
	assert.Zero(t, line.Points)

	line = ComputeLine(&models.Service{Price: price(math.NaN()), PointValue: points(5)}, 40)
	assert.Zero(t, line.Amount)
	assert.Equal(t, 5, line.Points)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t,
		"Haircut performed - Ayşe Yılmaz (Appointment #42)",
		Describe("Haircut", "Ayşe Yılmaz", 42))
	assert.Equal(t,
		"Haircut performed - unspecified customer (Appointment #7)",
		Describe("Haircut", "", 7))
}

func TestCrossTenantError_Unwraps(t *testing.T) {
	err := fmt.Errorf("derive: %w", &CrossTenantError{AppointmentID: 1, PersonnelID: 2, ActingTenantID: 3, PersonnelTenant: 4})
	assert.True(t, errors.Is(err, ErrCrossTenantViolation))
	assert.Contains(t, err.Error(), "personnel 2 belongs to tenant 4")
}
