package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentServiceIDs_FollowsPosition(t *testing.T) {
	ap := Appointment{
		Services: []AppointmentService{
			{ServiceID: 7, Position: 2},
			{ServiceID: 3, Position: 0},
			{ServiceID: 9, Position: 1},
		},
	}

	assert.Equal(t, []uint{3, 9, 7}, ap.ServiceIDs())
	assert.Equal(t, uint(7), ap.Services[0].ServiceID, "lines must not be reordered in place")
}

func TestAppointmentServiceIDs_Empty(t *testing.T) {
	ap := Appointment{}
	assert.Empty(t, ap.ServiceIDs())
}
