package models

import (
	"sort"
	"time"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantID uint `gorm:"index;not null" json:"tenant_id"`

	CustomerID *uint     `gorm:"index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	PersonnelID *uint      `gorm:"index" json:"personnel_id"`
	Personnel   *Personnel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"personnel,omitempty"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is one service line of an appointment. Position keeps
// the order in which the lines were booked.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`
	ServiceID     uint `gorm:"index;not null" json:"service_id"`
	Position      int  `json:"position"`

	Service *Service `gorm:"constraint:OnDelete:RESTRICT;" json:"service,omitempty"`
}

// ServiceIDs returns the service ids of the appointment in line order.
func (a *Appointment) ServiceIDs() []uint {
	lines := make([]AppointmentService, len(a.Services))
	copy(lines, a.Services)
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Position < lines[j].Position
	})

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ServiceID)
	}
	return ids
}
