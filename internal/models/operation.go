package models

import "time"

// Operation is the financial record of one rendered service. The unique
// index ux_operation_line allows at most one row per
// (appointment, service, personnel).
type Operation struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`

	AppointmentID *uint `gorm:"uniqueIndex:ux_operation_line,priority:1" json:"appointment_id"`
	ServiceID     uint  `gorm:"uniqueIndex:ux_operation_line,priority:2;not null" json:"service_id"`
	PersonnelID   uint  `gorm:"uniqueIndex:ux_operation_line,priority:3;not null" json:"personnel_id"`
	CustomerID    *uint `gorm:"index" json:"customer_id"`

	Amount               float64 `json:"amount"`
	CommissionPercentage float64 `json:"commission_percentage"`
	PaidAmount           float64 `json:"paid_amount"`
	Points               int     `json:"points"`

	Description string   `gorm:"size:255" json:"description"`
	Notes       string   `gorm:"size:255" json:"notes"`
	Photos      []string `gorm:"serializer:json" json:"photos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
