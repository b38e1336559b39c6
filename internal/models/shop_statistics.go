package models

import "time"

type ShopStatistics struct {
	TenantID uint `gorm:"primaryKey;autoIncrement:false" json:"tenant_id"`

	TotalAppointments     int64 `json:"total_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
	CancelledAppointments int64 `json:"cancelled_appointments"`

	TotalOperations int64   `json:"total_operations"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCommission float64 `json:"total_commission"`
	TotalPoints     int64   `json:"total_points"`

	RefreshedAt time.Time `json:"refreshed_at"`
}

func (ShopStatistics) TableName() string { return "shop_statistics" }
