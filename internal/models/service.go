package models

import "time"

// Service is a catalog item. Price and PointValue are nullable because
// catalog rows created from the admin panel may omit them.
type Service struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	TenantID   uint  `gorm:"index;not null" json:"tenant_id"`
	CategoryID *uint `gorm:"index" json:"category_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DurationMin int    `gorm:"default:30" json:"duration_min"`

	Price        *float64 `json:"price"`
	Cost         *float64 `json:"cost"`
	PointValue   *int     `json:"point_value"`
	DisplayOrder int      `gorm:"default:0" json:"display_order"`
	Active       bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
