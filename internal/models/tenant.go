package models

import "time"

// Tenant is the salon (shop). Every personnel, service, category and
// appointment belongs to exactly one tenant.
type Tenant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID uint   `gorm:"index" json:"owner_id"`
	Code    string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`

	Timezone          string `gorm:"size:64;default:'Europe/Istanbul'" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:60" json:"min_advance_minutes"`
	Active            bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
