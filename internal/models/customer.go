package models

import "time"

// Customer is scoped to a tenant; UserID links customers that booked
// through their own account.
type Customer struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	TenantID uint  `gorm:"index;not null" json:"tenant_id"`
	UserID   *uint `gorm:"index" json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
