package models

import "time"

// Profile keeps the role and a cached tenant reference for a user.
type Profile struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	UserID   uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	TenantID *uint `gorm:"index" json:"tenant_id"`

	FullName string `gorm:"size:100" json:"full_name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"size:20;default:'customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
