package models

import "time"

// Account is the authentication record backing every actor. The role is
// resolved once at login and embedded in issued tokens; services receive it
// explicitly instead of reading ambient state.
type Account struct {
	BaseModel

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(16);not null;index" json:"role"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at"`
}
