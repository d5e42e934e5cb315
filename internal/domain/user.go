package domain

import (
	"time"
)

type User struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	PhoneNumber string     `json:"phone_number" gorm:"uniqueIndex;size:17"`
	FirstName   string     `json:"first_name"`
	Email       string     `json:"email,omitempty"`
	Password    string     `json:"-"` // Hashed password
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
