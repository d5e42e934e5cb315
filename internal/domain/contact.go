package domain

import (
	"time"
)

// Contact is an address-book entry owned by a user. Besides being a plain
// address-book record it doubles as the privacy gate: a subject's email is
// only revealed to requesters the subject has saved as a contact.
type Contact struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index:idx_contacts_owner_phone,unique"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number" gorm:"index:idx_contacts_owner_phone,unique;index;size:17"`
	Email       string    `json:"email,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Tags        string    `json:"tags,omitempty"` // comma-separated
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
