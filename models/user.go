package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values for User.Role. Exactly two roles participate in an order's
// negotiation: the requester who owns it and the reviewing party.
const (
	RoleRequester = "requester"
	RoleReviewer  = "reviewer"
)

// User represents a user in the system (requester or reviewer)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Company   string         `json:"company"`
	Phone     string         `json:"phone"`
	Role      string         `gorm:"not null;default:'requester'" json:"role"` // "requester" or "reviewer"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsReviewer reports whether the user holds the reviewing-party role.
func (u *User) IsReviewer() bool {
	return u.Role == RoleReviewer
}
