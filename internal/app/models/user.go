package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID               int64      `json:"id" db:"id" example:"1"`
	Email            string     `json:"email" db:"email" example:"student@school.bg"`
	Password         string     `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName        string     `json:"firstName" db:"first_name" example:"Ivan"`
	LastName         string     `json:"lastName" db:"last_name" example:"Petrov"`
	RoleType         RoleType   `json:"roleType" db:"role_type" example:"student"`
	IsActive         bool       `json:"isActive" db:"is_active" example:"true"`
	IsLocked         bool       `json:"isLocked" db:"is_locked" example:"false"`
	FailedLogins     int        `json:"-" db:"failed_logins"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled" db:"two_factor_enabled"`
	TwoFactorSecret  *string    `json:"-" db:"two_factor_secret"`
	ResetToken       *string    `json:"-" db:"reset_token"`
	ResetTokenExpiry *time.Time `json:"-" db:"reset_token_expiry"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
