package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Password       string    `json:"-" db:"password_hash"` // bcrypt hash, never the raw password
	Role           RoleType  `json:"role" db:"role"`
	ContactDetails string    `json:"contactDetails" db:"contact_details"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
