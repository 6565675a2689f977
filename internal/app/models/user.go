package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"jdoe"`                   // User's unique login name
	Password  string    `json:"-" db:"password"`                                         // User's hashed password (excluded from JSON)
	FirstName string    `json:"firstName" db:"first_name" example:"John"`                // User's first name
	LastName  string    `json:"lastName" db:"last_name" example:"Doe"`                   // User's last name
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`               // User's role (STUDENT or TEACHER)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}
