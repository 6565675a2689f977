package models

// Student defines the student model based on the 'students' table.
// Exactly one Student row exists per STUDENT-role user.
type Student struct {
	ID         int64  `json:"id" db:"id" example:"1"`                      // Unique identifier for the student record
	UserID     int64  `json:"userId" db:"user_id" example:"5"`             // ID of the associated user account
	Name       string `json:"name" db:"name" example:"John Doe"`           // Student's full display name
	RollNumber string `json:"rollNumber" db:"roll_number" example:"R-042"` // Student's unique roll number

	// Relations (populated when needed)
	User *User `json:"user,omitempty"` // Associated user information
}
