package dto

// CreateStudentAccountRequest creates a user account and student record together
type CreateStudentAccountRequest struct {
	Username   string `json:"username" binding:"required" example:"jdoe"`
	Name       string `json:"name" binding:"required" example:"John Doe"`
	RollNumber string `json:"rollNumber" binding:"required" example:"R-042"`
	Password   string `json:"password,omitempty"` // optional, a default is assigned when empty
}

// UpdateStudentRequest updates student identity fields
type UpdateStudentRequest struct {
	Name       string `json:"name" binding:"required" example:"John Doe"`
	RollNumber string `json:"rollNumber" binding:"required" example:"R-042"`
}
