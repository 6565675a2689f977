package dto

// CreateCourseRequest creates a new course
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required" example:"Mathematics"`
	Code string `json:"code" binding:"required" example:"MATH101"`
}

// UpdateCourseRequest updates an existing course
type UpdateCourseRequest struct {
	Name string `json:"name" binding:"required" example:"Mathematics"`
	Code string `json:"code" binding:"required" example:"MATH101"`
}
