package dto

// CreateMarksRequest records one assessment result
type CreateMarksRequest struct {
	StudentID        int64   `json:"studentId" binding:"required" example:"1"`
	CourseID         int64   `json:"courseId" binding:"required" example:"2"`
	AssessmentType   string  `json:"assessmentType" binding:"required" example:"quiz"`
	AssessmentNumber int     `json:"assessmentNumber" binding:"required" example:"1"`
	Marks            float64 `json:"marks" example:"18"`
	MaxMarks         float64 `json:"maxMarks" binding:"required" example:"20"`
	Date             string  `json:"date" binding:"required" example:"2025-01-15"` // YYYY-MM-DD
}

// UpdateMarksRequest updates the score of an assessment result
type UpdateMarksRequest struct {
	Marks    float64 `json:"marks" example:"18"`
	MaxMarks float64 `json:"maxMarks" binding:"required" example:"20"`
}
