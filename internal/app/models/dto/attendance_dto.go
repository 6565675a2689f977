package dto

// CreateAttendanceRequest records attendance for a student in a course on a date
type CreateAttendanceRequest struct {
	StudentID   int64   `json:"studentId" binding:"required" example:"1"`
	CourseID    int64   `json:"courseId" binding:"required" example:"2"`
	Date        string  `json:"date" binding:"required" example:"2025-01-15"` // YYYY-MM-DD
	IsPresent   bool    `json:"isPresent" example:"true"`
	CheckinTime *string `json:"checkinTime,omitempty" example:"08:45:00"` // HH:MM:SS
}

// UpdateAttendanceRequest updates presence and check-in time of a record
type UpdateAttendanceRequest struct {
	IsPresent   bool    `json:"isPresent" example:"true"`
	CheckinTime *string `json:"checkinTime,omitempty" example:"08:45:00"`
}
