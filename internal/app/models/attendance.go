package models

import (
	"time"
)

// Attendance defines one attendance record based on the 'attendance' table.
// Rows are unique on (student, course, date).
type Attendance struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Date        time.Time `json:"date" db:"date"`
	IsPresent   bool      `json:"isPresent" db:"is_present"`
	CheckinTime *string   `json:"checkinTime,omitempty" db:"checkin_time"` // "HH:MM:SS", nullable

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
