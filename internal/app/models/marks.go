package models

import (
	"time"
)

// Marks defines one graded assessment result based on the 'marks' table.
// Rows are unique on (student, course, assessment_type, assessment_number, date)
// and marks never exceed max_marks.
type Marks struct {
	ID               int64          `json:"id" db:"id"`
	StudentID        int64          `json:"studentId" db:"student_id"`
	CourseID         int64          `json:"courseId" db:"course_id"`
	AssessmentType   AssessmentType `json:"assessmentType" db:"assessment_type"`
	AssessmentNumber int            `json:"assessmentNumber" db:"assessment_number"`
	Marks            float64        `json:"marks" db:"marks"`
	MaxMarks         float64        `json:"maxMarks" db:"max_marks"`
	Date             time.Time      `json:"date" db:"date"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
