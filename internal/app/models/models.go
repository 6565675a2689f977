package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
)

// AssessmentType identifies the kind of graded event in a course
type AssessmentType string

const (
	AssessmentAssignment AssessmentType = "assignment"
	AssessmentQuiz       AssessmentType = "quiz"
	AssessmentSessional  AssessmentType = "sessional"
)

// IsValidAssessmentType reports whether t is one of the known assessment types
func IsValidAssessmentType(t AssessmentType) bool {
	switch t {
	case AssessmentAssignment, AssessmentQuiz, AssessmentSessional:
		return true
	}
	return false
}
