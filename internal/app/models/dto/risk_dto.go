package dto

import (
	"time"
)

// MetricsData is the aggregated metrics tuple for a student
type MetricsData struct {
	AttendancePercentage     float64 `json:"attendancePercentage" example:"87.5"`
	AverageMarks             float64 `json:"averageMarks" example:"72.3"`
	AssignmentSubmissionRate float64 `json:"assignmentSubmissionRate" example:"100"`
	EngagementMetric         float64 `json:"engagementMetric" example:"87.5"`
	GPA                      float64 `json:"gpa" example:"2.89"`
}

// RiskPredictionData is the classifier verdict for a student
type RiskPredictionData struct {
	RiskLevel   string    `json:"riskLevel" example:"Medium"`
	Confidence  float64   `json:"confidence" example:"0.92"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// RiskAnalysisResponse is returned by the risk analysis endpoints
type RiskAnalysisResponse struct {
	StudentID      int64              `json:"studentId" example:"1"`
	Name           string             `json:"name" example:"John Doe"`
	RollNumber     string             `json:"rollNumber" example:"R-042"`
	CourseID       *int64             `json:"courseId,omitempty" example:"2"`
	CourseName     string             `json:"courseName,omitempty" example:"Mathematics"`
	Metrics        MetricsData        `json:"metrics"`
	RiskPrediction RiskPredictionData `json:"riskPrediction"`
}

// CustomRiskRequest classifies caller-supplied metrics without persisting anything
type CustomRiskRequest struct {
	AttendancePercentage     float64 `json:"attendancePercentage" binding:"min=0,max=100"`
	AverageMarks             float64 `json:"averageMarks" binding:"min=0,max=100"`
	AssignmentSubmissionRate float64 `json:"assignmentSubmissionRate" binding:"min=0,max=100"`
	EngagementMetric         float64 `json:"engagementMetric" binding:"min=0,max=100"`
	GPA                      float64 `json:"gpa" binding:"min=0,max=4"`
}
