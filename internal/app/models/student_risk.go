package models

import (
	"time"
)

// StudentRisk holds the cached classifier output for a student, at most one
// row per student. It is replaced wholesale on every successful classification.
type StudentRisk struct {
	StudentID   int64     `json:"studentId" db:"student_id"`
	RiskLevel   string    `json:"riskLevel" db:"risk_level" example:"High"`
	Confidence  float64   `json:"confidence" db:"confidence" example:"0.92"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
}
