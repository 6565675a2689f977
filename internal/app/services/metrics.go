package services

import (
	"github.com/emre/classtrack/internal/app/models"
)

// fallbackSubmissionRate is reported when a student has no assignment rows at
// all. The rate is otherwise always 100: a stored assignment row is taken to
// mean the assignment was submitted, an approximation inherited from the data
// model, which has no notion of unsubmitted assignments.
const fallbackSubmissionRate = 70.0

// StudentMetrics is the aggregated tuple fed to the risk classifier
type StudentMetrics struct {
	AttendancePercentage     float64
	AverageMarks             float64
	AssignmentSubmissionRate float64
	EngagementMetric         float64
	GPA                      float64
}

// ComputeStudentMetrics derives the metrics tuple from a student's attendance
// and marks rows. It is a pure function of the row sets: empty attendance
// yields 0%, empty marks yield a 0 average, and the engagement metric is the
// attendance percentage (the closest available proxy).
func ComputeStudentMetrics(attendance []*models.Attendance, marks []*models.Marks) StudentMetrics {
	var metrics StudentMetrics

	if len(attendance) > 0 {
		present := 0
		for _, record := range attendance {
			if record.IsPresent {
				present++
			}
		}
		metrics.AttendancePercentage = float64(present) / float64(len(attendance)) * 100
	}

	if len(marks) > 0 {
		total := 0.0
		for _, record := range marks {
			total += record.Marks
		}
		metrics.AverageMarks = total / float64(len(marks))
	}

	metrics.AssignmentSubmissionRate = fallbackSubmissionRate
	for _, record := range marks {
		if record.AssessmentType == models.AssessmentAssignment {
			metrics.AssignmentSubmissionRate = 100
			break
		}
	}

	metrics.EngagementMetric = metrics.AttendancePercentage
	metrics.GPA = metrics.AverageMarks / 100 * 4.0

	return metrics
}
