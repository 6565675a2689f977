package services

import (
	"math"
	"testing"
	"time"

	"github.com/emre/classtrack/internal/app/models"
)

func attendanceRows(present, absent int) []*models.Attendance {
	rows := make([]*models.Attendance, 0, present+absent)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < present; i++ {
		rows = append(rows, &models.Attendance{StudentID: 1, CourseID: 1, Date: day.AddDate(0, 0, i), IsPresent: true})
	}
	for i := 0; i < absent; i++ {
		rows = append(rows, &models.Attendance{StudentID: 1, CourseID: 1, Date: day.AddDate(0, 0, present+i), IsPresent: false})
	}
	return rows
}

func marksRow(assessmentType models.AssessmentType, marks float64) *models.Marks {
	return &models.Marks{
		StudentID:        1,
		CourseID:         1,
		AssessmentType:   assessmentType,
		AssessmentNumber: 1,
		Marks:            marks,
		MaxMarks:         100,
		Date:             time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeStudentMetrics(t *testing.T) {
	tests := []struct {
		name       string
		attendance []*models.Attendance
		marks      []*models.Marks
		want       StudentMetrics
	}{
		{
			name:       "empty row sets",
			attendance: nil,
			marks:      nil,
			want: StudentMetrics{
				AttendancePercentage:     0,
				AverageMarks:             0,
				AssignmentSubmissionRate: 70,
				EngagementMetric:         0,
				GPA:                      0,
			},
		},
		{
			name:       "mixed attendance and quiz marks",
			attendance: attendanceRows(3, 1),
			marks: []*models.Marks{
				marksRow(models.AssessmentQuiz, 80),
				marksRow(models.AssessmentSessional, 60),
			},
			want: StudentMetrics{
				AttendancePercentage:     75,
				AverageMarks:             70,
				AssignmentSubmissionRate: 70,
				EngagementMetric:         75,
				GPA:                      2.8,
			},
		},
		{
			name:       "assignment row lifts submission rate to 100",
			attendance: attendanceRows(4, 0),
			marks: []*models.Marks{
				marksRow(models.AssessmentAssignment, 90),
			},
			want: StudentMetrics{
				AttendancePercentage:     100,
				AverageMarks:             90,
				AssignmentSubmissionRate: 100,
				EngagementMetric:         100,
				GPA:                      3.6,
			},
		},
		{
			name:       "all absent",
			attendance: attendanceRows(0, 2),
			marks:      nil,
			want: StudentMetrics{
				AttendancePercentage:     0,
				AverageMarks:             0,
				AssignmentSubmissionRate: 70,
				EngagementMetric:         0,
				GPA:                      0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStudentMetrics(tt.attendance, tt.marks)
			if !almostEqual(got.AttendancePercentage, tt.want.AttendancePercentage) {
				t.Errorf("AttendancePercentage = %v, want %v", got.AttendancePercentage, tt.want.AttendancePercentage)
			}
			if !almostEqual(got.AverageMarks, tt.want.AverageMarks) {
				t.Errorf("AverageMarks = %v, want %v", got.AverageMarks, tt.want.AverageMarks)
			}
			if !almostEqual(got.AssignmentSubmissionRate, tt.want.AssignmentSubmissionRate) {
				t.Errorf("AssignmentSubmissionRate = %v, want %v", got.AssignmentSubmissionRate, tt.want.AssignmentSubmissionRate)
			}
			if !almostEqual(got.EngagementMetric, tt.want.EngagementMetric) {
				t.Errorf("EngagementMetric = %v, want %v", got.EngagementMetric, tt.want.EngagementMetric)
			}
			if !almostEqual(got.GPA, tt.want.GPA) {
				t.Errorf("GPA = %v, want %v", got.GPA, tt.want.GPA)
			}
		})
	}
}

func TestComputeStudentMetricsDeterministic(t *testing.T) {
	attendance := attendanceRows(7, 3)
	marks := []*models.Marks{
		marksRow(models.AssessmentQuiz, 55),
		marksRow(models.AssessmentAssignment, 85),
	}

	first := ComputeStudentMetrics(attendance, marks)
	second := ComputeStudentMetrics(attendance, marks)
	if first != second {
		t.Errorf("metrics not deterministic: %+v vs %+v", first, second)
	}
}
