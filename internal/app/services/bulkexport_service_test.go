package services

import (
	"testing"
	"time"

	"github.com/emre/classtrack/internal/app/models"
)

func exportStudent() *models.Student {
	return &models.Student{
		ID:         1,
		UserID:     10,
		Name:       "John Doe",
		RollNumber: "R-1",
		User: &models.User{
			ID:        10,
			Username:  "jdoe",
			FirstName: "John",
			LastName:  "Doe",
		},
	}
}

func TestFlattenStudentRecordsZipsByPosition(t *testing.T) {
	student := exportStudent()
	course := &models.Course{ID: 2, Name: "Mathematics", Code: "MATHEMATIC"}
	checkin := "08:45:00"

	attendance := []*models.Attendance{
		{ID: 1, StudentID: 1, CourseID: 2, Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), IsPresent: true, CheckinTime: &checkin, Course: course},
		{ID: 2, StudentID: 1, CourseID: 2, Date: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), IsPresent: false, Course: course},
	}
	marks := []*models.Marks{
		{ID: 3, StudentID: 1, CourseID: 2, AssessmentType: models.AssessmentQuiz, AssessmentNumber: 1, Marks: 18, MaxMarks: 20, Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), Course: course},
	}

	rows := flattenStudentRecords(student, attendance, marks)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first[0] != "jdoe" || first[3] != "R-1" || first[4] != "John Doe" {
		t.Errorf("identity columns = %v", first[:5])
	}
	if first[6] != "2025-01-15" || first[7] != "true" || first[8] != "08:45:00" {
		t.Errorf("attendance columns = %v", first[5:10])
	}
	if first[10] != "Mathematics" || first[11] != "quiz" || first[13] != "18" || first[14] != "20" || first[15] != "2025-01-20" {
		t.Errorf("marks columns = %v", first[10:])
	}
	if first[9] != "50.0" {
		t.Errorf("attendance_percentage = %q, want 50.0", first[9])
	}

	// Second row has no marks-side partner, so those columns stay blank
	second := rows[1]
	if second[6] != "2025-01-16" || second[7] != "false" || second[8] != "" {
		t.Errorf("second attendance columns = %v", second[5:10])
	}
	for i := 10; i < len(second); i++ {
		if second[i] != "" {
			t.Errorf("column %d = %q, want blank", i, second[i])
		}
	}
}

func TestFlattenStudentRecordsAttendanceOnly(t *testing.T) {
	student := exportStudent()
	course := &models.Course{ID: 2, Name: "Physics", Code: "PHYSICS"}

	attendance := []*models.Attendance{
		{ID: 1, StudentID: 1, CourseID: 2, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), IsPresent: true, Course: course},
		{ID: 2, StudentID: 1, CourseID: 2, Date: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), IsPresent: true, Course: course},
	}

	rows := flattenStudentRecords(student, attendance, nil)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		for i := 10; i < len(row); i++ {
			if row[i] != "" {
				t.Errorf("marks column %d = %q, want blank", i, row[i])
			}
		}
	}
}

func TestFlattenStudentRecordsNoRecords(t *testing.T) {
	rows := flattenStudentRecords(exportStudent(), nil, nil)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want exactly 1 identity row", len(rows))
	}

	row := rows[0]
	if row[0] != "jdoe" || row[1] != "John" || row[2] != "Doe" || row[3] != "R-1" || row[4] != "John Doe" {
		t.Errorf("identity columns = %v", row[:5])
	}
	if row[9] != "0.0" {
		t.Errorf("attendance_percentage = %q, want 0.0", row[9])
	}
	for _, i := range []int{5, 6, 7, 8, 10, 11, 12, 13, 14, 15} {
		if row[i] != "" {
			t.Errorf("column %d = %q, want blank", i, row[i])
		}
	}
}

func TestExportHeaderShape(t *testing.T) {
	if len(ExportHeader) != 16 {
		t.Fatalf("header has %d columns, want 16", len(ExportHeader))
	}
	if ExportHeader[0] != "username" || ExportHeader[9] != "attendance_percentage" || ExportHeader[15] != "marks_date" {
		t.Errorf("unexpected header layout: %v", ExportHeader)
	}
}
