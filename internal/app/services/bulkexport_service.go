package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/repositories"
)

// ExportHeader is the column layout of the CSV export. Attendance and marks
// columns sit side by side: row i of a student carries that student's i-th
// attendance record and i-th marks record, which are unrelated rows that
// merely share an index. Consumers must read the two column groups
// independently.
var ExportHeader = []string{
	"username",
	"first_name",
	"last_name",
	"roll_number",
	"name",
	"subject",
	"attendance_date",
	"is_present",
	"checkin_time",
	"attendance_percentage",
	"marks_course",
	"assessment_type",
	"assessment_number",
	"marks",
	"max_marks",
	"marks_date",
}

// BulkExportService streams student records as CSV
type BulkExportService struct {
	studentRepo    *repositories.StudentRepository
	attendanceRepo *repositories.AttendanceRepository
	marksRepo      *repositories.MarksRepository
	logger         zerolog.Logger
}

// NewBulkExportService creates a new bulk export service instance
func NewBulkExportService(
	studentRepo *repositories.StudentRepository,
	attendanceRepo *repositories.AttendanceRepository,
	marksRepo *repositories.MarksRepository,
	logger zerolog.Logger,
) *BulkExportService {
	return &BulkExportService{
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		marksRepo:      marksRepo,
		logger:         logger,
	}
}

// ExportAll writes every student's records to w as CSV
func (s *BulkExportService) ExportAll(ctx context.Context, w io.Writer) error {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading students for export: %w", err)
	}
	return s.export(ctx, students, w)
}

// ExportByRollNumber writes a single student's records to w as CSV
func (s *BulkExportService) ExportByRollNumber(ctx context.Context, rollNumber string, w io.Writer) error {
	student, err := s.studentRepo.GetByRollNumber(ctx, rollNumber)
	if err != nil {
		return err
	}
	withUser, err := s.studentRepo.GetWithUser(ctx, student.ID)
	if err != nil {
		return err
	}
	return s.export(ctx, []*models.Student{withUser}, w)
}

func (s *BulkExportService) export(ctx context.Context, students []*models.Student, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return fmt.Errorf("error writing export header: %w", err)
	}

	rows := 0
	for _, student := range students {
		attendance, err := s.attendanceRepo.ListByStudent(ctx, student.ID, nil)
		if err != nil {
			return fmt.Errorf("error loading attendance for export: %w", err)
		}
		marks, err := s.marksRepo.ListByStudent(ctx, student.ID, nil)
		if err != nil {
			return fmt.Errorf("error loading marks for export: %w", err)
		}

		for _, row := range flattenStudentRecords(student, attendance, marks) {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("error writing export row: %w", err)
			}
			rows++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing export: %w", err)
	}

	s.logger.Info().
		Int("students", len(students)).
		Int("rows", rows).
		Msg("CSV export completed")

	return nil
}

// flattenStudentRecords zips a student's attendance and marks rows into export
// rows by position. A student with no records still produces one identity row
// with every record column blank.
func flattenStudentRecords(student *models.Student, attendance []*models.Attendance, marks []*models.Marks) [][]string {
	var username, firstName, lastName string
	if student.User != nil {
		username = student.User.Username
		firstName = student.User.FirstName
		lastName = student.User.LastName
	}

	percentage := attendancePercentage(attendance)

	count := len(attendance)
	if len(marks) > count {
		count = len(marks)
	}
	if count == 0 {
		count = 1
	}

	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		row := make([]string, len(ExportHeader))
		row[0] = username
		row[1] = firstName
		row[2] = lastName
		row[3] = student.RollNumber
		row[4] = student.Name
		row[9] = percentage

		if i < len(attendance) {
			record := attendance[i]
			if record.Course != nil {
				row[5] = record.Course.Name
			}
			row[6] = record.Date.Format(dateLayout)
			row[7] = strconv.FormatBool(record.IsPresent)
			if record.CheckinTime != nil {
				row[8] = *record.CheckinTime
			}
		}

		if i < len(marks) {
			record := marks[i]
			if record.Course != nil {
				row[10] = record.Course.Name
			}
			row[11] = string(record.AssessmentType)
			row[12] = strconv.Itoa(record.AssessmentNumber)
			row[13] = strconv.FormatFloat(record.Marks, 'f', -1, 64)
			row[14] = strconv.FormatFloat(record.MaxMarks, 'f', -1, 64)
			row[15] = record.Date.Format(dateLayout)
		}

		rows = append(rows, row)
	}

	return rows
}

func attendancePercentage(attendance []*models.Attendance) string {
	pct := 0.0
	if len(attendance) > 0 {
		present := 0
		for _, record := range attendance {
			if record.IsPresent {
				present++
			}
		}
		pct = float64(present) / float64(len(attendance)) * 100
	}
	return strconv.FormatFloat(pct, 'f', 1, 64)
}
