package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/pkg/apperrors"
	"github.com/emre/classtrack/internal/pkg/dberrors"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db DBTX
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db DBTX) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// Create creates a new attendance record
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	query := `
		INSERT INTO attendance (student_id, course_id, date, is_present, checkin_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		attendance.StudentID, attendance.CourseID, attendance.Date,
		attendance.IsPresent, attendance.CheckinTime,
	).Scan(&attendance.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAttendanceAlreadyExists
		}
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	return nil
}

// Upsert creates or updates the attendance record keyed by (student, course, date).
// On update only is_present and checkin_time are refreshed. The returned flag
// reports whether a new row was inserted.
func (r *AttendanceRepository) Upsert(ctx context.Context, attendance *models.Attendance) (bool, error) {
	query := `
		INSERT INTO attendance (student_id, course_id, date, is_present, checkin_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, course_id, date)
		DO UPDATE SET is_present = EXCLUDED.is_present, checkin_time = EXCLUDED.checkin_time
		RETURNING id, (xmax = 0) AS inserted
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		attendance.StudentID, attendance.CourseID, attendance.Date,
		attendance.IsPresent, attendance.CheckinTime,
	).Scan(&attendance.ID, &created)
	if err != nil {
		return false, fmt.Errorf("error upserting attendance record: %w", err)
	}

	return created, nil
}

// GetByID retrieves an attendance record by ID
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	query := `
		SELECT id, student_id, course_id, date, is_present, checkin_time
		FROM attendance
		WHERE id = $1
	`

	var attendance models.Attendance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&attendance.ID,
		&attendance.StudentID,
		&attendance.CourseID,
		&attendance.Date,
		&attendance.IsPresent,
		&attendance.CheckinTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return &attendance, nil
}

// ListByStudent retrieves a student's attendance rows with course attached,
// optionally filtered to one course. Ordered by date for stable export output.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64, courseID *int64) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.student_id, a.course_id, a.date, a.is_present, a.checkin_time,
		       c.id, c.name, c.code
		FROM attendance a
		JOIN courses c ON c.id = a.course_id
		WHERE a.student_id = $1 AND ($2::bigint IS NULL OR a.course_id = $2)
		ORDER BY a.date, c.name
	`

	rows, err := r.db.Query(ctx, query, studentID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// ListAll retrieves all attendance rows with course attached
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.student_id, a.course_id, a.date, a.is_present, a.checkin_time,
		       c.id, c.name, c.code
		FROM attendance a
		JOIN courses c ON c.id = a.course_id
		ORDER BY a.date, a.student_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

func scanAttendanceRows(rows pgx.Rows) ([]*models.Attendance, error) {
	var records []*models.Attendance
	for rows.Next() {
		var attendance models.Attendance
		var course models.Course
		if err := rows.Scan(
			&attendance.ID,
			&attendance.StudentID,
			&attendance.CourseID,
			&attendance.Date,
			&attendance.IsPresent,
			&attendance.CheckinTime,
			&course.ID,
			&course.Name,
			&course.Code,
		); err != nil {
			return nil, err
		}
		attendance.Course = &course
		records = append(records, &attendance)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Update refreshes presence and check-in time of an existing record
func (r *AttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	query := `
		UPDATE attendance
		SET is_present = $1, checkin_time = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, attendance.IsPresent, attendance.CheckinTime, attendance.ID)
	if err != nil {
		return fmt.Errorf("error updating attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}

// Delete deletes an attendance record by ID
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}
