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

// MarksRepository handles database operations for marks records
type MarksRepository struct {
	db DBTX
}

// NewMarksRepository creates a new marks repository
func NewMarksRepository(db DBTX) *MarksRepository {
	return &MarksRepository{
		db: db,
	}
}

// Create creates a new marks record
func (r *MarksRepository) Create(ctx context.Context, marks *models.Marks) error {
	query := `
		INSERT INTO marks (student_id, course_id, assessment_type, assessment_number, marks, max_marks, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		marks.StudentID, marks.CourseID, marks.AssessmentType, marks.AssessmentNumber,
		marks.Marks, marks.MaxMarks, marks.Date,
	).Scan(&marks.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrMarksAlreadyExists
		}
		return fmt.Errorf("error creating marks record: %w", err)
	}

	return nil
}

// Upsert creates or updates the marks record keyed by
// (student, course, assessment_type, assessment_number, date). On update marks
// and max_marks are refreshed. The returned flag reports whether a new row was
// inserted.
func (r *MarksRepository) Upsert(ctx context.Context, marks *models.Marks) (bool, error) {
	query := `
		INSERT INTO marks (student_id, course_id, assessment_type, assessment_number, marks, max_marks, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id, course_id, assessment_type, assessment_number, date)
		DO UPDATE SET marks = EXCLUDED.marks, max_marks = EXCLUDED.max_marks
		RETURNING id, (xmax = 0) AS inserted
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		marks.StudentID, marks.CourseID, marks.AssessmentType, marks.AssessmentNumber,
		marks.Marks, marks.MaxMarks, marks.Date,
	).Scan(&marks.ID, &created)
	if err != nil {
		return false, fmt.Errorf("error upserting marks record: %w", err)
	}

	return created, nil
}

// GetByID retrieves a marks record by ID
func (r *MarksRepository) GetByID(ctx context.Context, id int64) (*models.Marks, error) {
	query := `
		SELECT id, student_id, course_id, assessment_type, assessment_number, marks, max_marks, date
		FROM marks
		WHERE id = $1
	`

	var marks models.Marks
	err := r.db.QueryRow(ctx, query, id).Scan(
		&marks.ID,
		&marks.StudentID,
		&marks.CourseID,
		&marks.AssessmentType,
		&marks.AssessmentNumber,
		&marks.Marks,
		&marks.MaxMarks,
		&marks.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMarksNotFound
		}
		return nil, fmt.Errorf("error retrieving marks record: %w", err)
	}

	return &marks, nil
}

// ListByStudent retrieves a student's marks rows with course attached,
// optionally filtered to one course. Ordered by date for stable export output.
func (r *MarksRepository) ListByStudent(ctx context.Context, studentID int64, courseID *int64) ([]*models.Marks, error) {
	query := `
		SELECT m.id, m.student_id, m.course_id, m.assessment_type, m.assessment_number,
		       m.marks, m.max_marks, m.date,
		       c.id, c.name, c.code
		FROM marks m
		JOIN courses c ON c.id = m.course_id
		WHERE m.student_id = $1 AND ($2::bigint IS NULL OR m.course_id = $2)
		ORDER BY m.date, c.name, m.assessment_type, m.assessment_number
	`

	rows, err := r.db.Query(ctx, query, studentID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMarksRows(rows)
}

// ListAll retrieves all marks rows with course attached
func (r *MarksRepository) ListAll(ctx context.Context) ([]*models.Marks, error) {
	query := `
		SELECT m.id, m.student_id, m.course_id, m.assessment_type, m.assessment_number,
		       m.marks, m.max_marks, m.date,
		       c.id, c.name, c.code
		FROM marks m
		JOIN courses c ON c.id = m.course_id
		ORDER BY m.date, m.student_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMarksRows(rows)
}

func scanMarksRows(rows pgx.Rows) ([]*models.Marks, error) {
	var records []*models.Marks
	for rows.Next() {
		var marks models.Marks
		var course models.Course
		if err := rows.Scan(
			&marks.ID,
			&marks.StudentID,
			&marks.CourseID,
			&marks.AssessmentType,
			&marks.AssessmentNumber,
			&marks.Marks,
			&marks.MaxMarks,
			&marks.Date,
			&course.ID,
			&course.Name,
			&course.Code,
		); err != nil {
			return nil, err
		}
		marks.Course = &course
		records = append(records, &marks)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Update refreshes the score of an existing marks record
func (r *MarksRepository) Update(ctx context.Context, marks *models.Marks) error {
	query := `
		UPDATE marks
		SET marks = $1, max_marks = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, marks.Marks, marks.MaxMarks, marks.ID)
	if err != nil {
		return fmt.Errorf("error updating marks record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMarksNotFound
	}

	return nil
}

// Delete deletes a marks record by ID
func (r *MarksRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM marks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting marks record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMarksNotFound
	}

	return nil
}
