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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, name, roll_number)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, student.UserID, student.Name, student.RollNumber).Scan(&student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrRollNumberExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, user_id, name, roll_number
		FROM students
		WHERE id = $1
	`

	return r.getOne(ctx, query, id)
}

// GetByUserID retrieves the student owned by a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `
		SELECT id, user_id, name, roll_number
		FROM students
		WHERE user_id = $1
	`

	return r.getOne(ctx, query, userID)
}

// GetByRollNumber retrieves a student by roll number
func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	query := `
		SELECT id, user_id, name, roll_number
		FROM students
		WHERE roll_number = $1
	`

	return r.getOne(ctx, query, rollNumber)
}

func (r *StudentRepository) getOne(ctx context.Context, query string, arg any) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.UserID,
		&student.Name,
		&student.RollNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students with their user accounts attached
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.name, s.roll_number,
		       u.id, u.username, u.first_name, u.last_name, u.role_type, u.created_at
		FROM students s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.roll_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var user models.User
		if err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.Name,
			&student.RollNumber,
			&user.ID,
			&user.Username,
			&user.FirstName,
			&user.LastName,
			&user.RoleType,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		student.User = &user
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetWithUser retrieves a student by ID with the user account attached
func (r *StudentRepository) GetWithUser(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.name, s.roll_number,
		       u.id, u.username, u.first_name, u.last_name, u.role_type, u.created_at
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`

	var student models.Student
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.UserID,
		&student.Name,
		&student.RollNumber,
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.RoleType,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	student.User = &user
	return &student, nil
}

// Update updates a student's name and roll number
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, roll_number = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, student.Name, student.RollNumber, student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrRollNumberExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID. Attendance, marks and risk rows cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
