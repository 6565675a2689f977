package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/repositories"
	"github.com/emre/classtrack/internal/pkg/apperrors"
)

// StudentService handles student record operations
type StudentService struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
	}
}

// GetAllStudents retrieves all students with their user accounts
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetStudentByID retrieves a student by ID with the user account attached
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid student ID")
	}
	return s.studentRepo.GetWithUser(ctx, id)
}

// GetStudentByRollNumber retrieves a student by roll number
func (s *StudentService) GetStudentByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	rollNumber = strings.TrimSpace(rollNumber)
	if rollNumber == "" {
		return nil, apperrors.NewBadRequestError("roll number cannot be empty")
	}
	return s.studentRepo.GetByRollNumber(ctx, rollNumber)
}

// GetStudentByUserID retrieves the student owned by a user account
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// UpdateStudent updates a student's name and roll number
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, name, rollNumber string) (*models.Student, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewBadRequestError("name cannot be empty")
	}
	if strings.TrimSpace(rollNumber) == "" {
		return nil, apperrors.NewBadRequestError("roll number cannot be empty")
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = name
	student.RollNumber = rollNumber
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent deletes a student by ID
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid student ID")
	}
	return s.studentRepo.Delete(ctx, id)
}
