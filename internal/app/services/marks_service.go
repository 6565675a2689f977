package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/repositories"
	"github.com/emre/classtrack/internal/pkg/apperrors"
)

// MarksService handles assessment result operations
type MarksService struct {
	marksRepo   *repositories.MarksRepository
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
}

// NewMarksService creates a new marks service instance
func NewMarksService(
	marksRepo *repositories.MarksRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
) *MarksService {
	return &MarksService{
		marksRepo:   marksRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

// validateScore checks the marks/max_marks pair
func validateScore(marks, maxMarks float64) error {
	if maxMarks <= 0 {
		return apperrors.NewBadRequestError("max_marks must be positive")
	}
	if marks < 0 || marks > maxMarks {
		return apperrors.NewBadRequestError("marks must be between 0 and max_marks")
	}
	return nil
}

// CreateMarks records one assessment result
func (s *MarksService) CreateMarks(ctx context.Context, req dto.CreateMarksRequest) (*models.Marks, error) {
	assessmentType := models.AssessmentType(req.AssessmentType)
	if !models.IsValidAssessmentType(assessmentType) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("invalid assessment type %q", req.AssessmentType))
	}
	if req.AssessmentNumber <= 0 {
		return nil, apperrors.NewBadRequestError("assessment number must be positive")
	}
	if err := validateScore(req.Marks, req.MaxMarks); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	marks := &models.Marks{
		StudentID:        req.StudentID,
		CourseID:         req.CourseID,
		AssessmentType:   assessmentType,
		AssessmentNumber: req.AssessmentNumber,
		Marks:            req.Marks,
		MaxMarks:         req.MaxMarks,
		Date:             date,
	}
	if err := s.marksRepo.Create(ctx, marks); err != nil {
		return nil, err
	}

	return marks, nil
}

// GetMarksByID retrieves a marks record by ID
func (s *MarksService) GetMarksByID(ctx context.Context, id int64) (*models.Marks, error) {
	return s.marksRepo.GetByID(ctx, id)
}

// GetAllMarks retrieves all marks records
func (s *MarksService) GetAllMarks(ctx context.Context) ([]*models.Marks, error) {
	records, err := s.marksRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving marks records: %w", err)
	}
	return records, nil
}

// GetMarksForStudent retrieves a student's marks, optionally for one course
func (s *MarksService) GetMarksForStudent(ctx context.Context, studentID int64, courseID *int64) ([]*models.Marks, error) {
	records, err := s.marksRepo.ListByStudent(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student marks: %w", err)
	}
	return records, nil
}

// GetMarksForUser retrieves marks for the student owned by a user account
func (s *MarksService) GetMarksForUser(ctx context.Context, userID int64, courseID *int64) ([]*models.Marks, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, apperrors.NewResourceNotFoundError("no student record for this account")
	}
	if err != nil {
		return nil, err
	}
	return s.GetMarksForStudent(ctx, student.ID, courseID)
}

// UpdateMarks refreshes the score of an assessment result
func (s *MarksService) UpdateMarks(ctx context.Context, id int64, req dto.UpdateMarksRequest) (*models.Marks, error) {
	if err := validateScore(req.Marks, req.MaxMarks); err != nil {
		return nil, err
	}

	marks, err := s.marksRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	marks.Marks = req.Marks
	marks.MaxMarks = req.MaxMarks
	if err := s.marksRepo.Update(ctx, marks); err != nil {
		return nil, err
	}

	return marks, nil
}

// DeleteMarks deletes a marks record by ID
func (s *MarksService) DeleteMarks(ctx context.Context, id int64) error {
	return s.marksRepo.Delete(ctx, id)
}
