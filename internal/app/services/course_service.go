package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/repositories"
	"github.com/emre/classtrack/internal/pkg/apperrors"
)

// courseCodeLength caps the derived code when a course is created from a bare
// name (bulk import); the code is the first courseCodeLength characters of the
// name, upper-cased.
const courseCodeLength = 10

// CourseService handles course operations
type CourseService struct {
	courseRepo *repositories.CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
	}
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, name, code string) (*models.Course, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return nil, apperrors.NewBadRequestError("course name cannot be empty")
	}
	if code == "" {
		code = DeriveCourseCode(name)
	}

	course := &models.Course{Name: name, Code: code}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid course ID")
	}
	return s.courseRepo.GetByID(ctx, id)
}

// GetAllCourses retrieves all courses
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCoursesForStudent retrieves the courses a student has records in
func (s *CourseService) GetCoursesForStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, name, code string) (*models.Course, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" || code == "" {
		return nil, apperrors.NewBadRequestError("course name and code cannot be empty")
	}

	course := &models.Course{ID: id, Name: name, Code: code}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse deletes a course by ID
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid course ID")
	}
	return s.courseRepo.Delete(ctx, id)
}

// DeriveCourseCode derives a default course code from the course name
func DeriveCourseCode(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > courseCodeLength {
		runes = runes[:courseCodeLength]
	}
	return strings.ToUpper(string(runes))
}
