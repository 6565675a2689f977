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

// AttendanceService handles attendance record operations
type AttendanceService struct {
	attendanceRepo *repositories.AttendanceRepository
	studentRepo    *repositories.StudentRepository
	courseRepo     *repositories.CourseRepository
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	attendanceRepo *repositories.AttendanceRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
	}
}

// CreateAttendance records attendance for a student in a course on a date
func (s *AttendanceService) CreateAttendance(ctx context.Context, req dto.CreateAttendanceRequest) (*models.Attendance, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.CheckinTime != nil {
		if err := validateCheckinTime(*req.CheckinTime); err != nil {
			return nil, err
		}
	}

	// Both referenced entities must exist before inserting
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	attendance := &models.Attendance{
		StudentID:   req.StudentID,
		CourseID:    req.CourseID,
		Date:        date,
		IsPresent:   req.IsPresent,
		CheckinTime: req.CheckinTime,
	}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, err
	}

	return attendance, nil
}

// GetAttendanceByID retrieves an attendance record by ID
func (s *AttendanceService) GetAttendanceByID(ctx context.Context, id int64) (*models.Attendance, error) {
	return s.attendanceRepo.GetByID(ctx, id)
}

// GetAllAttendance retrieves all attendance records
func (s *AttendanceService) GetAllAttendance(ctx context.Context) ([]*models.Attendance, error) {
	records, err := s.attendanceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance records: %w", err)
	}
	return records, nil
}

// GetAttendanceForStudent retrieves a student's attendance, optionally for one course
func (s *AttendanceService) GetAttendanceForStudent(ctx context.Context, studentID int64, courseID *int64) ([]*models.Attendance, error) {
	records, err := s.attendanceRepo.ListByStudent(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student attendance: %w", err)
	}
	return records, nil
}

// GetAttendanceForUser retrieves attendance for the student owned by a user account
func (s *AttendanceService) GetAttendanceForUser(ctx context.Context, userID int64, courseID *int64) ([]*models.Attendance, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, apperrors.NewResourceNotFoundError("no student record for this account")
	}
	if err != nil {
		return nil, err
	}
	return s.GetAttendanceForStudent(ctx, student.ID, courseID)
}

// UpdateAttendance refreshes presence and check-in time of a record
func (s *AttendanceService) UpdateAttendance(ctx context.Context, id int64, req dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	if req.CheckinTime != nil {
		if err := validateCheckinTime(*req.CheckinTime); err != nil {
			return nil, err
		}
	}

	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attendance.IsPresent = req.IsPresent
	attendance.CheckinTime = req.CheckinTime
	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	return attendance, nil
}

// DeleteAttendance deletes an attendance record by ID
func (s *AttendanceService) DeleteAttendance(ctx context.Context, id int64) error {
	return s.attendanceRepo.Delete(ctx, id)
}
