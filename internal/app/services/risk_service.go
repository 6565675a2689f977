package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/repositories"
	"github.com/emre/classtrack/internal/pkg/apperrors"
	"github.com/emre/classtrack/internal/pkg/riskclient"
)

// riskStore is the slice of repository operations the analysis pipeline
// needs: the reads feeding the metrics and the single verdict write.
type riskStore interface {
	GetStudentWithUser(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
	ListAttendance(ctx context.Context, studentID int64, courseID *int64) ([]*models.Attendance, error)
	ListMarks(ctx context.Context, studentID int64, courseID *int64) ([]*models.Marks, error)
	UpsertRisk(ctx context.Context, risk *models.StudentRisk) error
	GetRisk(ctx context.Context, studentID int64) (*models.StudentRisk, error)
}

// RiskService aggregates a student's metrics, obtains a verdict from the
// external classifier and caches it in the student_risk table. Each analysis
// makes exactly one classifier attempt; upstream failures propagate to the
// caller and leave any cached verdict untouched.
type RiskService struct {
	store      riskStore
	classifier riskclient.Classifier
	logger     zerolog.Logger
}

// NewRiskService creates a risk service backed by the given repositories
func NewRiskService(
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	attendanceRepo *repositories.AttendanceRepository,
	marksRepo *repositories.MarksRepository,
	riskRepo *repositories.StudentRiskRepository,
	classifier riskclient.Classifier,
	logger zerolog.Logger,
) *RiskService {
	return &RiskService{
		store: &pgRiskStore{
			students:   studentRepo,
			courses:    courseRepo,
			attendance: attendanceRepo,
			marks:      marksRepo,
			risks:      riskRepo,
		},
		classifier: classifier,
		logger:     logger,
	}
}

// AnalyzeStudent runs the full metrics-to-verdict pipeline for a student,
// optionally scoped to one course. The verdict is cached only on a successful
// classification; a classifier failure leaves the previous cached row as is.
func (s *RiskService) AnalyzeStudent(ctx context.Context, studentID int64, courseID *int64) (*dto.RiskAnalysisResponse, error) {
	student, err := s.store.GetStudentWithUser(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var courseName string
	if courseID != nil {
		course, err := s.store.GetCourseByID(ctx, *courseID)
		if err != nil {
			return nil, err
		}
		courseName = course.Name
	}

	attendance, err := s.store.ListAttendance(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading attendance for analysis: %w", err)
	}
	marks, err := s.store.ListMarks(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading marks for analysis: %w", err)
	}

	metrics := ComputeStudentMetrics(attendance, marks)

	prediction, err := s.classifier.Classify(ctx, riskclient.Metrics{
		Attendance: metrics.AttendancePercentage,
		Marks:      metrics.AverageMarks,
		Assignment: metrics.AssignmentSubmissionRate,
		Engagement: metrics.EngagementMetric,
		GPA:        metrics.GPA,
	})
	if err != nil {
		return nil, err
	}

	risk := &models.StudentRisk{
		StudentID:   student.ID,
		RiskLevel:   prediction.RiskLevel,
		Confidence:  prediction.Confidence,
		LastUpdated: time.Now(),
	}
	if err := s.store.UpsertRisk(ctx, risk); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("rollNumber", student.RollNumber).
		Str("riskLevel", prediction.RiskLevel).
		Float64("confidence", prediction.Confidence).
		Msg("Student risk updated")

	return &dto.RiskAnalysisResponse{
		StudentID:  student.ID,
		Name:       student.Name,
		RollNumber: student.RollNumber,
		CourseID:   courseID,
		CourseName: courseName,
		Metrics: dto.MetricsData{
			AttendancePercentage:     metrics.AttendancePercentage,
			AverageMarks:             metrics.AverageMarks,
			AssignmentSubmissionRate: metrics.AssignmentSubmissionRate,
			EngagementMetric:         metrics.EngagementMetric,
			GPA:                      metrics.GPA,
		},
		RiskPrediction: dto.RiskPredictionData{
			RiskLevel:   risk.RiskLevel,
			Confidence:  risk.Confidence,
			LastUpdated: risk.LastUpdated,
		},
	}, nil
}

// AnalyzeByRollNumber analyzes the student with the given roll number
func (s *RiskService) AnalyzeByRollNumber(ctx context.Context, rollNumber string) (*dto.RiskAnalysisResponse, error) {
	student, err := s.store.GetStudentByRollNumber(ctx, rollNumber)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeStudent(ctx, student.ID, nil)
}

// AnalyzeForUser analyzes the student owned by a user account
func (s *RiskService) AnalyzeForUser(ctx context.Context, userID int64, courseID *int64) (*dto.RiskAnalysisResponse, error) {
	student, err := s.resolveStudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeStudent(ctx, student.ID, courseID)
}

// AnalyzeAllCoursesForUser runs a course-scoped analysis for every course the
// student has records in. Each course is one classifier attempt; the last
// successful verdict is the one left cached.
func (s *RiskService) AnalyzeAllCoursesForUser(ctx context.Context, userID int64) ([]*dto.RiskAnalysisResponse, error) {
	student, err := s.resolveStudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.store.GetCoursesByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.RiskAnalysisResponse, 0, len(courses))
	for _, course := range courses {
		courseID := course.ID
		response, err := s.AnalyzeStudent(ctx, student.ID, &courseID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}

// ClassifyCustom classifies caller-supplied metrics without touching any
// student's cached verdict.
func (s *RiskService) ClassifyCustom(ctx context.Context, req dto.CustomRiskRequest) (*dto.RiskPredictionData, error) {
	prediction, err := s.classifier.Classify(ctx, riskclient.Metrics{
		Attendance: req.AttendancePercentage,
		Marks:      req.AverageMarks,
		Assignment: req.AssignmentSubmissionRate,
		Engagement: req.EngagementMetric,
		GPA:        req.GPA,
	})
	if err != nil {
		return nil, err
	}

	return &dto.RiskPredictionData{
		RiskLevel:   prediction.RiskLevel,
		Confidence:  prediction.Confidence,
		LastUpdated: time.Now(),
	}, nil
}

// GetCachedRisk returns the stored verdict for a student without calling the classifier
func (s *RiskService) GetCachedRisk(ctx context.Context, studentID int64) (*models.StudentRisk, error) {
	return s.store.GetRisk(ctx, studentID)
}

func (s *RiskService) resolveStudentForUser(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.store.GetStudentByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, apperrors.NewResourceNotFoundError("no student record for this account")
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

// pgRiskStore binds the pipeline to the pgx repositories
type pgRiskStore struct {
	students   *repositories.StudentRepository
	courses    *repositories.CourseRepository
	attendance *repositories.AttendanceRepository
	marks      *repositories.MarksRepository
	risks      *repositories.StudentRiskRepository
}

func (s *pgRiskStore) GetStudentWithUser(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetWithUser(ctx, id)
}

func (s *pgRiskStore) GetStudentByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	return s.students.GetByRollNumber(ctx, rollNumber)
}

func (s *pgRiskStore) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.students.GetByUserID(ctx, userID)
}

func (s *pgRiskStore) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

func (s *pgRiskStore) GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return s.courses.GetByStudentID(ctx, studentID)
}

func (s *pgRiskStore) ListAttendance(ctx context.Context, studentID int64, courseID *int64) ([]*models.Attendance, error) {
	return s.attendance.ListByStudent(ctx, studentID, courseID)
}

func (s *pgRiskStore) ListMarks(ctx context.Context, studentID int64, courseID *int64) ([]*models.Marks, error) {
	return s.marks.ListByStudent(ctx, studentID, courseID)
}

func (s *pgRiskStore) UpsertRisk(ctx context.Context, risk *models.StudentRisk) error {
	return s.risks.Upsert(ctx, risk)
}

func (s *pgRiskStore) GetRisk(ctx context.Context, studentID int64) (*models.StudentRisk, error) {
	return s.risks.GetByStudentID(ctx, studentID)
}
