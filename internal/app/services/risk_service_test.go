package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/pkg/apperrors"
	"github.com/emre/classtrack/internal/pkg/riskclient"
)

// stubClassifier returns a fixed prediction or error and counts calls
type stubClassifier struct {
	prediction riskclient.Prediction
	err        error
	calls      int
}

func (c *stubClassifier) Classify(ctx context.Context, metrics riskclient.Metrics) (riskclient.Prediction, error) {
	c.calls++
	if c.err != nil {
		return riskclient.Prediction{}, c.err
	}
	return c.prediction, nil
}

// memRiskStore is an in-memory riskStore for pipeline tests
type memRiskStore struct {
	students    map[int64]*models.Student
	courses     map[int64]*models.Course
	attendance  []*models.Attendance
	marks       []*models.Marks
	risks       map[int64]*models.StudentRisk
	upsertCalls int
}

func newMemRiskStore() *memRiskStore {
	return &memRiskStore{
		students: make(map[int64]*models.Student),
		courses:  make(map[int64]*models.Course),
		risks:    make(map[int64]*models.StudentRisk),
	}
}

func (s *memRiskStore) GetStudentWithUser(ctx context.Context, id int64) (*models.Student, error) {
	if student, ok := s.students[id]; ok {
		return student, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *memRiskStore) GetStudentByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	for _, student := range s.students {
		if student.RollNumber == rollNumber {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *memRiskStore) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	for _, student := range s.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *memRiskStore) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if course, ok := s.courses[id]; ok {
		return course, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (s *memRiskStore) GetCoursesByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	seen := make(map[int64]bool)
	var courses []*models.Course
	for _, record := range s.attendance {
		if record.StudentID == studentID && !seen[record.CourseID] {
			seen[record.CourseID] = true
			courses = append(courses, s.courses[record.CourseID])
		}
	}
	return courses, nil
}

func (s *memRiskStore) ListAttendance(ctx context.Context, studentID int64, courseID *int64) ([]*models.Attendance, error) {
	var records []*models.Attendance
	for _, record := range s.attendance {
		if record.StudentID != studentID {
			continue
		}
		if courseID != nil && record.CourseID != *courseID {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *memRiskStore) ListMarks(ctx context.Context, studentID int64, courseID *int64) ([]*models.Marks, error) {
	var records []*models.Marks
	for _, record := range s.marks {
		if record.StudentID != studentID {
			continue
		}
		if courseID != nil && record.CourseID != *courseID {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *memRiskStore) UpsertRisk(ctx context.Context, risk *models.StudentRisk) error {
	s.upsertCalls++
	stored := *risk
	s.risks[risk.StudentID] = &stored
	return nil
}

func (s *memRiskStore) GetRisk(ctx context.Context, studentID int64) (*models.StudentRisk, error) {
	if risk, ok := s.risks[studentID]; ok {
		return risk, nil
	}
	return nil, apperrors.ErrRiskNotFound
}

func newTestRiskService(store riskStore, classifier riskclient.Classifier) *RiskService {
	return &RiskService{
		store:      store,
		classifier: classifier,
		logger:     zerolog.Nop(),
	}
}

func seedRiskStudent(store *memRiskStore) {
	store.students[1] = &models.Student{
		ID:         1,
		UserID:     5,
		Name:       "John Doe",
		RollNumber: "R-042",
		User:       &models.User{ID: 5, Username: "jdoe", RoleType: models.RoleStudent},
	}
	store.courses[2] = &models.Course{ID: 2, Name: "Mathematics", Code: "MATHEMATIC"}
	day := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	store.attendance = []*models.Attendance{
		{ID: 1, StudentID: 1, CourseID: 2, Date: day, IsPresent: true},
		{ID: 2, StudentID: 1, CourseID: 2, Date: day.AddDate(0, 0, 1), IsPresent: false},
	}
	store.marks = []*models.Marks{
		{ID: 1, StudentID: 1, CourseID: 2, AssessmentType: models.AssessmentQuiz, AssessmentNumber: 1, Marks: 80, MaxMarks: 100, Date: day},
	}
}

func TestAnalyzeStudentCachesVerdict(t *testing.T) {
	store := newMemRiskStore()
	seedRiskStudent(store)
	classifier := &stubClassifier{prediction: riskclient.Prediction{RiskLevel: "Medium", Confidence: 0.75}}
	service := newTestRiskService(store, classifier)

	analysis, err := service.AnalyzeStudent(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("AnalyzeStudent() error = %v", err)
	}

	if analysis.RollNumber != "R-042" || analysis.Name != "John Doe" {
		t.Errorf("identity = %q/%q", analysis.Name, analysis.RollNumber)
	}
	if !almostEqual(analysis.Metrics.AttendancePercentage, 50) {
		t.Errorf("attendance percentage = %v, want 50", analysis.Metrics.AttendancePercentage)
	}
	if analysis.RiskPrediction.RiskLevel != "Medium" || analysis.RiskPrediction.Confidence != 0.75 {
		t.Errorf("prediction = %+v", analysis.RiskPrediction)
	}

	if classifier.calls != 1 {
		t.Errorf("classifier calls = %d, want 1", classifier.calls)
	}
	if store.upsertCalls != 1 {
		t.Errorf("upsert calls = %d, want 1", store.upsertCalls)
	}
	cached, err := service.GetCachedRisk(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCachedRisk() error = %v", err)
	}
	if cached.RiskLevel != "Medium" || cached.Confidence != 0.75 {
		t.Errorf("cached verdict = %+v", cached)
	}
}

func TestAnalyzeStudentClassifierFailureKeepsCachedVerdict(t *testing.T) {
	store := newMemRiskStore()
	seedRiskStudent(store)
	lastUpdated := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	store.risks[1] = &models.StudentRisk{
		StudentID:   1,
		RiskLevel:   "Low",
		Confidence:  0.9,
		LastUpdated: lastUpdated,
	}

	classifier := &stubClassifier{
		err: apperrors.NewCustomError(apperrors.ErrClassifierUnavailable, "classifier returned status 503"),
	}
	service := newTestRiskService(store, classifier)

	_, err := service.AnalyzeStudent(context.Background(), 1, nil)
	if !errors.Is(err, apperrors.ErrClassifierUnavailable) {
		t.Fatalf("AnalyzeStudent() error = %v, want ErrClassifierUnavailable", err)
	}

	if store.upsertCalls != 0 {
		t.Errorf("upsert calls = %d, the verdict must not be written on failure", store.upsertCalls)
	}
	cached, err := service.GetCachedRisk(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCachedRisk() error = %v", err)
	}
	if cached.RiskLevel != "Low" || cached.Confidence != 0.9 || !cached.LastUpdated.Equal(lastUpdated) {
		t.Errorf("cached verdict changed: %+v", cached)
	}
}

func TestAnalyzeByRollNumberScopesToStudent(t *testing.T) {
	store := newMemRiskStore()
	seedRiskStudent(store)
	classifier := &stubClassifier{prediction: riskclient.Prediction{RiskLevel: "High", Confidence: 0.6}}
	service := newTestRiskService(store, classifier)

	analysis, err := service.AnalyzeByRollNumber(context.Background(), "R-042")
	if err != nil {
		t.Fatalf("AnalyzeByRollNumber() error = %v", err)
	}
	if analysis.StudentID != 1 {
		t.Errorf("student ID = %d, want 1", analysis.StudentID)
	}

	if _, err := service.AnalyzeByRollNumber(context.Background(), "R-999"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("error = %v, want ErrStudentNotFound", err)
	}
}

func TestAnalyzeForUserWithoutStudentRecord(t *testing.T) {
	store := newMemRiskStore()
	classifier := &stubClassifier{}
	service := newTestRiskService(store, classifier)

	_, err := service.AnalyzeForUser(context.Background(), 99, nil)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("AnalyzeForUser() error = %v, want ErrResourceNotFound", err)
	}
	if classifier.calls != 0 {
		t.Errorf("classifier calls = %d, want 0", classifier.calls)
	}
}
