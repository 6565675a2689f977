package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/pkg/apperrors"
)

// memStore is an in-memory importStore. WithinRow stages each row on a deep
// copy and commits it only when the row function succeeds, mirroring the
// per-row transaction of the real store.
type memStore struct {
	users      map[string]*models.User
	students   map[int64]*models.Student
	courses    map[string]*models.Course
	attendance map[string]*models.Attendance
	marks      map[string]*models.Marks
	nextID     int64
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*models.User{},
		students:   map[int64]*models.Student{},
		courses:    map[string]*models.Course{},
		attendance: map[string]*models.Attendance{},
		marks:      map[string]*models.Marks{},
		nextID:     1,
	}
}

func (s *memStore) clone() *memStore {
	copied := newMemStore()
	copied.nextID = s.nextID
	for k, v := range s.users {
		u := *v
		copied.users[k] = &u
	}
	for k, v := range s.students {
		st := *v
		copied.students[k] = &st
	}
	for k, v := range s.courses {
		c := *v
		copied.courses[k] = &c
	}
	for k, v := range s.attendance {
		a := *v
		copied.attendance[k] = &a
	}
	for k, v := range s.marks {
		m := *v
		copied.marks[k] = &m
	}
	return copied
}

func (s *memStore) WithinRow(ctx context.Context, fn func(ctx context.Context, tx importTx) error) error {
	staged := s.clone()
	if err := fn(ctx, staged); err != nil {
		return err
	}
	*s = *staged
	return nil
}

func (s *memStore) nextIDValue() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.Username]; ok {
		return apperrors.ErrUsernameExists
	}
	user.ID = s.nextIDValue()
	s.users[user.Username] = user
	return nil
}

func (s *memStore) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range s.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *memStore) CreateStudent(_ context.Context, student *models.Student) error {
	for _, existing := range s.students {
		if existing.RollNumber == student.RollNumber {
			return apperrors.ErrRollNumberExists
		}
	}
	student.ID = s.nextIDValue()
	s.students[student.ID] = student
	return nil
}

func (s *memStore) UpdateStudent(_ context.Context, student *models.Student) error {
	for _, existing := range s.students {
		if existing.ID != student.ID && existing.RollNumber == student.RollNumber {
			return apperrors.ErrRollNumberExists
		}
	}
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	s.students[student.ID] = student
	return nil
}

func (s *memStore) GetCourseByName(_ context.Context, name string) (*models.Course, error) {
	if course, ok := s.courses[name]; ok {
		return course, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (s *memStore) CreateCourse(_ context.Context, course *models.Course) error {
	if _, ok := s.courses[course.Name]; ok {
		return apperrors.ErrCourseAlreadyExists
	}
	course.ID = s.nextIDValue()
	s.courses[course.Name] = course
	return nil
}

func (s *memStore) UpsertAttendance(_ context.Context, attendance *models.Attendance) (bool, error) {
	key := fmt.Sprintf("%d|%d|%s", attendance.StudentID, attendance.CourseID, attendance.Date.Format("2006-01-02"))
	if existing, ok := s.attendance[key]; ok {
		existing.IsPresent = attendance.IsPresent
		existing.CheckinTime = attendance.CheckinTime
		attendance.ID = existing.ID
		return false, nil
	}
	attendance.ID = s.nextIDValue()
	s.attendance[key] = attendance
	return true, nil
}

func (s *memStore) UpsertMarks(_ context.Context, marks *models.Marks) (bool, error) {
	key := fmt.Sprintf("%d|%d|%s|%d|%s",
		marks.StudentID, marks.CourseID, marks.AssessmentType, marks.AssessmentNumber, marks.Date.Format("2006-01-02"))
	if existing, ok := s.marks[key]; ok {
		existing.Marks = marks.Marks
		existing.MaxMarks = marks.MaxMarks
		marks.ID = existing.ID
		return false, nil
	}
	marks.ID = s.nextIDValue()
	s.marks[key] = marks
	return true, nil
}

func newTestImportService(store importStore) *BulkImportService {
	return &BulkImportService{
		store:  store,
		logger: zerolog.Nop(),
	}
}

const importHeader = "username,roll_number,name,subject,attendance_percentage,marks_obtained,total_marks,date,check_in_time"

func importCSV(rows ...string) string {
	return importHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestImportRejectsMissingColumns(t *testing.T) {
	service := newTestImportService(newMemStore())

	_, err := service.Import(context.Background(),
		strings.NewReader("username,roll_number,name\njdoe,R-1,John Doe\n"))
	if err == nil {
		t.Fatal("expected a schema error for missing columns")
	}
	if !errors.Is(err, apperrors.ErrImportSchema) {
		t.Fatalf("expected ErrImportSchema, got %v", err)
	}
}

func TestImportCreatesEntities(t *testing.T) {
	store := newMemStore()
	service := newTestImportService(store)

	csv := importCSV(
		"jdoe,R-1,John Doe,Mathematics,80,18,20,2025-01-15,08:45:00",
		"asmith,R-2,Alice Smith,Physics,60,12,20,2025-01-15,09:00:00",
	)

	result, err := service.Import(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if result.Status != dto.ImportStatusSuccess {
		t.Errorf("Status = %q, want %q (errors: %v)", result.Status, dto.ImportStatusSuccess, result.Errors)
	}
	if len(result.CreatedUsers) != 2 {
		t.Errorf("CreatedUsers = %v, want 2 entries", result.CreatedUsers)
	}
	if len(result.AttendanceCreated) != 2 || len(result.MarksCreated) != 2 {
		t.Errorf("created counts: attendance %d, marks %d, want 2 each",
			len(result.AttendanceCreated), len(result.MarksCreated))
	}
	if len(store.users) != 2 || len(store.students) != 2 || len(store.courses) != 2 {
		t.Errorf("store counts: users %d, students %d, courses %d",
			len(store.users), len(store.students), len(store.courses))
	}

	// 80% attendance clears the presence threshold, 60% does not
	jdoe := store.users["jdoe"]
	if jdoe == nil || jdoe.RoleType != models.RoleStudent {
		t.Fatalf("jdoe user not created as student: %+v", jdoe)
	}
	if jdoe.FirstName != "John" || jdoe.LastName != "Doe" {
		t.Errorf("name split = %q %q, want John Doe", jdoe.FirstName, jdoe.LastName)
	}

	presentCount := 0
	for _, a := range store.attendance {
		if a.IsPresent {
			presentCount++
		}
	}
	if presentCount != 1 {
		t.Errorf("present rows = %d, want 1", presentCount)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := newMemStore()
	service := newTestImportService(store)

	csv := importCSV("jdoe,R-1,John Doe,Mathematics,80,18,20,2025-01-15,08:45:00")

	if _, err := service.Import(context.Background(), strings.NewReader(csv)); err != nil {
		t.Fatalf("first Import() error = %v", err)
	}

	result, err := service.Import(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}

	if result.Status != dto.ImportStatusSuccess {
		t.Errorf("Status = %q, want success (errors: %v)", result.Status, result.Errors)
	}
	if len(result.CreatedUsers) != 0 || len(result.AttendanceCreated) != 0 || len(result.MarksCreated) != 0 {
		t.Errorf("re-import created new entities: %+v", result)
	}
	if len(result.AttendanceUpdated) != 1 || len(result.MarksUpdated) != 1 {
		t.Errorf("re-import updated: attendance %v, marks %v, want 1 each",
			result.AttendanceUpdated, result.MarksUpdated)
	}
	if len(store.attendance) != 1 || len(store.marks) != 1 {
		t.Errorf("store rows duplicated: attendance %d, marks %d", len(store.attendance), len(store.marks))
	}
}

func TestImportRowErrorsDoNotAbortBatch(t *testing.T) {
	store := newMemStore()
	service := newTestImportService(store)

	csv := importCSV(
		"jdoe,R-1,John Doe,Mathematics,80,110,100,2025-01-15,08:45:00",
		"bad,R-2,Bad Date,Mathematics,80,10,20,2025-13-40,08:45:00",
		"asmith,R-3,Alice Smith,Mathematics,90,15,20,2025-01-15,09:00:00",
	)

	result, err := service.Import(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if result.Status != dto.ImportStatusPartial {
		t.Errorf("Status = %q, want partial", result.Status)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("Errors = %v, want 2 entries", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid marks") {
		t.Errorf("first error = %q, want it to mention invalid marks", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "Invalid date format") {
		t.Errorf("second error = %q, want it to mention invalid date format", result.Errors[1])
	}

	// The failed rows wrote nothing, the valid third row went through
	if len(store.marks) != 1 {
		t.Errorf("marks rows = %d, want only the valid row", len(store.marks))
	}
	if _, ok := store.users["asmith"]; !ok {
		t.Error("row after failures was not processed")
	}
}

func TestImportRejectsNonStudentUser(t *testing.T) {
	store := newMemStore()
	store.users["teach"] = &models.User{ID: store.nextIDValue(), Username: "teach", RoleType: models.RoleTeacher}
	service := newTestImportService(store)

	csv := importCSV(
		"teach,R-1,Teacher Person,Mathematics,80,18,20,2025-01-15,08:45:00",
		"jdoe,R-2,John Doe,Mathematics,80,18,20,2025-01-15,08:45:00",
	)

	result, err := service.Import(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1 entry", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Row 2") {
		t.Errorf("error = %q, want it scoped to row 2", result.Errors[0])
	}
	if _, ok := store.students[0]; ok {
		t.Error("student record created for non-student user")
	}
	if _, ok := store.users["jdoe"]; !ok {
		t.Error("valid row after role error was not processed")
	}
}
