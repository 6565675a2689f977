package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/repositories"
	"github.com/emre/classtrack/internal/db"
	"github.com/emre/classtrack/internal/pkg/apperrors"
	pkgAuth "github.com/emre/classtrack/internal/pkg/auth"
)

// requiredColumns must all be present in the CSV header. Extra columns are
// ignored.
var requiredColumns = []string{
	"username",
	"roll_number",
	"name",
	"subject",
	"attendance_percentage",
	"marks_obtained",
	"total_marks",
	"date",
	"check_in_time",
}

// presenceThreshold marks a newly imported attendance row present when the
// row's attendance percentage reaches it.
const presenceThreshold = 75.0

// importTx is the slice of repository operations a single import row needs,
// bound to that row's transaction.
type importTx interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) error
	UpdateStudent(ctx context.Context, student *models.Student) error
	GetCourseByName(ctx context.Context, name string) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpsertAttendance(ctx context.Context, attendance *models.Attendance) (bool, error)
	UpsertMarks(ctx context.Context, marks *models.Marks) (bool, error)
}

// importStore runs one import row inside its own transaction. A returned
// error from fn rolls back everything that row wrote.
type importStore interface {
	WithinRow(ctx context.Context, fn func(ctx context.Context, tx importTx) error) error
}

// BulkImportService ingests attendance/marks CSV files. Each row is applied in
// its own transaction; a failed row rolls back only itself and is reported in
// the result's error list while the rest of the batch proceeds.
type BulkImportService struct {
	store  importStore
	logger zerolog.Logger

	hashOnce    sync.Once
	defaultHash string
	hashErr     error
}

// NewBulkImportService creates a bulk import service backed by the database
func NewBulkImportService(database *db.PostgresDB, logger zerolog.Logger) *BulkImportService {
	return &BulkImportService{
		store:  &pgImportStore{database: database},
		logger: logger,
	}
}

// importRow is one validated CSV row
type importRow struct {
	line          int
	username      string
	rollNumber    string
	name          string
	subject       string
	attendancePct float64
	marksObtained float64
	totalMarks    float64
	date          string
	checkinTime   string
}

// Import parses and applies a CSV stream. The header is validated before any
// row is touched; after that every row is processed regardless of earlier
// failures. The returned error is non-nil only for input-level problems
// (unreadable stream, missing header columns).
func (s *BulkImportService) Import(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrImportSchema, "CSV file is empty or unreadable")
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{
		Status:            dto.ImportStatusSuccess,
		CreatedUsers:      []string{},
		UpdatedStudents:   []string{},
		AttendanceCreated: []string{},
		AttendanceUpdated: []string{},
		MarksCreated:      []string{},
		MarksUpdated:      []string{},
		Errors:            []string{},
	}

	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: malformed CSV record", line))
			continue
		}

		row, err := parseImportRow(line, record, columns)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}

		err = s.store.WithinRow(ctx, func(ctx context.Context, tx importTx) error {
			return s.applyRow(ctx, tx, row, result)
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		}
	}

	if len(result.Errors) > 0 {
		result.Status = dto.ImportStatusPartial
	}

	s.logger.Info().
		Int("rows", line-1).
		Int("errors", len(result.Errors)).
		Str("status", string(result.Status)).
		Msg("CSV import completed")

	return result, nil
}

// resolveColumns maps required column names to their header positions
func resolveColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrImportSchema,
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	return columns, nil
}

// parseImportRow validates one CSV record without touching the database
func parseImportRow(line int, record []string, columns map[string]int) (*importRow, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := &importRow{
		line:        line,
		username:    field("username"),
		rollNumber:  field("roll_number"),
		name:        field("name"),
		subject:     field("subject"),
		date:        field("date"),
		checkinTime: field("check_in_time"),
	}

	if row.username == "" || row.rollNumber == "" || row.name == "" || row.subject == "" {
		return nil, errors.New("username, roll_number, name and subject are required")
	}

	pct, err := strconv.ParseFloat(field("attendance_percentage"), 64)
	if err != nil || pct < 0 || pct > 100 {
		return nil, fmt.Errorf("Invalid attendance percentage %q (expected 0-100)", field("attendance_percentage"))
	}
	row.attendancePct = pct

	marks, err := strconv.ParseFloat(field("marks_obtained"), 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid marks %q", field("marks_obtained"))
	}
	total, err := strconv.ParseFloat(field("total_marks"), 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid marks: total_marks %q", field("total_marks"))
	}
	if total <= 0 || marks < 0 || marks > total {
		return nil, fmt.Errorf("Invalid marks %v/%v", marks, total)
	}
	row.marksObtained = marks
	row.totalMarks = total

	if _, err := parseDate(row.date); err != nil {
		return nil, fmt.Errorf("Invalid date format %q (expected YYYY-MM-DD)", row.date)
	}
	if row.checkinTime != "" {
		if err := validateCheckinTime(row.checkinTime); err != nil {
			return nil, fmt.Errorf("Invalid check-in time %q (expected HH:MM:SS)", row.checkinTime)
		}
	}

	return row, nil
}

// applyRow writes one validated row inside its transaction
func (s *BulkImportService) applyRow(ctx context.Context, tx importTx, row *importRow, result *dto.ImportResult) error {
	user, err := tx.GetUserByUsername(ctx, row.username)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		hash, hashErr := s.defaultPasswordHash()
		if hashErr != nil {
			return hashErr
		}
		firstName, lastName := SplitName(row.name)
		user = &models.User{
			Username:  row.username,
			Password:  hash,
			FirstName: firstName,
			LastName:  lastName,
			RoleType:  models.RoleStudent,
		}
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		result.CreatedUsers = append(result.CreatedUsers, row.username)
	case err != nil:
		return err
	case user.RoleType != models.RoleStudent:
		return apperrors.NewCustomError(apperrors.ErrUserNotStudentRole,
			fmt.Sprintf("user %q has role %s", row.username, user.RoleType))
	}

	student, err := tx.GetStudentByUserID(ctx, user.ID)
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		student = &models.Student{
			UserID:     user.ID,
			Name:       row.name,
			RollNumber: row.rollNumber,
		}
		if err := tx.CreateStudent(ctx, student); err != nil {
			return err
		}
	case err != nil:
		return err
	case student.Name != row.name || student.RollNumber != row.rollNumber:
		student.Name = row.name
		student.RollNumber = row.rollNumber
		if err := tx.UpdateStudent(ctx, student); err != nil {
			return err
		}
		result.UpdatedStudents = append(result.UpdatedStudents, row.rollNumber)
	}

	course, err := tx.GetCourseByName(ctx, row.subject)
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		course = &models.Course{
			Name: row.subject,
			Code: DeriveCourseCode(row.subject),
		}
		if err := tx.CreateCourse(ctx, course); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	date, err := parseDate(row.date)
	if err != nil {
		return err
	}

	attendance := &models.Attendance{
		StudentID: student.ID,
		CourseID:  course.ID,
		Date:      date,
		IsPresent: row.attendancePct >= presenceThreshold,
	}
	if row.checkinTime != "" {
		attendance.CheckinTime = &row.checkinTime
	}
	created, err := tx.UpsertAttendance(ctx, attendance)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s/%s/%s", row.rollNumber, row.subject, row.date)
	if created {
		result.AttendanceCreated = append(result.AttendanceCreated, key)
	} else {
		result.AttendanceUpdated = append(result.AttendanceUpdated, key)
	}

	marks := &models.Marks{
		StudentID:        student.ID,
		CourseID:         course.ID,
		AssessmentType:   models.AssessmentQuiz,
		AssessmentNumber: 1,
		Marks:            row.marksObtained,
		MaxMarks:         row.totalMarks,
		Date:             date,
	}
	created, err = tx.UpsertMarks(ctx, marks)
	if err != nil {
		return err
	}
	if created {
		result.MarksCreated = append(result.MarksCreated, key)
	} else {
		result.MarksUpdated = append(result.MarksUpdated, key)
	}

	return nil
}

// defaultPasswordHash hashes DefaultStudentPassword once per service instance.
// Bcrypt is deliberately slow, so the hash is not recomputed per row.
func (s *BulkImportService) defaultPasswordHash() (string, error) {
	s.hashOnce.Do(func() {
		s.defaultHash, s.hashErr = pkgAuth.HashPassword(DefaultStudentPassword)
	})
	return s.defaultHash, s.hashErr
}

// pgImportStore runs import rows in pgx transactions
type pgImportStore struct {
	database *db.PostgresDB
}

func (s *pgImportStore) WithinRow(ctx context.Context, fn func(ctx context.Context, tx importTx) error) error {
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &pgImportTx{
			users:      repositories.NewUserRepository(tx),
			students:   repositories.NewStudentRepository(tx),
			courses:    repositories.NewCourseRepository(tx),
			attendance: repositories.NewAttendanceRepository(tx),
			marks:      repositories.NewMarksRepository(tx),
		})
	})
}

// pgImportTx binds the row operations to one transaction
type pgImportTx struct {
	users      *repositories.UserRepository
	students   *repositories.StudentRepository
	courses    *repositories.CourseRepository
	attendance *repositories.AttendanceRepository
	marks      *repositories.MarksRepository
}

func (t *pgImportTx) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return t.users.GetByUsername(ctx, username)
}

func (t *pgImportTx) CreateUser(ctx context.Context, user *models.User) error {
	return t.users.Create(ctx, user)
}

func (t *pgImportTx) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return t.students.GetByUserID(ctx, userID)
}

func (t *pgImportTx) CreateStudent(ctx context.Context, student *models.Student) error {
	return t.students.Create(ctx, student)
}

func (t *pgImportTx) UpdateStudent(ctx context.Context, student *models.Student) error {
	return t.students.Update(ctx, student)
}

func (t *pgImportTx) GetCourseByName(ctx context.Context, name string) (*models.Course, error) {
	return t.courses.GetByName(ctx, name)
}

func (t *pgImportTx) CreateCourse(ctx context.Context, course *models.Course) error {
	return t.courses.Create(ctx, course)
}

func (t *pgImportTx) UpsertAttendance(ctx context.Context, attendance *models.Attendance) (bool, error) {
	return t.attendance.Upsert(ctx, attendance)
}

func (t *pgImportTx) UpsertMarks(ctx context.Context, marks *models.Marks) (bool, error) {
	return t.marks.Upsert(ctx, marks)
}
