package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/repositories"
	"github.com/emre/classtrack/internal/db"
	"github.com/emre/classtrack/internal/pkg/apperrors"
	pkgAuth "github.com/emre/classtrack/internal/pkg/auth"
)

// DefaultStudentPassword is assigned to accounts provisioned without an
// explicit password (admin creation and bulk import).
const DefaultStudentPassword = "student123"

// AccountService creates user accounts together with their student records.
// The user and student rows are written in one transaction, so a student-role
// user can never exist without its student row.
type AccountService struct {
	database *db.PostgresDB
	logger   zerolog.Logger
}

// NewAccountService creates a new account service instance
func NewAccountService(database *db.PostgresDB, logger zerolog.Logger) *AccountService {
	return &AccountService{
		database: database,
		logger:   logger,
	}
}

// CreateStudentAccount creates the User and Student rows for a new student
func (s *AccountService) CreateStudentAccount(ctx context.Context, req dto.CreateStudentAccountRequest) (*models.Student, error) {
	password := req.Password
	if password == "" {
		password = DefaultStudentPassword
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	firstName, lastName := SplitName(req.Name)

	var student *models.Student
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user := &models.User{
			Username:  req.Username,
			Password:  hashed,
			FirstName: firstName,
			LastName:  lastName,
			RoleType:  models.RoleStudent,
		}
		if err := repositories.NewUserRepository(tx).Create(ctx, user); err != nil {
			return err
		}

		student = &models.Student{
			UserID:     user.ID,
			Name:       req.Name,
			RollNumber: req.RollNumber,
		}
		if err := repositories.NewStudentRepository(tx).Create(ctx, student); err != nil {
			return err
		}

		student.User = user
		return nil
	})
	// Name the colliding value so the caller knows which field to change
	if errors.Is(err, apperrors.ErrUsernameExists) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("username %q is already taken", req.Username))
	}
	if errors.Is(err, apperrors.ErrRollNumberExists) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("roll number %q already belongs to another student", req.RollNumber))
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", req.Username).
		Str("rollNumber", req.RollNumber).
		Msg("Student account created")

	return student, nil
}

// SplitName splits a full display name into first and last name: the first
// whitespace token is the first name, the remainder joined is the last name
// (empty for a single token).
func SplitName(name string) (firstName, lastName string) {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return "", ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}
