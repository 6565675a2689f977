package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the querier shared by *pgxpool.Pool and pgx.Tx, so every repository
// can run either directly on the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	CourseRepository      *CourseRepository
	AttendanceRepository  *AttendanceRepository
	MarksRepository       *MarksRepository
	StudentRiskRepository *StudentRiskRepository
}

// NewRepositories initializes all repositories on the connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		StudentRepository:     NewStudentRepository(db),
		CourseRepository:      NewCourseRepository(db),
		AttendanceRepository:  NewAttendanceRepository(db),
		MarksRepository:       NewMarksRepository(db),
		StudentRiskRepository: NewStudentRiskRepository(db),
	}
}
