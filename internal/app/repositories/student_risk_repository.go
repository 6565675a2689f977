package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/pkg/apperrors"
)

// StudentRiskRepository handles database operations for cached risk verdicts
type StudentRiskRepository struct {
	db DBTX
}

// NewStudentRiskRepository creates a new student risk repository
func NewStudentRiskRepository(db DBTX) *StudentRiskRepository {
	return &StudentRiskRepository{
		db: db,
	}
}

// Upsert replaces the risk row for a student, refreshing last_updated
func (r *StudentRiskRepository) Upsert(ctx context.Context, risk *models.StudentRisk) error {
	query := `
		INSERT INTO student_risk (student_id, risk_level, confidence, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id)
		DO UPDATE SET risk_level = EXCLUDED.risk_level,
		              confidence = EXCLUDED.confidence,
		              last_updated = EXCLUDED.last_updated
	`

	_, err := r.db.Exec(ctx, query, risk.StudentID, risk.RiskLevel, risk.Confidence, risk.LastUpdated)
	if err != nil {
		return fmt.Errorf("error upserting student risk: %w", err)
	}

	return nil
}

// GetByStudentID retrieves the cached risk row for a student
func (r *StudentRiskRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.StudentRisk, error) {
	query := `
		SELECT student_id, risk_level, confidence, last_updated
		FROM student_risk
		WHERE student_id = $1
	`

	var risk models.StudentRisk
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&risk.StudentID,
		&risk.RiskLevel,
		&risk.Confidence,
		&risk.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRiskNotFound
		}
		return nil, fmt.Errorf("error retrieving student risk: %w", err)
	}

	return &risk, nil
}
