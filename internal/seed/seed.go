// Package seed creates the default teacher account on first startup so the
// API is usable before any students are imported.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models"
	"github.com/emre/classtrack/internal/app/repositories"
	"github.com/emre/classtrack/internal/pkg/apperrors"
	"github.com/emre/classtrack/internal/pkg/auth"
)

const (
	defaultTeacherUsername = "admin"
	defaultTeacherPassword = "Admin123!"
)

// CreateDefaultData creates the default teacher account if it doesn't exist
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	_, err := userRepo.GetByUsername(ctx, defaultTeacherUsername)
	if err == nil {
		lgr.Info().Msg("Default teacher account already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default teacher account")
		return err
	}

	hashed, err := auth.HashPassword(defaultTeacherPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default teacher password")
		return err
	}

	teacher := &models.User{
		Username:  defaultTeacherUsername,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		RoleType:  models.RoleTeacher,
	}
	if err := userRepo.Create(ctx, teacher); err != nil {
		lgr.Error().Err(err).Msg("Error creating default teacher account")
		return err
	}

	lgr.Info().Int64("userID", teacher.ID).Msg("Default teacher account created")
	return nil
}
