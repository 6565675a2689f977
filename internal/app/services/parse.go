package services

import (
	"fmt"
	"time"

	"github.com/emre/classtrack/internal/pkg/apperrors"
)

const (
	dateLayout    = "2006-01-02"
	checkinLayout = "15:04:05"
)

// parseDate parses a YYYY-MM-DD value
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequestError(
			fmt.Sprintf("Invalid date format: %q (expected YYYY-MM-DD)", value))
	}
	return date, nil
}

// validateCheckinTime validates an HH:MM:SS value
func validateCheckinTime(value string) error {
	if _, err := time.Parse(checkinLayout, value); err != nil {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("Invalid check-in time format: %q (expected HH:MM:SS)", value))
	}
	return nil
}
