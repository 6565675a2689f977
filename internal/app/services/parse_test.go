package services

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	date, err := parseDate("2025-01-15")
	if err != nil {
		t.Fatalf("parseDate() error = %v", err)
	}
	if !date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseDate() = %v", date)
	}

	for _, bad := range []string{"2025-13-40", "15/01/2025", "yesterday", ""} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) expected an error", bad)
		} else if !strings.Contains(err.Error(), "Invalid date format") {
			t.Errorf("parseDate(%q) error = %q, want it to mention the format", bad, err)
		}
	}
}

func TestValidateCheckinTime(t *testing.T) {
	if err := validateCheckinTime("08:45:00"); err != nil {
		t.Errorf("validateCheckinTime() error = %v", err)
	}

	for _, bad := range []string{"8:45", "25:00:00", "noon"} {
		if err := validateCheckinTime(bad); err == nil {
			t.Errorf("validateCheckinTime(%q) expected an error", bad)
		}
	}
}
