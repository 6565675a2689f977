package services

import (
	"testing"
)

func TestDeriveCourseCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short name", "Maths", "MATHS"},
		{"truncated to ten characters", "Mathematics", "MATHEMATIC"},
		{"whitespace trimmed first", "  Physics  ", "PHYSICS"},
		{"already upper", "CHEM", "CHEM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveCourseCode(tt.input); got != tt.want {
				t.Errorf("DeriveCourseCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
