package services

import (
	"testing"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		firstName string
		lastName  string
	}{
		{"two tokens", "John Doe", "John", "Doe"},
		{"single token", "Cher", "Cher", ""},
		{"three tokens", "Mary Jane Watson", "Mary", "Jane Watson"},
		{"extra whitespace", "  John   Doe  ", "John", "Doe"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.input)
			if first != tt.firstName || last != tt.lastName {
				t.Errorf("SplitName(%q) = %q, %q, want %q, %q",
					tt.input, first, last, tt.firstName, tt.lastName)
			}
		})
	}
}
