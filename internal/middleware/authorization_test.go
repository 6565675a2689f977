package middleware

import (
	"testing"

	"github.com/emre/classtrack/internal/app/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   models.RoleType
		action Action
		want   bool
	}{
		{"teacher manages students", models.RoleTeacher, ActionManageStudents, true},
		{"teacher imports records", models.RoleTeacher, ActionImportRecords, true},
		{"teacher analyzes any student", models.RoleTeacher, ActionAnalyzeAnyRisk, true},
		{"student views own records", models.RoleStudent, ActionViewOwnRecords, true},
		{"student analyzes own risk", models.RoleStudent, ActionAnalyzeOwnRisk, true},
		{"student lists courses", models.RoleStudent, ActionViewCourses, true},
		{"student cannot manage students", models.RoleStudent, ActionManageStudents, false},
		{"student cannot import", models.RoleStudent, ActionImportRecords, false},
		{"student cannot export", models.RoleStudent, ActionExportRecords, false},
		{"student cannot analyze others", models.RoleStudent, ActionAnalyzeAnyRisk, false},
		{"unknown role denied", models.RoleType("ADMIN"), ActionViewCourses, false},
		{"unknown action denied", models.RoleTeacher, Action("records:purge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.action); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
			}
		})
	}
}
