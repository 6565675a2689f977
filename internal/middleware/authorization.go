package middleware

import (
	"github.com/emre/classtrack/internal/app/models"
)

// Action names one protected capability of the API
type Action string

// Protected actions
const (
	ActionManageStudents Action = "students:manage"
	ActionViewStudents   Action = "students:view"
	ActionManageCourses  Action = "courses:manage"
	ActionViewCourses    Action = "courses:view"
	ActionManageRecords  Action = "records:manage"
	ActionViewRecords    Action = "records:view"
	ActionImportRecords  Action = "records:import"
	ActionExportRecords  Action = "records:export"
	ActionAnalyzeAnyRisk Action = "risk:analyze"
	ActionClassifyCustom Action = "risk:custom"
	ActionViewOwnRecords Action = "self:view"
	ActionAnalyzeOwnRisk Action = "self:risk"
)

// policy is the role-to-action authorization table. Absence means denied, so
// new actions are locked down until granted a row here.
var policy = map[Action]map[models.RoleType]bool{
	ActionManageStudents: {models.RoleTeacher: true},
	ActionViewStudents:   {models.RoleTeacher: true},
	ActionManageCourses:  {models.RoleTeacher: true},
	ActionViewCourses:    {models.RoleTeacher: true, models.RoleStudent: true},
	ActionManageRecords:  {models.RoleTeacher: true},
	ActionViewRecords:    {models.RoleTeacher: true},
	ActionImportRecords:  {models.RoleTeacher: true},
	ActionExportRecords:  {models.RoleTeacher: true},
	ActionAnalyzeAnyRisk: {models.RoleTeacher: true},
	ActionClassifyCustom: {models.RoleTeacher: true},
	ActionViewOwnRecords: {models.RoleStudent: true, models.RoleTeacher: true},
	ActionAnalyzeOwnRisk: {models.RoleStudent: true},
}

// Allowed reports whether the role may perform the action
func Allowed(role models.RoleType, action Action) bool {
	return policy[action][role]
}
