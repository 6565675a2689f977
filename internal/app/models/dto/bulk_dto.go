package dto

// ImportStatus summarizes the outcome of a bulk import
type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusPartial ImportStatus = "partial"
)

// ImportResult accumulates the per-entity outcomes of one bulk import.
// Row-level failures land in Errors and never abort the batch.
type ImportResult struct {
	Status            ImportStatus `json:"status" example:"partial"`
	CreatedUsers      []string     `json:"createdUsers"`
	UpdatedStudents   []string     `json:"updatedStudents"`
	AttendanceCreated []string     `json:"attendanceCreated"`
	AttendanceUpdated []string     `json:"attendanceUpdated"`
	MarksCreated      []string     `json:"marksCreated"`
	MarksUpdated      []string     `json:"marksUpdated"`
	Errors            []string     `json:"errors"`
}
