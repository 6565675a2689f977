package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/services"
	"github.com/emre/classtrack/internal/middleware"
)

// ReportController handles CSV import and export
type ReportController struct {
	importService *services.BulkImportService
	exportService *services.BulkExportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(
	importService *services.BulkImportService,
	exportService *services.BulkExportService,
	logger zerolog.Logger,
) *ReportController {
	return &ReportController{
		importService: importService,
		exportService: exportService,
		logger:        logger,
	}
}

// ImportRecords ingests a CSV file of attendance and marks
// @Summary Import student records from CSV
// @Description Uploads a CSV file and applies it row by row; row failures are reported without aborting the batch
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult} "Import completed"
// @Failure 400 {object} dto.ErrorResponse "Missing file or invalid header"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/import [post]
func (c *ReportController) ImportRecords(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "CSV file is required")
		errorDetail = errorDetail.WithDetails("Upload the file in the 'file' form field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to read uploaded file")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	result, err := c.importService.Import(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// ExportRecords streams all student records as CSV
// @Summary Export all student records as CSV
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV stream"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/export [get]
func (c *ReportController) ExportRecords(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="student_records.csv"`)

	if err := c.exportService.ExportAll(ctx, ctx.Writer); err != nil {
		// Headers may already be out; log and abort the stream
		c.logger.Error().Err(err).Msg("CSV export failed")
		ctx.Abort()
	}
}

// ExportStudentRecords streams one student's records as CSV
// @Summary Export a single student's records as CSV
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param rollNumber path string true "Roll number"
// @Success 200 {string} string "CSV stream"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/export/{rollNumber} [get]
func (c *ReportController) ExportStudentRecords(ctx *gin.Context) {
	rollNumber := ctx.Param("rollNumber")

	var buf bytes.Buffer
	if err := c.exportService.ExportByRollNumber(ctx, rollNumber, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+rollNumber+`.csv"`)
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}
