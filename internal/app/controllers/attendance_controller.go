package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/services"
	"github.com/emre/classtrack/internal/middleware"
)

// AttendanceController handles attendance record operations
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// CreateAttendance records attendance
// @Summary Create an attendance record
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAttendanceRequest true "Attendance information"
// @Success 201 {object} dto.APIResponse{data=models.Attendance} "Attendance created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Attendance already recorded for this date"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) CreateAttendance(ctx *gin.Context) {
	var req dto.CreateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attendance, err := c.attendanceService.CreateAttendance(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      attendance,
		Timestamp: time.Now(),
	})
}

// GetAllAttendance retrieves all attendance records
// @Summary Get all attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) GetAllAttendance(ctx *gin.Context) {
	records, err := c.attendanceService.GetAllAttendance(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      records,
		Timestamp: time.Now(),
	})
}

// GetAttendanceByID retrieves an attendance record by ID
// @Summary Get attendance record details
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance ID"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetAttendanceByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	attendance, err := c.attendanceService.GetAttendanceByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      attendance,
		Timestamp: time.Now(),
	})
}

// GetStudentAttendance retrieves one student's attendance
// @Summary Get a student's attendance
// @Description Retrieves a student's attendance records, optionally filtered by course
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param courseId query int false "Course ID filter"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/attendance [get]
func (c *AttendanceController) GetStudentAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseCourseIDQuery(ctx)
	if !ok {
		return
	}

	records, err := c.attendanceService.GetAttendanceForStudent(ctx, id, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      records,
		Timestamp: time.Now(),
	})
}

// GetMyAttendance retrieves the caller's attendance
// @Summary Get own attendance
// @Description Retrieves the authenticated student's attendance records, optionally filtered by course
// @Tags me
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Course ID filter"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/attendance [get]
func (c *AttendanceController) GetMyAttendance(ctx *gin.Context) {
	userID, exists := middleware.UserIDFromContext(ctx)
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}
	courseID, ok := parseCourseIDQuery(ctx)
	if !ok {
		return
	}

	records, err := c.attendanceService.GetAttendanceForUser(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      records,
		Timestamp: time.Now(),
	})
}

// UpdateAttendance updates an attendance record
// @Summary Update an attendance record
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID" Format(int64) minimum(1)
// @Param request body dto.UpdateAttendanceRequest true "Updated attendance information"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [put]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attendance, err := c.attendanceService.UpdateAttendance(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      attendance,
		Timestamp: time.Now(),
	})
}

// DeleteAttendance deletes an attendance record
// @Summary Delete an attendance record
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Attendance deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance ID"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [delete]
func (c *AttendanceController) DeleteAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.attendanceService.DeleteAttendance(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Timestamp: time.Now(),
	})
}
