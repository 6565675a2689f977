package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/services"
	"github.com/emre/classtrack/internal/middleware"
)

// MarksController handles assessment result operations
type MarksController struct {
	marksService *services.MarksService
}

// NewMarksController creates a new MarksController
func NewMarksController(marksService *services.MarksService) *MarksController {
	return &MarksController{
		marksService: marksService,
	}
}

// CreateMarks records an assessment result
// @Summary Create a marks record
// @Tags marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMarksRequest true "Marks information"
// @Success 201 {object} dto.APIResponse{data=models.Marks} "Marks created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Marks already recorded for this assessment"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /marks [post]
func (c *MarksController) CreateMarks(ctx *gin.Context) {
	var req dto.CreateMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid marks data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	marks, err := c.marksService.CreateMarks(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      marks,
		Timestamp: time.Now(),
	})
}

// GetAllMarks retrieves all marks records
// @Summary Get all marks records
// @Tags marks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Marks} "Marks retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /marks [get]
func (c *MarksController) GetAllMarks(ctx *gin.Context) {
	records, err := c.marksService.GetAllMarks(ctx)
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

// GetMarksByID retrieves a marks record by ID
// @Summary Get marks record details
// @Tags marks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Marks ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Marks} "Marks retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid marks ID"
// @Failure 404 {object} dto.ErrorResponse "Marks record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /marks/{id} [get]
func (c *MarksController) GetMarksByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	marks, err := c.marksService.GetMarksByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      marks,
		Timestamp: time.Now(),
	})
}

// GetStudentMarks retrieves one student's marks
// @Summary Get a student's marks
// @Description Retrieves a student's marks records, optionally filtered by course
// @Tags marks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param courseId query int false "Course ID filter"
// @Success 200 {object} dto.APIResponse{data=[]models.Marks} "Marks retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/marks [get]
func (c *MarksController) GetStudentMarks(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseCourseIDQuery(ctx)
	if !ok {
		return
	}

	records, err := c.marksService.GetMarksForStudent(ctx, id, courseID)
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

// GetMyMarks retrieves the caller's marks
// @Summary Get own marks
// @Description Retrieves the authenticated student's marks records, optionally filtered by course
// @Tags me
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Course ID filter"
// @Success 200 {object} dto.APIResponse{data=[]models.Marks} "Marks retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/marks [get]
func (c *MarksController) GetMyMarks(ctx *gin.Context) {
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

	records, err := c.marksService.GetMarksForUser(ctx, userID, courseID)
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

// UpdateMarks updates a marks record
// @Summary Update a marks record
// @Tags marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Marks ID" Format(int64) minimum(1)
// @Param request body dto.UpdateMarksRequest true "Updated marks information"
// @Success 200 {object} dto.APIResponse{data=models.Marks} "Marks updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Marks record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /marks/{id} [put]
func (c *MarksController) UpdateMarks(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid marks data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	marks, err := c.marksService.UpdateMarks(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      marks,
		Timestamp: time.Now(),
	})
}

// DeleteMarks deletes a marks record
// @Summary Delete a marks record
// @Tags marks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Marks ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Marks deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid marks ID"
// @Failure 404 {object} dto.ErrorResponse "Marks record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /marks/{id} [delete]
func (c *MarksController) DeleteMarks(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.marksService.DeleteMarks(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Timestamp: time.Now(),
	})
}
