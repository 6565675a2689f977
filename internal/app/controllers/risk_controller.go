package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/app/services"
	"github.com/emre/classtrack/internal/middleware"
)

// RiskController handles risk analysis operations
type RiskController struct {
	riskService *services.RiskService
}

// NewRiskController creates a new RiskController
func NewRiskController(riskService *services.RiskService) *RiskController {
	return &RiskController{
		riskService: riskService,
	}
}

// AnalyzeStudent runs a risk analysis for a student
// @Summary Analyze a student's risk
// @Description Aggregates the student's metrics, calls the classifier and caches the verdict
// @Tags risk
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param courseId query int false "Course ID filter"
// @Success 200 {object} dto.APIResponse{data=dto.RiskAnalysisResponse} "Analysis completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 502 {object} dto.ErrorResponse "Classification service unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/risk [get]
func (c *RiskController) AnalyzeStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseCourseIDQuery(ctx)
	if !ok {
		return
	}

	analysis, err := c.riskService.AnalyzeStudent(ctx, id, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      analysis,
		Timestamp: time.Now(),
	})
}

// AnalyzeByRollNumber runs a risk analysis by roll number
// @Summary Analyze risk by roll number
// @Tags risk
// @Produce json
// @Security BearerAuth
// @Param rollNumber path string true "Roll number"
// @Success 200 {object} dto.APIResponse{data=dto.RiskAnalysisResponse} "Analysis completed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 502 {object} dto.ErrorResponse "Classification service unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /risk/students/{rollNumber} [get]
func (c *RiskController) AnalyzeByRollNumber(ctx *gin.Context) {
	analysis, err := c.riskService.AnalyzeByRollNumber(ctx, ctx.Param("rollNumber"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      analysis,
		Timestamp: time.Now(),
	})
}

// AnalyzeMyRisk runs a risk analysis for the caller's student record
// @Summary Analyze own risk
// @Tags me
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Course ID filter"
// @Success 200 {object} dto.APIResponse{data=dto.RiskAnalysisResponse} "Analysis completed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Failure 502 {object} dto.ErrorResponse "Classification service unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/risk [get]
func (c *RiskController) AnalyzeMyRisk(ctx *gin.Context) {
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

	analysis, err := c.riskService.AnalyzeForUser(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      analysis,
		Timestamp: time.Now(),
	})
}

// AnalyzeMyRiskPerCourse runs a course-scoped analysis for each of the caller's courses
// @Summary Analyze own risk per course
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RiskAnalysisResponse} "Analyses completed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Failure 502 {object} dto.ErrorResponse "Classification service unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/risk/courses [get]
func (c *RiskController) AnalyzeMyRiskPerCourse(ctx *gin.Context) {
	userID, exists := middleware.UserIDFromContext(ctx)
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	analyses, err := c.riskService.AnalyzeAllCoursesForUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      analyses,
		Timestamp: time.Now(),
	})
}

// ClassifyCustom classifies caller-supplied metrics
// @Summary Classify custom metrics
// @Description Calls the classifier with arbitrary metrics without persisting anything
// @Tags risk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CustomRiskRequest true "Metrics to classify"
// @Success 200 {object} dto.APIResponse{data=dto.RiskPredictionData} "Classification completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 502 {object} dto.ErrorResponse "Classification service unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /risk/custom [post]
func (c *RiskController) ClassifyCustom(ctx *gin.Context) {
	var req dto.CustomRiskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid metrics data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	prediction, err := c.riskService.ClassifyCustom(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      prediction,
		Timestamp: time.Now(),
	})
}
