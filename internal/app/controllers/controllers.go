// Package controllers contains the HTTP handlers of the API. Controllers bind
// and validate requests, delegate to services and translate errors through
// middleware.HandleAPIError.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/classtrack/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes the
// 400 response itself and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseCourseIDQuery reads the optional courseId query parameter. On a
// malformed value it writes the 400 response itself and returns ok=false.
func parseCourseIDQuery(ctx *gin.Context) (courseID *int64, ok bool) {
	raw := ctx.Query("courseId")
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid courseId")
		errorDetail = errorDetail.WithDetails("courseId must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &id, true
}
