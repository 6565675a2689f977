package middleware

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/emre/classtrack/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			"conflict carries the builder message",
			apperrors.NewConflictError("username is already taken"),
			409, "RES_002", "username is already taken",
		},
		{
			"not found carries the builder message",
			apperrors.NewResourceNotFoundError("no student record for this account"),
			404, "RES_001", "no student record for this account",
		},
		{
			"bare sentinel falls back to the generic message",
			apperrors.ErrStudentNotFound,
			404, "RES_001", "Resource not found",
		},
		{
			"username sentinel maps to conflict",
			apperrors.ErrUsernameExists,
			409, "RES_002", "Username already exists",
		},
		{
			"classifier failure maps to bad gateway",
			apperrors.NewCustomError(apperrors.ErrClassifierUnavailable, "classifier returned status 503"),
			502, "SRV_002", "Classification service unavailable",
		},
		{
			"import schema failure maps to bad request",
			apperrors.NewCustomError(apperrors.ErrImportSchema, "missing required columns: date"),
			400, "VAL_002", "missing required columns: date",
		},
		{
			"unknown error maps to internal server error",
			errors.New("connection reset"),
			500, "SRV_001", "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			HandleAPIError(c, tt.err)

			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
			body := recorder.Body.String()
			if !strings.Contains(body, tt.code) {
				t.Errorf("body %q is missing error code %s", body, tt.code)
			}
			if !strings.Contains(body, tt.message) {
				t.Errorf("body %q is missing message %q", body, tt.message)
			}
		})
	}
}
