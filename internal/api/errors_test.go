package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorResponseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		write      func(c *gin.Context)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unauthorized",
			write:      func(c *gin.Context) { Unauthorized(c, "authentication required") },
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrCodeUnauthorized,
		},
		{
			name:       "forbidden",
			write:      func(c *gin.Context) { Forbidden(c, "insufficient role") },
			wantStatus: http.StatusForbidden,
			wantCode:   ErrCodeForbidden,
		},
		{
			name:       "not found",
			write:      func(c *gin.Context) { NotFound(c, "alert not found") },
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "conflict",
			write:      func(c *gin.Context) { Conflict(c, "username or email already in use") },
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeConflict,
		},
		{
			name:       "storage unavailable",
			write:      StorageUnavailable,
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeStorageUnavailable,
		},
		{
			name:       "invalid payload",
			write:      InvalidPayload,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var apiErr APIError
			if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message == "" {
				t.Error("message is empty")
			}
			if len(apiErr.Errors) != 0 {
				t.Errorf("errors = %+v, want none for a plain envelope", apiErr.Errors)
			}
		})
	}
}

func TestValidationFailedCarriesFieldList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ValidationFailed(c,
		FieldError{Field: "username", Message: "username is required"},
		FieldError{Field: "email", Message: "email is not a valid address"},
	)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if apiErr.Code != ErrCodeValidationFailed {
		t.Errorf("code = %q, want %q", apiErr.Code, ErrCodeValidationFailed)
	}
	if len(apiErr.Errors) != 2 || apiErr.Errors[0].Field != "username" || apiErr.Errors[1].Field != "email" {
		t.Errorf("errors = %+v, want username then email", apiErr.Errors)
	}
}
