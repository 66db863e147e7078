package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the envelope.
const (
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeValidationFailed   = "ERR_VALIDATION_FAILED"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeStorageUnavailable = "ERR_STORAGE_UNAVAILABLE"

	// Login failures share one code so the response never reveals whether the
	// username or the password was wrong.
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// FieldError names a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the uniform error envelope for every handler.
type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// ErrorResponse writes the envelope with the given status.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ValidationFailed writes a 400 carrying the field-level error list. Handlers
// call it before any mutation is attempted.
func ValidationFailed(c *gin.Context, fieldErrors ...FieldError) {
	c.JSON(http.StatusBadRequest, APIError{
		Code:    ErrCodeValidationFailed,
		Message: "validation failed",
		Errors:  fieldErrors,
	})
}

// BadRequest writes a 400.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound writes a 404.
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// Conflict writes a 409 for uniqueness and state-transition violations.
func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, ErrCodeConflict, message)
}

// StorageUnavailable writes a generic 500. Storage internals are logged by the
// caller, never sent to clients.
func StorageUnavailable(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeStorageUnavailable, "server error")
}

// InvalidPayload writes a 400 for an unparseable request body.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}
