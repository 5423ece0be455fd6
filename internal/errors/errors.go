package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// kind ties a code to its HTTP status and the message used when the caller
// passes none.
type kind struct {
	status  int
	code    string
	message string
}

var (
	kindUnauthorized       = kind{http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required"}
	kindInvalidCredentials = kind{http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid email or password"}
	kindForbidden          = kind{http.StatusForbidden, ErrCodeForbidden, "Access denied"}
	kindInvalidInput       = kind{http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request"}
	kindNotFound           = kind{http.StatusNotFound, ErrCodeNotFound, "Resource not found"}
	kindConflict           = kind{http.StatusConflict, ErrCodeConflict, "Resource conflict"}
	kindInternal           = kind{http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"}
	kindUnavailable        = kind{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service temporarily unavailable"}
)

// APIError is the JSON body of every error response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{Code: code, Message: message, Details: details}
}

// RespondWithError writes err and stops the handler chain.
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

func (k kind) respond(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = k.message
	}
	RespondWithError(c, k.status, NewAPIErrorWithDetails(k.code, message, details))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	kindUnauthorized.respond(c, message, nil)
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context, message string) {
	kindInvalidCredentials.respond(c, message, nil)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	kindForbidden.respond(c, message, nil)
}

// ForbiddenWithDetails sends a 403 response with details, such as the
// capability that was missing or where to redirect.
func ForbiddenWithDetails(c *gin.Context, message string, details interface{}) {
	kindForbidden.respond(c, message, details)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	kindNotFound.respond(c, message, nil)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	kindInvalidInput.respond(c, message, nil)
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	kindInvalidInput.respond(c, message, details)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	kindConflict.respond(c, message, nil)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	kindInternal.respond(c, message, nil)
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	kindUnavailable.respond(c, message, nil)
}
