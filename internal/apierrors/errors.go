package apierrors

import "net/http"

// Machine-readable error codes returned to API clients.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInvalidTier        = "INVALID_TIER"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeCaptchaRequired    = "CAPTCHA_REQUIRED"
	CodeCaptchaFailed      = "CAPTCHA_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeRateLimited        = "RATE_LIMITED"
	CodeExternalService    = "EXTERNAL_SERVICE_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// APIError is the internal representation of an error response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	// wrapped internal error, never sent to the client
	internal error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.internal
}

// NotFound builds a 404 error
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// BadRequest builds a 400 error with the generic invalid-input code
func BadRequest(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: message}
}

// BadRequestWithCode builds a 400 error carrying a specific code
func BadRequestWithCode(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized builds a 401 error
func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Forbidden builds a 403 error
func Forbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// Conflict builds a 409 error
func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

// ServiceUnavailable builds a 503 error wrapping the internal cause
func ServiceUnavailable(code, message string, internalErr error) *APIError {
	return &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       code,
		Message:    message,
		internal:   internalErr,
	}
}

// InternalError builds a sanitized 500 error - never exposes internal details
func InternalError(internalErr error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		internal:   internalErr,
	}
}
