package utils

import "net/http"

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound        = "NOT_FOUND"
	ErrPostNotFound    = "POST_NOT_FOUND"
	ErrCommentNotFound = "COMMENT_NOT_FOUND"
	ErrUserNotFound    = "USER_NOT_FOUND"
	ErrInvalidInput    = "INVALID_INPUT"

	// Duplicates
	ErrUserAlreadyExists  = "USER_ALREADY_EXISTS"
	ErrDuplicatePostTitle = "DUPLICATE_POST_TITLE"

	// Authentication/Authorization errors
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrInvalidToken       = "INVALID_TOKEN"
	ErrTokenExpired       = "TOKEN_EXPIRED"
	ErrNotAllowed         = "NOT_ALLOWED"

	// Moderation gate outcomes
	ErrValidationFailed      = "VALIDATION_FAILED"
	ErrQuotaExceeded         = "QUOTA_EXCEEDED"
	ErrValidationUnavailable = "VALIDATION_UNAVAILABLE"

	ErrDatabase = "DATABASE_ERROR"
)

func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// IsErrorCode reports whether err is an AppError with the given code.
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
// Ownership violations map to 400 and token failures to 403, preserving the
// API's existing convention.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound, ErrPostNotFound, ErrCommentNotFound, ErrUserNotFound:
		return http.StatusNotFound
	case ErrInvalidInput, ErrNotAllowed, ErrValidationFailed,
		ErrUserAlreadyExists, ErrDuplicatePostTitle:
		return http.StatusBadRequest
	case ErrInvalidCredentials:
		return http.StatusUnauthorized
	case ErrInvalidToken, ErrTokenExpired:
		return http.StatusForbidden
	case ErrQuotaExceeded:
		return http.StatusTooManyRequests
	case ErrValidationUnavailable:
		return http.StatusServiceUnavailable
	case ErrDatabase:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
