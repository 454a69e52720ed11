package errors

import (
	"fmt"
	"net/http"
)

// AppError is the application error type carried across handler boundaries.
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped error to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// ErrForbidden represents a forbidden error.
func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

func ErrInvalidCredentials() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_CREDENTIALS,
		Message:  "Invalid username or password",
	}
}

func ErrUserNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_AUTH_USER_NOT_FOUND,
		Message:  "User not found",
	}
}

func ErrUserAlreadyExists(username string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_AUTH_USER_ALREADY_EXISTS,
		Message:  "User already exists",
	}.WithDetail("username", username)
}

// Meeting Access Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrNotInvited(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_MEETING_NOT_INVITED,
		Message:  "You are not invited to this meeting",
	}.WithDetail("meeting_id", meetingID)
}

func ErrWrongMeetingMode(meetingID, mode string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_MEETING_WRONG_MODE,
		Message:  "This meeting is not configured for the requested access mode",
	}.WithDetail("meeting_id", meetingID).
		WithDetail("mode", mode)
}

func ErrMeetingClosed(meetingID, message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_MEETING_CLOSED,
		Message:  message,
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingNotConfigured(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_MEETING_NOT_CONFIGURED,
		Message:  "Meeting time is not configured",
	}.WithDetail("meeting_id", meetingID)
}

func ErrFaceNotVerified(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FACE_NOT_VERIFIED,
		Message:  "Face verification is required for this meeting",
	}.WithDetail("meeting_id", meetingID)
}

func ErrFaceVerifyFailed(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FACE_VERIFY_FAILED,
		Message:  message,
	}
}

// Minutes Workflow Errors
func ErrMinutesNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MINUTES_NOT_FOUND,
		Message:  "Minutes not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMinutesLocked() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_MINUTES_LOCKED,
		Message:  "This minutes record is approved and locked",
	}
}

func ErrMinutesNotApproved() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_MINUTES_NOT_APPROVED,
		Message:  "Minutes are not approved yet",
	}
}

// Task Errors
func ErrTaskNotFound(taskID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TASK_NOT_FOUND,
		Message:  "Task not found",
	}.WithDetail("task_id", taskID)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrAIEngineFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_AI_ENGINE_FAILED,
		Message:  fmt.Sprintf("AI engine call failed: %s", operation),
	}
}

func ErrFaceMatcherFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_FACE_MATCHER_FAILED,
		Message:  "Face matcher call failed",
	}
}

// Database Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

func ErrDBTransactionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_TRANSACTION_FAILED,
		Message:  "Database transaction failed",
	}
}

// HTTPStatusOK represents a successful HTTP response.
func HTTPStatusOK(message string) AppError {
	return AppError{
		HTTPCode: http.StatusOK,
		Code:     ErrorCode_HTTP_OK,
		Message:  message,
	}
}
