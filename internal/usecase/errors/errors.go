package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// Meeting access errors
var (
	ErrMeetingNotFound        = errors.New("meeting not found")
	ErrNotInvited             = errors.New("user not invited to this meeting")
	ErrWrongMode              = errors.New("meeting mode does not allow joining online")
	ErrMeetingClosed          = errors.New("meeting is outside its open window")
	ErrMeetingNotConfigured   = errors.New("meeting time is not configured")
	ErrFaceNotVerified        = errors.New("face verification required")
	ErrNoFaceDetected         = errors.New("no face detected in submitted image")
	ErrNoReferenceImage       = errors.New("no reference face image on file")
	ErrFaceVerificationFailed = errors.New("face verification failed")
)

// Minutes errors
var (
	ErrMinutesNotFound    = errors.New("minutes not found")
	ErrMinutesLocked      = errors.New("minutes are locked for editing")
	ErrMinutesNotApproved = errors.New("minutes are not approved")
	ErrNoTranscript       = errors.New("meeting has no transcript")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserNotActive     = errors.New("user is not active")
	ErrUsernameTaken     = errors.New("username already in use")
	ErrEmailAlreadyUsed  = errors.New("email already in use")
	ErrAssigneeUnmatched = errors.New("assignee could not be resolved")
)

// Task errors
var (
	ErrTaskNotFound = errors.New("task not found")
)
