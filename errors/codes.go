package errors

// ErrorCode identifies an application error category.
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_HTTP_OK           ErrorCode = 1200

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN       ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED       ErrorCode = 2001
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = 2002
	ErrorCode_AUTH_USER_NOT_FOUND      ErrorCode = 2003
	ErrorCode_AUTH_USER_ALREADY_EXISTS ErrorCode = 2004

	// Meeting access
	ErrorCode_MEETING_NOT_FOUND      ErrorCode = 3000
	ErrorCode_MEETING_NOT_INVITED    ErrorCode = 3001
	ErrorCode_MEETING_WRONG_MODE     ErrorCode = 3002
	ErrorCode_MEETING_CLOSED         ErrorCode = 3003
	ErrorCode_MEETING_NOT_CONFIGURED ErrorCode = 3004
	ErrorCode_FACE_NOT_VERIFIED      ErrorCode = 3005
	ErrorCode_FACE_VERIFY_FAILED     ErrorCode = 3006

	// Minutes workflow
	ErrorCode_MINUTES_NOT_FOUND    ErrorCode = 4000
	ErrorCode_MINUTES_LOCKED       ErrorCode = 4001
	ErrorCode_MINUTES_NOT_APPROVED ErrorCode = 4002

	// Tasks
	ErrorCode_TASK_NOT_FOUND ErrorCode = 5000

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 6000
	ErrorCode_INTEGRATION_AI_ENGINE_FAILED    ErrorCode = 6001
	ErrorCode_INTEGRATION_FACE_MATCHER_FAILED ErrorCode = 6002

	// Database
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 7000
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 7001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                         "UNKNOWN",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                       "FORBIDDEN",
	ErrorCode_HTTP_OK:                         "OK",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:        "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:             "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:        "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_MEETING_NOT_FOUND:               "MEETING_NOT_FOUND",
	ErrorCode_MEETING_NOT_INVITED:             "MEETING_NOT_INVITED",
	ErrorCode_MEETING_WRONG_MODE:              "MEETING_WRONG_MODE",
	ErrorCode_MEETING_CLOSED:                  "MEETING_CLOSED",
	ErrorCode_MEETING_NOT_CONFIGURED:          "MEETING_NOT_CONFIGURED",
	ErrorCode_FACE_NOT_VERIFIED:               "FACE_NOT_VERIFIED",
	ErrorCode_FACE_VERIFY_FAILED:              "FACE_VERIFY_FAILED",
	ErrorCode_MINUTES_NOT_FOUND:               "MINUTES_NOT_FOUND",
	ErrorCode_MINUTES_LOCKED:                  "MINUTES_LOCKED",
	ErrorCode_MINUTES_NOT_APPROVED:            "MINUTES_NOT_APPROVED",
	ErrorCode_TASK_NOT_FOUND:                  "TASK_NOT_FOUND",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_AI_ENGINE_FAILED:    "INTEGRATION_AI_ENGINE_FAILED",
	ErrorCode_INTEGRATION_FACE_MATCHER_FAILED: "INTEGRATION_FACE_MATCHER_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:           "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the error code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
