package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/warf-hq/warf-backend/errors"
	"github.com/warf-hq/warf-backend/internal/adapter/dto/common"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/warf-hq/warf-backend/internal/usecase/errors"
)

// CurrentUser reads the authenticated user from the Echo context. Handlers
// behind EchoAuth can rely on it being present.
func CurrentUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(middleware.UserContextKey).(*entities.User)
	return user, ok
}

// CurrentSessionID reads the session ID from the Echo context
func CurrentSessionID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(middleware.SessionContextKey).(uuid.UUID)
	return id, ok
}

// HandleError translates a use case error into the standard error response.
// Unknown errors become a 500 and are logged with their cause; expected
// errors pass through with their mapped status.
func HandleError(c echo.Context, logger *zap.Logger, err error) error {
	appErr := toAppError(err)

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.String("method", c.Request().Method),
			zap.Error(err))
	}

	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Error:   appErr.Code.String(),
		Message: appErr.Message,
		Details: appErr.Details,
		Code:    appErr.Code.String(),
	})
}

// toAppError maps use case sentinels onto AppError. An error that already is
// an AppError keeps its mapping.
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument("Invalid input")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, usecaseErrors.ErrTokenInvalid),
		stdErrors.Is(err, usecaseErrors.ErrTokenExpired),
		stdErrors.Is(err, usecaseErrors.ErrSessionNotFound),
		stdErrors.Is(err, usecaseErrors.ErrSessionExpired):
		return errors.ErrInvalidToken()
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		return errors.ErrForbidden("You are not allowed to perform this action")
	case stdErrors.Is(err, usecaseErrors.ErrUserNotFound):
		return errors.ErrUserNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrUserNotActive):
		return errors.ErrForbidden("Account is deactivated")
	case stdErrors.Is(err, usecaseErrors.ErrUsernameTaken):
		return errors.ErrAlreadyExists("Username")
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrNotFound("Meeting")
	case stdErrors.Is(err, usecaseErrors.ErrNotInvited):
		return errors.ErrNotInvited("")
	case stdErrors.Is(err, usecaseErrors.ErrWrongMode):
		return errors.ErrWrongMeetingMode("", "")
	case stdErrors.Is(err, usecaseErrors.ErrMeetingClosed):
		return errors.ErrMeetingClosed("", err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotConfigured):
		return errors.ErrMeetingNotConfigured("")
	case stdErrors.Is(err, usecaseErrors.ErrFaceNotVerified):
		return errors.ErrFaceNotVerified("")
	case stdErrors.Is(err, usecaseErrors.ErrNoReferenceImage):
		return errors.ErrFaceVerifyFailed("No reference face image on file; contact an administrator")
	case stdErrors.Is(err, usecaseErrors.ErrMinutesNotFound):
		return errors.ErrNotFound("Minutes")
	case stdErrors.Is(err, usecaseErrors.ErrMinutesLocked):
		return errors.ErrMinutesLocked()
	case stdErrors.Is(err, usecaseErrors.ErrMinutesNotApproved):
		return errors.ErrMinutesNotApproved()
	case stdErrors.Is(err, usecaseErrors.ErrNoTranscript):
		return errors.ErrInvalidArgument("Meeting has no transcript or discussion points to summarize")
	case stdErrors.Is(err, usecaseErrors.ErrTaskNotFound):
		return errors.ErrNotFound("Task")
	default:
		return errors.ErrInternal(err)
	}
}

// HandleSuccess sends a standard success envelope
func HandleSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, common.SuccessResponse{
		Message: message,
		Data:    data,
	})
}
