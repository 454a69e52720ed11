package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/warf-hq/warf-backend/internal/adapter/dto/common"
	minutesdto "github.com/warf-hq/warf-backend/internal/adapter/dto/minutes"
	"github.com/warf-hq/warf-backend/internal/adapter/presenter"
	"github.com/warf-hq/warf-backend/internal/usecase/minutes"
)

// Minutes handles minutes workflow endpoints
type Minutes struct {
	minutesService minutes.Service
	logger         *zap.Logger
}

// NewMinutesHandler creates a new minutes handler
func NewMinutesHandler(minutesService minutes.Service, logger *zap.Logger) *Minutes {
	return &Minutes{
		minutesService: minutesService,
		logger:         logger,
	}
}

// Get returns the minutes of a meeting, creating a draft for editors
func (h *Minutes) Get(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	record, err := h.minutesService.GetOrCreate(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMinutesResponse(record))
}

// List retrieves minutes visible to the actor
func (h *Minutes) List(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	records, err := h.minutesService.List(c.Request().Context(), actor)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, common.ListResponse{
		Data:  presenter.ToMinutesListResponse(records),
		Count: len(records),
	})
}

// SaveDiscussionPoints updates the manual minutes text
func (h *Minutes) SaveDiscussionPoints(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	var req minutesdto.SaveDiscussionPointsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.minutesService.SaveDiscussionPoints(c.Request().Context(), actor, meetingID, req.DiscussionPoints)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMinutesResponse(record))
}

// GenerateAI runs the summarization engine over the transcript
func (h *Minutes) GenerateAI(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	record, err := h.minutesService.GenerateAI(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMinutesResponse(record))
}

// SendToReview moves the minutes into the review state
func (h *Minutes) SendToReview(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	record, err := h.minutesService.SendToReview(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMinutesResponse(record))
}

// Approve moves the minutes to approved and locks them
func (h *Minutes) Approve(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	result, err := h.minutesService.Approve(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	message := "Minutes approved"
	if !result.Changed {
		message = "Minutes were already approved"
	}
	return HandleSuccess(c, http.StatusOK, message, presenter.ToMinutesResponse(result.Minutes))
}

// Unlock clears the edit lock. Admin only.
func (h *Minutes) Unlock(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	record, err := h.minutesService.Unlock(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMinutesResponse(record))
}
