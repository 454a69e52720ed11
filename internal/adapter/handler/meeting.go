package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/warf-hq/warf-backend/internal/adapter/dto/common"
	meetingdto "github.com/warf-hq/warf-backend/internal/adapter/dto/meeting"
	"github.com/warf-hq/warf-backend/internal/adapter/presenter"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/usecase/meeting"
)

// Meeting handles meeting endpoints
type Meeting struct {
	meetingService meeting.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// Create creates a meeting. Admin only.
func (h *Meeting) Create(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.meetingService.CreateMeeting(c.Request().Context(), actor, meeting.CreateMeetingInput{
		Title:            req.Title,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
		JoinEarlyMinutes: req.JoinEarlyMinutes,
		JoinLateMinutes:  req.JoinLateMinutes,
		Location:         req.Location,
		Agenda:           req.Agenda,
		Mode:             entities.MeetingMode(req.Mode),
		RequireFace:      req.RequireFace,
		InvitedUserIDs:   req.InvitedUserIDs,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToMeetingResponse(created))
}

// List retrieves meetings visible to the actor
func (h *Meeting) List(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	meetings, err := h.meetingService.ListMeetings(c.Request().Context(), actor)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, common.ListResponse{
		Data:  presenter.ToMeetingListResponse(meetings),
		Count: len(meetings),
	})
}

// Get retrieves a single meeting
func (h *Meeting) Get(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}

// CanJoin evaluates the join gates for the current user
func (h *Meeting) CanJoin(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	sessionID, ok := CurrentSessionID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	decision, err := h.meetingService.CanJoin(c.Request().Context(), actor, sessionID, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	// Denials answer 200 with allowed=false; the request itself succeeded.
	return c.JSON(http.StatusOK, presenter.ToJoinDecisionResponse(decision))
}

// VerifyFace runs a face verification attempt
func (h *Meeting) VerifyFace(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	sessionID, ok := CurrentSessionID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	var req meetingdto.VerifyFaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	probe, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(probe) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Image must be base64 encoded")
	}

	result, err := h.meetingService.VerifyFace(c.Request().Context(), actor, meeting.VerifyFaceInput{
		MeetingID:  meetingID,
		SessionID:  sessionID,
		ProbeImage: probe,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToVerifyFaceResponse(result))
}

// UploadTranscript stores the transcript text of a meeting
func (h *Meeting) UploadTranscript(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	var req meetingdto.UploadTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.meetingService.UploadTranscript(c.Request().Context(), actor, meetingID, req.Text); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Transcript uploaded", nil)
}

// Attendees retrieves the roster of a meeting
func (h *Meeting) Attendees(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	attendees, err := h.meetingService.GetAttendees(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, common.ListResponse{
		Data:  presenter.ToAttendeeListResponse(attendees),
		Count: len(attendees),
	})
}
