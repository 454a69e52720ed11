package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/warf-hq/warf-backend/internal/adapter/dto/common"
	taskdto "github.com/warf-hq/warf-backend/internal/adapter/dto/task"
	"github.com/warf-hq/warf-backend/internal/adapter/presenter"
	"github.com/warf-hq/warf-backend/internal/usecase/task"
)

// SolutionFileStore stores a task solution file and returns its object key
type SolutionFileStore interface {
	UploadSolutionFile(ctx context.Context, taskID uuid.UUID, filename string, data []byte, contentType string) (string, error)
}

// Task handles task endpoints
type Task struct {
	taskService   task.Service
	solutionFiles SolutionFileStore
	logger        *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService task.Service, solutionFiles SolutionFileStore, logger *zap.Logger) *Task {
	return &Task{
		taskService:   taskService,
		solutionFiles: solutionFiles,
		logger:        logger,
	}
}

// maxSolutionFileSize bounds solution file uploads.
const maxSolutionFileSize = 25 << 20

// Materialize turns the action items of approved minutes into tasks. Admin
// only; safe to call repeatedly.
func (h *Task) Materialize(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	result, err := h.taskService.Materialize(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMaterializeResponse(result))
}

// ListByMeeting retrieves the tasks of a meeting
func (h *Task) ListByMeeting(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting ID")
	}

	tasks, err := h.taskService.ListByMeeting(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, common.ListResponse{
		Data:  presenter.ToTaskListResponse(tasks),
		Count: len(tasks),
	})
}

// ListMine retrieves tasks assigned to the current user
func (h *Task) ListMine(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	tasks, err := h.taskService.ListMine(c.Request().Context(), actor)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, common.ListResponse{
		Data:  presenter.ToTaskListResponse(tasks),
		Count: len(tasks),
	})
}

// Get retrieves a single task
func (h *Task) Get(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	t, err := h.taskService.GetTask(c.Request().Context(), actor, taskID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToTaskResponse(t))
}

// SubmitSolution records a submission against a task
func (h *Task) SubmitSolution(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req taskdto.SubmitSolutionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fileKey := req.FileKey
	// Multipart submissions may attach the solution file directly.
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > maxSolutionFileSize {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to read file")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxSolutionFileSize+1))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to read file")
		}
		key, err := h.solutionFiles.UploadSolutionFile(c.Request().Context(), taskID, fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			return HandleError(c, h.logger, err)
		}
		fileKey = &key
	}

	t, err := h.taskService.SubmitSolution(c.Request().Context(), actor, task.SubmitSolutionInput{
		TaskID:  taskID,
		Note:    req.Note,
		FileKey: fileKey,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, presenter.ToTaskResponse(t))
}
