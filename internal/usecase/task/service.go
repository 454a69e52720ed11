package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// MaterializeResult summarizes one materialization run. Running it again over
// the same approved minutes creates nothing new; Created 0 is a normal
// outcome, not an error.
type MaterializeResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// SubmitSolutionInput represents an employee submission against a task
type SubmitSolutionInput struct {
	TaskID  uuid.UUID
	Note    string
	FileKey *string
}

// Service defines the interface for the task use case
type Service interface {
	// Materialize turns the action items of approved minutes into tasks
	Materialize(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*MaterializeResult, error)

	// ListByMeeting retrieves the tasks of a meeting
	ListByMeeting(ctx context.Context, actor *entities.User, meetingID uuid.UUID) ([]*entities.Task, error)

	// ListMine retrieves tasks assigned to the actor
	ListMine(ctx context.Context, actor *entities.User) ([]*entities.Task, error)

	// GetTask retrieves a task the actor may see
	GetTask(ctx context.Context, actor *entities.User, taskID uuid.UUID) (*entities.Task, error)

	// SubmitSolution records a submission against a task
	SubmitSolution(ctx context.Context, actor *entities.User, input SubmitSolutionInput) (*entities.Task, error)
}
