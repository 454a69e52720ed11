package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateIfAbsent inserts the task unless one with the same
	// (meeting, minutes, title) triple already exists. Returns true when a
	// row was actually created. The check-and-insert is a single atomic
	// statement.
	CreateIfAbsent(ctx context.Context, task *entities.Task) (bool, error)

	// FindByID retrieves a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)

	// ListByMeeting retrieves all tasks of a meeting
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Task, error)

	// ListAssignedTo retrieves tasks assigned to a user, newest first
	ListAssignedTo(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error)

	// AddSubmission records an employee submission and mirrors it onto the
	// task in one transaction
	AddSubmission(ctx context.Context, submission *entities.TaskSubmission) error
}
