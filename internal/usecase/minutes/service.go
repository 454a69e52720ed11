package minutes

import (
	"context"

	"github.com/google/uuid"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// EngineResult is what the summarization backend produced for one meeting
type EngineResult struct {
	Summary         string
	DecisionsJSON   string
	ModelName       string
	PipelineVersion string
}

// Engine turns a transcript into a summary and a structured decision payload
type Engine interface {
	GenerateMinutes(ctx context.Context, transcript string) (*EngineResult, error)
}

// ApproveResult reports the outcome of an approval request
type ApproveResult struct {
	Minutes *entities.Minutes
	// Changed is false when the record was already approved; the original
	// approval metadata is untouched in that case.
	Changed bool
}

// Service defines the interface for the minutes workflow
type Service interface {
	// GetOrCreate returns the minutes of a meeting, creating a draft when the
	// actor may edit. Employees only see approved minutes.
	GetOrCreate(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error)

	// List retrieves minutes visible to the actor
	List(ctx context.Context, actor *entities.User) ([]*entities.Minutes, error)

	// SaveDiscussionPoints updates the manual minutes text
	SaveDiscussionPoints(ctx context.Context, actor *entities.User, meetingID uuid.UUID, text string) (*entities.Minutes, error)

	// GenerateAI runs the summarization engine over the meeting transcript and
	// stores the result
	GenerateAI(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error)

	// SendToReview moves draft minutes into the review state
	SendToReview(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error)

	// Approve moves the minutes to the approved state and locks them
	Approve(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*ApproveResult, error)

	// Unlock clears the edit lock on approved minutes (admin only)
	Unlock(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error)
}
