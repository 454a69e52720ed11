package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// MinutesRepository defines the interface for minutes data access
type MinutesRepository interface {
	// GetOrCreateForMeeting returns the minutes record of a meeting, creating
	// a draft when absent. Creation is atomic against concurrent callers.
	GetOrCreateForMeeting(ctx context.Context, meetingID uuid.UUID, createdBy *uuid.UUID) (*entities.Minutes, error)

	// FindByMeetingID retrieves the minutes of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Minutes, error)

	// List retrieves minutes, newest first. When approvedOnly is set only
	// approved records are returned.
	List(ctx context.Context, approvedOnly bool) ([]*entities.Minutes, error)

	// SaveDiscussionPoints updates the manual minutes text
	SaveDiscussionPoints(ctx context.Context, minutesID uuid.UUID, text string) error

	// SaveAIResult stores the AI summary and serialized decision payload
	SaveAIResult(ctx context.Context, minutesID uuid.UUID, summary, decisions string, at time.Time) error

	// SendToReview moves the minutes to the review state; a no-op when the
	// record is already approved
	SendToReview(ctx context.Context, minutesID uuid.UUID) error

	// Approve atomically moves the minutes to approved, records the approver
	// and timestamp, and sets the lock. Returns false when the record was
	// already approved, leaving the original approval metadata intact.
	Approve(ctx context.Context, minutesID, approvedBy uuid.UUID, at time.Time) (bool, error)

	// SetLocked sets or clears the edit lock
	SetLocked(ctx context.Context, minutesID uuid.UUID, locked bool) error
}

// AIOutputRepository defines the interface for structured AI output storage
type AIOutputRepository interface {
	// Upsert stores the structured AI result of a meeting, replacing any
	// previous one
	Upsert(ctx context.Context, output *entities.AIOutput) error

	// FindByMeetingID retrieves the AI output of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.AIOutput, error)
}
