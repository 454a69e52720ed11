package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// CreateWithAttendees creates a meeting together with its initial roster
	// (organizer as host plus invited members) in one transaction
	CreateWithAttendees(ctx context.Context, meeting *entities.Meeting, attendees []*entities.Attendee) error

	// FindByID retrieves a meeting by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ListAll retrieves all meetings, newest first
	ListAll(ctx context.Context) ([]*entities.Meeting, error)

	// ListForUser retrieves meetings the user organizes or is invited to
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// SaveTranscript stores the uploaded transcript text and timestamp
	SaveTranscript(ctx context.Context, meetingID uuid.UUID, text string) error
}
