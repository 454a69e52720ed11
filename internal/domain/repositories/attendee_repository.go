package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// AttendeeRepository defines the interface for attendee data access
type AttendeeRepository interface {
	// FindByMeetingAndUser retrieves an attendee by meeting and user ID
	FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Attendee, error)

	// Exists reports whether the (meeting, user) pair has an attendee record
	Exists(ctx context.Context, meetingID, userID uuid.UUID) (bool, error)

	// GetOrCreate returns the attendee for the pair, creating it with the
	// given role when absent. Creation is atomic against concurrent callers.
	GetOrCreate(ctx context.Context, meetingID, userID uuid.UUID, role entities.AttendeeRole) (*entities.Attendee, error)

	// MarkFaceVerified records a successful verification on the attendee in a
	// single update
	MarkFaceVerified(ctx context.Context, attendeeID uuid.UUID, at time.Time, confidence *float64) error

	// FindByMeetingID retrieves all attendees of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Attendee, error)
}
