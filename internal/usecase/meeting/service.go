package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// DenyReason classifies why a join request was refused
type DenyReason string

const (
	DenyReasonNotInvited DenyReason = "not_invited"
	DenyReasonWrongMode  DenyReason = "wrong_mode"
	DenyReasonClosed     DenyReason = "closed"
)

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	Title            string
	StartsAt         time.Time
	EndsAt           *time.Time
	JoinEarlyMinutes *int
	JoinLateMinutes  *int
	Location         string
	Agenda           string
	Mode             entities.MeetingMode
	RequireFace      *bool
	InvitedUserIDs   []uuid.UUID
}

// JoinDecision is the full verdict on a join request. Allowed reflects the
// invitation, mode and time gates only; FaceVerified is informational and is
// enforced client-side before entering the room.
type JoinDecision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"reason,omitempty"`
	Message string     `json:"message"`

	RoomName                string `json:"room_name,omitempty"`
	RoomDomain              string `json:"room_domain,omitempty"`
	RequireFaceVerification bool   `json:"require_face_verification"`
	FaceVerified            bool   `json:"face_verified"`
}

// VerifyFaceInput represents a face verification attempt by the current user
type VerifyFaceInput struct {
	MeetingID  uuid.UUID
	SessionID  uuid.UUID
	ProbeImage []byte
}

// VerifyFaceResult is the outcome of a verification attempt
type VerifyFaceResult struct {
	Verified   bool     `json:"verified"`
	Confidence *float64 `json:"confidence,omitempty"`
	Message    string   `json:"message"`
}

// MatchResult is the raw answer from the face matching backend
type MatchResult struct {
	Matched    bool
	Confidence float64
}

// FaceMatcher compares a reference image against a probe image
type FaceMatcher interface {
	Verify(ctx context.Context, reference, probe []byte) (MatchResult, error)
}

// ReferenceImageResolver fetches the stored reference face image of a user.
// Returns entities.ErrNoReferenceImage semantics via a nil slice.
type ReferenceImageResolver interface {
	ReferenceImage(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// SessionFlagStore holds the session-scoped face verification flags. A flag
// is bound to one (session, meeting) pair and expires with the session.
type SessionFlagStore interface {
	SetFaceVerified(ctx context.Context, sessionID, meetingID uuid.UUID) error
	HasFaceVerified(ctx context.Context, sessionID, meetingID uuid.UUID) (bool, error)
}

// Service defines the interface for the meeting use case
type Service interface {
	// CreateMeeting creates a meeting with its initial roster (admin only)
	CreateMeeting(ctx context.Context, actor *entities.User, input CreateMeetingInput) (*entities.Meeting, error)

	// ListMeetings retrieves meetings visible to the actor
	ListMeetings(ctx context.Context, actor *entities.User) ([]*entities.Meeting, error)

	// GetMeeting retrieves a meeting the actor may see
	GetMeeting(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Meeting, error)

	// CanJoin evaluates the join gates for a user and session
	CanJoin(ctx context.Context, actor *entities.User, sessionID, meetingID uuid.UUID) (*JoinDecision, error)

	// VerifyFace runs a face verification attempt against the meeting
	VerifyFace(ctx context.Context, actor *entities.User, input VerifyFaceInput) (*VerifyFaceResult, error)

	// UploadTranscript stores the transcript text of a meeting
	UploadTranscript(ctx context.Context, actor *entities.User, meetingID uuid.UUID, text string) error

	// GetAttendees retrieves the roster of a meeting
	GetAttendees(ctx context.Context, actor *entities.User, meetingID uuid.UUID) ([]*entities.Attendee, error)
}
