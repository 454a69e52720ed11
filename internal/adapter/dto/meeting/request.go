package meeting

import (
	"time"

	"github.com/google/uuid"
)

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title            string      `json:"title" validate:"required,min=1,max=200"`
	StartsAt         time.Time   `json:"starts_at" validate:"required"`
	EndsAt           *time.Time  `json:"ends_at,omitempty"`
	JoinEarlyMinutes *int        `json:"join_early_minutes,omitempty" validate:"omitempty,min=0,max=1440"`
	JoinLateMinutes  *int        `json:"join_late_minutes,omitempty" validate:"omitempty,min=0,max=1440"`
	Location         string      `json:"location" validate:"max=255"`
	Agenda           string      `json:"agenda"`
	Mode             string      `json:"mode" validate:"omitempty,oneof=online upload both"`
	RequireFace      *bool       `json:"require_face_verification,omitempty"`
	InvitedUserIDs   []uuid.UUID `json:"invited_user_ids,omitempty"`
}

// VerifyFaceRequest carries the probe image of a verification attempt,
// base64 encoded
type VerifyFaceRequest struct {
	Image string `json:"image" validate:"required"`
}

// UploadTranscriptRequest represents a transcript upload
type UploadTranscriptRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}
