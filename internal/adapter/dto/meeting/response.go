package meeting

import (
	"time"

	"github.com/google/uuid"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	JoinEarlyMinutes int        `json:"join_early_minutes"`
	JoinLateMinutes  int        `json:"join_late_minutes"`
	OrganizerID      uuid.UUID  `json:"organizer_id"`
	OrganizerName    string     `json:"organizer_name,omitempty"`
	Location         string     `json:"location,omitempty"`
	Agenda           string     `json:"agenda,omitempty"`
	Mode             string     `json:"mode"`
	RoomName         string     `json:"room_name,omitempty"`
	RoomDomain       string     `json:"room_domain,omitempty"`
	RequireFace      bool       `json:"require_face_verification"`
	HasTranscript    bool       `json:"has_transcript"`
	IsOpen           bool       `json:"is_open"`
	OpenStatus       string     `json:"open_status"`
	CreatedAt        time.Time  `json:"created_at"`
}

// JoinDecisionResponse represents the verdict on a join request
type JoinDecisionResponse struct {
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitempty"`
	Message     string `json:"message"`
	RoomName    string `json:"room_name,omitempty"`
	RoomDomain  string `json:"room_domain,omitempty"`
	RequireFace bool   `json:"require_face_verification"`
	Verified    bool   `json:"face_verified"`
}

// VerifyFaceResponse represents the outcome of a verification attempt
type VerifyFaceResponse struct {
	Verified   bool     `json:"verified"`
	Confidence *float64 `json:"confidence,omitempty"`
	Message    string   `json:"message"`
}

// AttendeeResponse represents a meeting attendee
type AttendeeResponse struct {
	UserID         uuid.UUID  `json:"user_id"`
	Username       string     `json:"username,omitempty"`
	DisplayName    string     `json:"display_name,omitempty"`
	Role           string     `json:"role"`
	FaceVerified   bool       `json:"face_verified"`
	FaceVerifiedAt *time.Time `json:"face_verified_at,omitempty"`
}
