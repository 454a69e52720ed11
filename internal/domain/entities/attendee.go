package entities

import (
	"time"

	"github.com/google/uuid"
)

// AttendeeRole represents the role of an attendee in a meeting
type AttendeeRole string

const (
	AttendeeRoleHost   AttendeeRole = "host"
	AttendeeRoleMember AttendeeRole = "member"
	AttendeeRoleGuest  AttendeeRole = "guest"
)

// Attendee represents a user's membership in a meeting. One record per
// (meeting, user) pair; created by invitation or by the first successful
// face verification.
type Attendee struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex:idx_attendees_meeting_user"`
	Meeting   *Meeting  `json:"meeting,omitempty" gorm:"foreignKey:MeetingID"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_attendees_meeting_user"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Role AttendeeRole `json:"role" gorm:"type:varchar(10);default:'member';not null"`

	FaceVerified   bool       `json:"face_verified" gorm:"default:false;not null"`
	FaceVerifiedAt *time.Time `json:"face_verified_at,omitempty"`
	Confidence     *float64   `json:"confidence,omitempty"`

	JoinedAt *time.Time `json:"joined_at,omitempty"`
	LeftAt   *time.Time `json:"left_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Attendee
func (Attendee) TableName() string {
	return "attendees"
}

// NewAttendee creates an attendee record for a meeting
func NewAttendee(meetingID, userID uuid.UUID, role AttendeeRole) *Attendee {
	now := time.Now()
	return &Attendee{
		ID:        uuid.New(),
		MeetingID: meetingID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkFaceVerified records a successful biometric verification
func (a *Attendee) MarkFaceVerified(at time.Time, confidence *float64) {
	a.FaceVerified = true
	a.FaceVerifiedAt = &at
	if confidence != nil {
		a.Confidence = confidence
	}
	a.UpdatedAt = at
}

// IsHost checks if the attendee is the meeting host
func (a *Attendee) IsHost() bool {
	return a.Role == AttendeeRoleHost
}
