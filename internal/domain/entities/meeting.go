package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingMode represents how a meeting can be attended
type MeetingMode string

const (
	MeetingModeOnline MeetingMode = "online"
	MeetingModeUpload MeetingMode = "upload"
	MeetingModeBoth   MeetingMode = "both"
)

// IsValid checks if the meeting mode is valid
func (m MeetingMode) IsValid() bool {
	switch m {
	case MeetingModeOnline, MeetingModeUpload, MeetingModeBoth:
		return true
	}
	return false
}

// AllowsOnline reports whether the mode permits joining the live room
func (m MeetingMode) AllowsOnline() bool {
	return m == MeetingModeOnline || m == MeetingModeBoth
}

// AllowsUpload reports whether the mode permits transcript upload
func (m MeetingMode) AllowsUpload() bool {
	return m == MeetingModeUpload || m == MeetingModeBoth
}

// fallbackDuration is assumed when a meeting has no configured end time.
const fallbackDuration = 2 * time.Hour

// Meeting represents a scheduled meeting
type Meeting struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title string    `json:"title" gorm:"type:varchar(200);not null"`

	// Legacy scheduling field, kept in sync with StartsAt so old records and
	// pages keep working.
	ScheduledAt time.Time `json:"scheduled_at" gorm:"not null"`

	StartsAt *time.Time `json:"starts_at,omitempty" gorm:"index"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	// Grace periods around the scheduled bounds during which joining is
	// still permitted.
	JoinEarlyMinutes int `json:"join_early_minutes" gorm:"default:10;not null"`
	JoinLateMinutes  int `json:"join_late_minutes" gorm:"default:30;not null"`

	OrganizerID uuid.UUID `json:"organizer_id" gorm:"type:uuid;not null;index"`
	Organizer   *User     `json:"organizer,omitempty" gorm:"foreignKey:OrganizerID"`

	Location string `json:"location" gorm:"type:varchar(255)"`
	Agenda   string `json:"agenda" gorm:"type:text"`

	TranscriptText       string     `json:"transcript_text" gorm:"type:text"`
	TranscriptUploadedAt *time.Time `json:"transcript_uploaded_at,omitempty"`

	Mode MeetingMode `json:"mode" gorm:"type:varchar(10);default:'online';not null"`

	// RoomName is assigned exactly once at creation and never reassigned.
	RoomName   string `json:"room_name" gorm:"type:varchar(255);unique;not null"`
	RoomDomain string `json:"room_domain" gorm:"type:varchar(255)"`

	RequireFaceVerification bool `json:"require_face_verification" gorm:"default:true;not null"`

	Attendees []*Attendee `json:"attendees,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewRoomName generates a unique room token.
func NewRoomName() string {
	return "warF-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

// NewMeeting creates a meeting with a freshly assigned room token. StartsAt
// backfills the legacy ScheduledAt field.
func NewMeeting(title string, organizerID uuid.UUID, startsAt time.Time) *Meeting {
	now := time.Now()
	return &Meeting{
		ID:                      uuid.New(),
		Title:                   title,
		ScheduledAt:             startsAt,
		StartsAt:                &startsAt,
		JoinEarlyMinutes:        10,
		JoinLateMinutes:         30,
		OrganizerID:             organizerID,
		Mode:                    MeetingModeOnline,
		RoomName:                NewRoomName(),
		RequireFaceVerification: true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// OpenInterval computes the inclusive window during which the meeting is
// joinable:
//
//	openFrom = starts_at - join_early_minutes
//	closeAt  = (ends_at, or starts_at + 2h when unset) + join_late_minutes
//
// Returns ErrScheduleNotConfigured when StartsAt is missing.
func (m *Meeting) OpenInterval() (openFrom, closeAt time.Time, err error) {
	if m.StartsAt == nil {
		return time.Time{}, time.Time{}, ErrScheduleNotConfigured
	}

	openFrom = m.StartsAt.Add(-time.Duration(m.JoinEarlyMinutes) * time.Minute)

	end := m.StartsAt.Add(fallbackDuration)
	if m.EndsAt != nil {
		end = *m.EndsAt
	}
	closeAt = end.Add(time.Duration(m.JoinLateMinutes) * time.Minute)

	return openFrom, closeAt, nil
}

// IsOpenNow reports whether now falls inside the open interval. A meeting
// without a configured start is never open.
func (m *Meeting) IsOpenNow(now time.Time) bool {
	openFrom, closeAt, err := m.OpenInterval()
	if err != nil {
		return false
	}
	return !now.Before(openFrom) && !now.After(closeAt)
}

// OpenStatusMessage returns the human-readable window state. It derives from
// the same interval as IsOpenNow so the message can never disagree with the
// enforcement decision.
func (m *Meeting) OpenStatusMessage(now time.Time) string {
	openFrom, closeAt, err := m.OpenInterval()
	if err != nil {
		return "Meeting time is not configured."
	}

	if now.Before(openFrom) {
		return fmt.Sprintf("Meeting is not open yet. Opens at %s.", openFrom.Format("2006-01-02 15:04"))
	}
	if now.After(closeAt) {
		return fmt.Sprintf("Meeting has ended. Closed at %s.", closeAt.Format("2006-01-02 15:04"))
	}
	return "Meeting is open."
}
