package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MinutesStatus represents the lifecycle state of a minutes record
type MinutesStatus string

const (
	MinutesStatusDraft    MinutesStatus = "draft"
	MinutesStatusReview   MinutesStatus = "review"
	MinutesStatusApproved MinutesStatus = "approved"
)

// Minutes is the one-to-one minutes record of a meeting.
//
// Lifecycle: draft -> review -> approved. Approval is terminal and sets
// IsLocked; while locked every content mutation is rejected except task
// materialization, which only reads the stored decision payload.
type Minutes struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;uniqueIndex;not null"`
	Meeting   *Meeting  `json:"meeting,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`

	// Manual minutes
	DiscussionPoints string `json:"discussion_points" gorm:"type:text"`
	Summary          string `json:"summary" gorm:"type:text"`

	// AI outputs. AIDecisions holds the serialized decision payload; legacy
	// records may contain a Python-literal dict string instead of JSON.
	AISummary     string     `json:"ai_summary" gorm:"type:text"`
	AIDecisions   string     `json:"ai_decisions" gorm:"type:text"`
	AIGeneratedAt *time.Time `json:"ai_generated_at,omitempty"`

	Status MinutesStatus `json:"status" gorm:"type:varchar(10);default:'draft';not null;index"`

	CreatedByID *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:uuid"`
	CreatedBy   *User      `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	// Set once on approval, never cleared afterwards (unlock keeps them).
	ApprovedByID *uuid.UUID `json:"approved_by_id,omitempty" gorm:"type:uuid"`
	ApprovedBy   *User      `json:"approved_by,omitempty" gorm:"foreignKey:ApprovedByID"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`

	IsLocked bool `json:"is_locked" gorm:"default:false;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Minutes
func (Minutes) TableName() string {
	return "minutes"
}

// NewMinutes creates a draft minutes record for a meeting
func NewMinutes(meetingID uuid.UUID, createdBy *uuid.UUID) *Minutes {
	now := time.Now()
	return &Minutes{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Status:      MinutesStatusDraft,
		CreatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsApproved checks if the minutes reached the terminal state
func (m *Minutes) IsApproved() bool {
	return m.Status == MinutesStatusApproved
}

// Approve moves the minutes to the approved state and locks them. Returns
// false without touching any field when already approved, so repeated calls
// keep the original approver and timestamp.
func (m *Minutes) Approve(userID uuid.UUID, at time.Time) bool {
	if m.IsApproved() {
		return false
	}
	m.Status = MinutesStatusApproved
	m.ApprovedByID = &userID
	m.ApprovedAt = &at
	m.IsLocked = true
	m.UpdatedAt = at
	return true
}

// SendToReview moves the minutes to review. No-op when already approved.
func (m *Minutes) SendToReview() bool {
	if m.IsApproved() {
		return false
	}
	m.Status = MinutesStatusReview
	m.UpdatedAt = time.Now()
	return true
}

// Unlock clears the edit lock without reverting the approval metadata.
// Callers enforce that only privileged operators reach this.
func (m *Minutes) Unlock() {
	m.IsLocked = false
	m.UpdatedAt = time.Now()
}

// AIOutput keeps the structured AI result of a meeting alongside the
// human-readable Minutes, one record per meeting.
type AIOutput struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;uniqueIndex;not null"`
	Meeting   *Meeting  `json:"meeting,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`

	SummaryText   string         `json:"summary_text" gorm:"type:text"`
	DecisionsJSON datatypes.JSON `json:"decisions_json" gorm:"type:jsonb;default:'{}'"`

	ModelName       string `json:"model_name" gorm:"type:varchar(100)"`
	PipelineVersion string `json:"pipeline_version" gorm:"type:varchar(30);default:'v1'"`

	GeneratedAt time.Time `json:"generated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for AIOutput
func (AIOutput) TableName() string {
	return "ai_outputs"
}
