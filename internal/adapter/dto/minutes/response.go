package minutes

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemResponse is one extracted action item
type ActionItemResponse struct {
	Title    string `json:"title"`
	Assignee string `json:"assignee,omitempty"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}

// DecisionPayloadResponse is the structured decision payload of a minutes record
type DecisionPayloadResponse struct {
	Decisions   []string             `json:"decisions,omitempty"`
	ActionItems []ActionItemResponse `json:"action_items,omitempty"`
	Raw         string               `json:"_raw,omitempty"`
}

// MinutesResponse represents a minutes record in API responses
type MinutesResponse struct {
	ID               uuid.UUID                `json:"id"`
	MeetingID        uuid.UUID                `json:"meeting_id"`
	MeetingTitle     string                   `json:"meeting_title,omitempty"`
	DiscussionPoints string                   `json:"discussion_points"`
	Summary          string                   `json:"summary"`
	AISummary        string                   `json:"ai_summary"`
	Decisions        *DecisionPayloadResponse `json:"decisions,omitempty"`
	AIGeneratedAt    *time.Time               `json:"ai_generated_at,omitempty"`
	Status           string                   `json:"status"`
	IsLocked         bool                     `json:"is_locked"`
	ApprovedBy       string                   `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time               `json:"approved_at,omitempty"`
	UpdatedAt        time.Time                `json:"updated_at"`
}
