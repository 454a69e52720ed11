package task

import (
	"time"

	"github.com/google/uuid"
)

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	MeetingID    uuid.UUID  `json:"meeting_id"`
	MeetingTitle string     `json:"meeting_title,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	AssignedToID *uuid.UUID `json:"assigned_to_id,omitempty"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	SolutionText string     `json:"solution_text,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// MaterializeResponse summarizes a materialization run
type MaterializeResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}
