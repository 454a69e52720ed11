package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the progress state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority represents task priority
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// NormalizePriority maps an arbitrary string onto the priority enum.
// Anything unrecognized (or empty) falls back to medium.
func NormalizePriority(raw string) TaskPriority {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(raw))) {
	case TaskPriorityLow:
		return TaskPriorityLow
	case TaskPriorityMedium:
		return TaskPriorityMedium
	case TaskPriorityHigh:
		return TaskPriorityHigh
	}
	return TaskPriorityMedium
}

// Task is an action item derived from a meeting. The (meeting, minutes,
// title) triple is its materialization identity: creating the same triple
// twice is a no-op, enforced by a unique index.
type Task struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex:idx_tasks_materialization"`
	Meeting   *Meeting  `json:"meeting,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`

	// Tasks survive minutes deletion; the reference is cleared, not cascaded.
	MinutesID *uuid.UUID `json:"minutes_id,omitempty" gorm:"type:uuid;uniqueIndex:idx_tasks_materialization;constraint:OnDelete:SET NULL"`
	Minutes   *Minutes   `json:"minutes,omitempty" gorm:"foreignKey:MinutesID"`

	Title       string `json:"title" gorm:"type:varchar(255);not null;uniqueIndex:idx_tasks_materialization"`
	Description string `json:"description" gorm:"type:text"`

	AssignedToID *uuid.UUID `json:"assigned_to_id,omitempty" gorm:"type:uuid"`
	AssignedTo   *User      `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID"`

	Priority TaskPriority `json:"priority" gorm:"type:varchar(10);default:'medium';not null"`
	Status   TaskStatus   `json:"status" gorm:"type:varchar(15);default:'todo';not null"`

	DueDate *time.Time `json:"due_date,omitempty"`

	// Latest employee submission
	SolutionText    string     `json:"solution_text" gorm:"type:text"`
	SolutionFileKey *string    `json:"solution_file_key,omitempty" gorm:"type:varchar(500)"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	SubmittedByID   *uuid.UUID `json:"submitted_by_id,omitempty" gorm:"type:uuid"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a task for a meeting
func NewTask(meetingID uuid.UUID, title string) *Task {
	return &Task{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Title:     title,
		Priority:  TaskPriorityMedium,
		Status:    TaskStatusTodo,
		CreatedAt: time.Now(),
	}
}

// TaskSubmission keeps the history of employee submissions against a task
type TaskSubmission struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TaskID uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	Task   *Task     `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`

	SubmittedByID uuid.UUID `json:"submitted_by_id" gorm:"type:uuid;not null"`
	SubmittedBy   *User     `json:"submitted_by,omitempty" gorm:"foreignKey:SubmittedByID"`

	Note    string  `json:"note" gorm:"type:text"`
	FileKey *string `json:"file_key,omitempty" gorm:"type:varchar(500)"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for TaskSubmission
func (TaskSubmission) TableName() string {
	return "task_submissions"
}
