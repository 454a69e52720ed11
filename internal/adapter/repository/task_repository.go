package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &taskRepository{db: db}
}

// CreateIfAbsent inserts the task unless its materialization identity already
// exists. ON CONFLICT DO NOTHING keeps the check-and-insert atomic, so two
// concurrent materializations of the same minutes cannot duplicate a task.
func (r *taskRepository) CreateIfAbsent(ctx context.Context, task *entities.Task) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "minutes_id"}, {Name: "title"}},
			DoNothing: true,
		}).
		Create(task)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByID retrieves a task by ID
func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Preload("AssignedTo").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByMeeting retrieves all tasks of a meeting
func (r *taskRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Task, error) {
	var tasks []*entities.Task
	err := r.db.WithContext(ctx).
		Preload("AssignedTo").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// ListAssignedTo retrieves tasks assigned to a user, newest first
func (r *taskRepository) ListAssignedTo(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error) {
	var tasks []*entities.Task
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Where("assigned_to_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// AddSubmission records a submission and mirrors it onto the task row so the
// task always carries the latest answer without a join
func (r *taskRepository) AddSubmission(ctx context.Context, submission *entities.TaskSubmission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}
		return tx.Model(&entities.Task{}).
			Where("id = ?", submission.TaskID).
			Updates(map[string]interface{}{
				"solution_text":     submission.Note,
				"solution_file_key": submission.FileKey,
				"submitted_at":      submission.SubmittedAt,
				"submitted_by_id":   submission.SubmittedByID,
				"status":            entities.TaskStatusDone,
			}).
			Error
	})
}
