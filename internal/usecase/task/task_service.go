package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
	usecaseErrors "github.com/warf-hq/warf-backend/internal/usecase/errors"
	"github.com/warf-hq/warf-backend/internal/usecase/minutes"
)

// taskService handles task business logic
type taskService struct {
	taskRepo    repositories.TaskRepository
	minutesRepo repositories.MinutesRepository
	meetingRepo repositories.MeetingRepository
	userRepo    repositories.UserRepository

	logger *zap.Logger
}

// NewService creates a new task service
func NewService(
	taskRepo repositories.TaskRepository,
	minutesRepo repositories.MinutesRepository,
	meetingRepo repositories.MeetingRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) Service {
	return &taskService{
		taskRepo:    taskRepo,
		minutesRepo: minutesRepo,
		meetingRepo: meetingRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Materialize turns the action items stored in approved minutes into task
// rows. The unique (meeting, minutes, title) index makes the whole operation
// idempotent: items that already exist count as skipped.
func (s *taskService) Materialize(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*MaterializeResult, error) {
	if !actor.IsAdmin() {
		return nil, usecaseErrors.ErrForbidden
	}

	record, err := s.minutesRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMinutesNotFound
		}
		return nil, fmt.Errorf("failed to get minutes: %w", err)
	}
	if !record.IsApproved() {
		return nil, usecaseErrors.ErrMinutesNotApproved
	}

	payload := minutes.ParseDecisionPayload(record.AIDecisions)

	result := &MaterializeResult{Total: len(payload.ActionItems)}
	for _, item := range payload.ActionItems {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			result.Skipped++
			continue
		}

		task := entities.NewTask(meetingID, title)
		task.MinutesID = &record.ID
		task.Priority = entities.NormalizePriority(item.Priority)
		if assignee := s.resolveAssignee(ctx, item.Assignee); assignee != nil {
			task.AssignedToID = &assignee.ID
		}
		if due := parseDueDate(item.DueDate); due != nil {
			task.DueDate = due
		}

		created, err := s.taskRepo.CreateIfAbsent(ctx, task)
		if err != nil {
			return nil, fmt.Errorf("failed to create task %q: %w", title, err)
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	s.logger.Info("tasks materialized",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// ListByMeeting retrieves the tasks of a meeting the actor may see
func (s *taskService) ListByMeeting(ctx context.Context, actor *entities.User, meetingID uuid.UUID) ([]*entities.Task, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	tasks, err := s.taskRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if actor.IsAdmin() || meeting.OrganizerID == actor.ID {
		return tasks, nil
	}

	// Employees only see their own assignments.
	mine := make([]*entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedToID != nil && *t.AssignedToID == actor.ID {
			mine = append(mine, t)
		}
	}
	return mine, nil
}

// ListMine retrieves tasks assigned to the actor, newest first
func (s *taskService) ListMine(ctx context.Context, actor *entities.User) ([]*entities.Task, error) {
	return s.taskRepo.ListAssignedTo(ctx, actor.ID)
}

// GetTask retrieves a task visible to the actor
func (s *taskService) GetTask(ctx context.Context, actor *entities.User, taskID uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if !actor.IsAdmin() && (task.AssignedToID == nil || *task.AssignedToID != actor.ID) {
		if task.Meeting == nil || task.Meeting.OrganizerID != actor.ID {
			return nil, usecaseErrors.ErrForbidden
		}
	}
	return task, nil
}

// SubmitSolution records a submission; only the assignee may submit
func (s *taskService) SubmitSolution(ctx context.Context, actor *entities.User, input SubmitSolutionInput) (*entities.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task.AssignedToID == nil || *task.AssignedToID != actor.ID {
		return nil, usecaseErrors.ErrForbidden
	}
	if strings.TrimSpace(input.Note) == "" && input.FileKey == nil {
		return nil, usecaseErrors.ErrInvalidInput
	}

	submission := &entities.TaskSubmission{
		ID:            uuid.New(),
		TaskID:        task.ID,
		SubmittedByID: actor.ID,
		Note:          input.Note,
		FileKey:       input.FileKey,
		SubmittedAt:   time.Now(),
	}
	if err := s.taskRepo.AddSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// resolveAssignee matches the free-text assignee against users by username,
// then first name, then last name, all case-insensitive. No match means the
// task stays unassigned; it never blocks materialization.
func (s *taskService) resolveAssignee(ctx context.Context, name string) *entities.User {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	lookups := []func(context.Context, string) (*entities.User, error){
		s.userRepo.FindByUsername,
		s.userRepo.FindByFirstName,
		s.userRepo.FindByLastName,
	}
	for _, lookup := range lookups {
		user, err := lookup(ctx, name)
		if err == nil {
			return user
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("assignee lookup failed", zap.String("assignee", name), zap.Error(err))
			return nil
		}
	}
	return nil
}

// parseDueDate accepts a bare date or a full RFC 3339 timestamp
func parseDueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
