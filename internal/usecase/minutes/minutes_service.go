package minutes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
	usecaseErrors "github.com/warf-hq/warf-backend/internal/usecase/errors"
)

// minutesService handles the minutes workflow
type minutesService struct {
	minutesRepo  repositories.MinutesRepository
	aiOutputRepo repositories.AIOutputRepository
	meetingRepo  repositories.MeetingRepository

	engine Engine
	logger *zap.Logger

	now func() time.Time
}

// NewService creates a new minutes service
func NewService(
	minutesRepo repositories.MinutesRepository,
	aiOutputRepo repositories.AIOutputRepository,
	meetingRepo repositories.MeetingRepository,
	engine Engine,
	logger *zap.Logger,
) Service {
	return &minutesService{
		minutesRepo:  minutesRepo,
		aiOutputRepo: aiOutputRepo,
		meetingRepo:  meetingRepo,
		engine:       engine,
		logger:       logger,
		now:          time.Now,
	}
}

// GetOrCreate returns the minutes of a meeting. Editors (admins and the
// organizer) get a draft created on first access; everyone else only sees
// the record once approved.
func (s *minutesService) GetOrCreate(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if s.canEdit(actor, meeting) {
		record, err := s.minutesRepo.GetOrCreateForMeeting(ctx, meetingID, &actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get or create minutes: %w", err)
		}
		return record, nil
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
	return record, nil
}

// List retrieves all minutes for admins, approved minutes for everyone else
func (s *minutesService) List(ctx context.Context, actor *entities.User) ([]*entities.Minutes, error) {
	return s.minutesRepo.List(ctx, !actor.IsAdmin())
}

// SaveDiscussionPoints updates the manual minutes text
func (s *minutesService) SaveDiscussionPoints(ctx context.Context, actor *entities.User, meetingID uuid.UUID, text string) (*entities.Minutes, error) {
	record, err := s.editableMinutes(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}

	if err := s.minutesRepo.SaveDiscussionPoints(ctx, record.ID, text); err != nil {
		return nil, fmt.Errorf("failed to save discussion points: %w", err)
	}
	record.DiscussionPoints = text
	return record, nil
}

// GenerateAI runs the summarization engine over the transcript, falling back
// to the manual discussion points when no transcript was uploaded. The result
// lands in both the minutes record and the structured AI output table.
func (s *minutesService) GenerateAI(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error) {
	record, err := s.editableMinutes(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}

	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	source := meeting.TranscriptText
	if strings.TrimSpace(source) == "" {
		source = record.DiscussionPoints
	}
	if strings.TrimSpace(source) == "" {
		return nil, usecaseErrors.ErrNoTranscript
	}

	result, err := s.engine.GenerateMinutes(ctx, source)
	if err != nil {
		s.logger.Error("minutes generation failed",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("minutes generation failed: %w", err)
	}

	generatedAt := s.now()
	if err := s.minutesRepo.SaveAIResult(ctx, record.ID, result.Summary, result.DecisionsJSON, generatedAt); err != nil {
		return nil, fmt.Errorf("failed to store AI result: %w", err)
	}

	decisions := datatypes.JSON([]byte(`{}`))
	if payload := ParseDecisionPayload(result.DecisionsJSON); !payload.IsEmpty() {
		decisions = datatypes.JSON([]byte(result.DecisionsJSON))
	}
	output := &entities.AIOutput{
		ID:              uuid.New(),
		MeetingID:       meetingID,
		SummaryText:     result.Summary,
		DecisionsJSON:   decisions,
		ModelName:       result.ModelName,
		PipelineVersion: result.PipelineVersion,
		GeneratedAt:     generatedAt,
	}
	if err := s.aiOutputRepo.Upsert(ctx, output); err != nil {
		return nil, fmt.Errorf("failed to store AI output: %w", err)
	}

	s.logger.Info("minutes generated",
		zap.String("meeting_id", meetingID.String()),
		zap.String("model", result.ModelName))

	record.AISummary = result.Summary
	record.Summary = result.Summary
	record.AIDecisions = result.DecisionsJSON
	record.AIGeneratedAt = &generatedAt
	return record, nil
}

// SendToReview moves the minutes to the review state
func (s *minutesService) SendToReview(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error) {
	record, err := s.editableMinutes(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}

	if err := s.minutesRepo.SendToReview(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("failed to send to review: %w", err)
	}
	record.Status = entities.MinutesStatusReview
	return record, nil
}

// Approve moves the minutes to approved and locks them. Repeated approvals
// are harmless: the first caller wins and later ones see Changed=false with
// the original approver and timestamp intact.
func (s *minutesService) Approve(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*ApproveResult, error) {
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

	changed, err := s.minutesRepo.Approve(ctx, record.ID, actor.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to approve minutes: %w", err)
	}

	record, err = s.minutesRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload minutes: %w", err)
	}

	if changed {
		s.logger.Info("minutes approved",
			zap.String("meeting_id", meetingID.String()),
			zap.String("approved_by", actor.ID.String()))
	}

	return &ApproveResult{Minutes: record, Changed: changed}, nil
}

// Unlock clears the edit lock without reverting the approval metadata
func (s *minutesService) Unlock(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error) {
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

	if err := s.minutesRepo.SetLocked(ctx, record.ID, false); err != nil {
		return nil, fmt.Errorf("failed to unlock minutes: %w", err)
	}
	record.IsLocked = false
	return record, nil
}

// editableMinutes resolves the minutes record for a content mutation,
// enforcing edit rights and the lock
func (s *minutesService) editableMinutes(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Minutes, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(actor, meeting) {
		return nil, usecaseErrors.ErrForbidden
	}

	record, err := s.minutesRepo.GetOrCreateForMeeting(ctx, meetingID, &actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create minutes: %w", err)
	}
	if record.IsLocked {
		return nil, usecaseErrors.ErrMinutesLocked
	}
	return record, nil
}

func (s *minutesService) canEdit(actor *entities.User, meeting *entities.Meeting) bool {
	return actor.IsAdmin() || meeting.OrganizerID == actor.ID
}

func (s *minutesService) findMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}
