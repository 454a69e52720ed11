package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
)

// minutesRepository implements the MinutesRepository interface
type minutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(db *gorm.DB) repositories.MinutesRepository {
	return &minutesRepository{db: db}
}

// GetOrCreateForMeeting returns the minutes record of a meeting, creating a
// draft when absent
func (r *minutesRepository) GetOrCreateForMeeting(ctx context.Context, meetingID uuid.UUID, createdBy *uuid.UUID) (*entities.Minutes, error) {
	minutes := entities.NewMinutes(meetingID, createdBy)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			DoNothing: true,
		}).
		Create(minutes).Error
	if err != nil {
		return nil, err
	}

	return r.FindByMeetingID(ctx, meetingID)
}

// FindByMeetingID retrieves the minutes of a meeting
func (r *minutesRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Minutes, error) {
	var minutes entities.Minutes
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Preload("CreatedBy").
		Preload("ApprovedBy").
		Where("meeting_id = ?", meetingID).
		First(&minutes).Error
	if err != nil {
		return nil, err
	}
	return &minutes, nil
}

// List retrieves minutes, newest first
func (r *minutesRepository) List(ctx context.Context, approvedOnly bool) ([]*entities.Minutes, error) {
	var records []*entities.Minutes
	query := r.db.WithContext(ctx).
		Preload("Meeting").
		Preload("CreatedBy").
		Preload("ApprovedBy").
		Order("updated_at DESC")

	if approvedOnly {
		query = query.Where("status = ?", entities.MinutesStatusApproved)
	}

	err := query.Find(&records).Error
	return records, err
}

// SaveDiscussionPoints updates the manual minutes text
func (r *minutesRepository) SaveDiscussionPoints(ctx context.Context, minutesID uuid.UUID, text string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Minutes{}).
		Where("id = ?", minutesID).
		Updates(map[string]interface{}{
			"discussion_points": text,
			"updated_at":        gorm.Expr("NOW()"),
		}).
		Error
}

// SaveAIResult stores the AI summary and serialized decision payload. The
// legacy summary column is kept in sync with the AI summary.
func (r *minutesRepository) SaveAIResult(ctx context.Context, minutesID uuid.UUID, summary, decisions string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Minutes{}).
		Where("id = ?", minutesID).
		Updates(map[string]interface{}{
			"ai_summary":      summary,
			"summary":         summary,
			"ai_decisions":    decisions,
			"ai_generated_at": at,
			"updated_at":      at,
		}).
		Error
}

// SendToReview moves the minutes to review unless already approved
func (r *minutesRepository) SendToReview(ctx context.Context, minutesID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Minutes{}).
		Where("id = ? AND status <> ?", minutesID, entities.MinutesStatusApproved).
		Update("status", entities.MinutesStatusReview).
		Error
}

// Approve atomically moves the minutes to approved. The status guard in the
// WHERE clause makes concurrent approvals race to a single winner; the loser
// affects zero rows and the original approval metadata survives.
func (r *minutesRepository) Approve(ctx context.Context, minutesID, approvedBy uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Minutes{}).
		Where("id = ? AND status <> ?", minutesID, entities.MinutesStatusApproved).
		Updates(map[string]interface{}{
			"status":         entities.MinutesStatusApproved,
			"approved_by_id": approvedBy,
			"approved_at":    at,
			"is_locked":      true,
			"updated_at":     at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetLocked sets or clears the edit lock
func (r *minutesRepository) SetLocked(ctx context.Context, minutesID uuid.UUID, locked bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.Minutes{}).
		Where("id = ?", minutesID).
		Update("is_locked", locked).
		Error
}

// aiOutputRepository implements the AIOutputRepository interface
type aiOutputRepository struct {
	db *gorm.DB
}

// NewAIOutputRepository creates a new AI output repository
func NewAIOutputRepository(db *gorm.DB) repositories.AIOutputRepository {
	return &aiOutputRepository{db: db}
}

// Upsert stores the structured AI result of a meeting, replacing any previous one
func (r *aiOutputRepository) Upsert(ctx context.Context, output *entities.AIOutput) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"summary_text", "decisions_json", "model_name", "pipeline_version", "generated_at",
			}),
		}).
		Create(output).Error
}

// FindByMeetingID retrieves the AI output of a meeting
func (r *aiOutputRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.AIOutput, error) {
	var output entities.AIOutput
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&output).Error
	if err != nil {
		return nil, err
	}
	return &output, nil
}
