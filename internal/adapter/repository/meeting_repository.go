package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// CreateWithAttendees creates a meeting and its initial roster in one transaction
func (r *meetingRepository) CreateWithAttendees(ctx context.Context, meeting *entities.Meeting, attendees []*entities.Attendee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		for _, attendee := range attendees {
			attendee.MeetingID = meeting.ID
			if err := tx.Create(attendee).Error; err != nil {
				return fmt.Errorf("failed to create attendee: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves a meeting by ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ListAll retrieves all meetings, newest first
func (r *meetingRepository) ListAll(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Order("starts_at DESC, scheduled_at DESC").
		Find(&meetings).Error
	return meetings, err
}

// ListForUser retrieves meetings the user organizes or is invited to
func (r *meetingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Distinct("meetings.*").
		Joins("LEFT JOIN attendees ON attendees.meeting_id = meetings.id").
		Where("meetings.organizer_id = ? OR attendees.user_id = ?", userID, userID).
		Order("starts_at DESC, scheduled_at DESC").
		Find(&meetings).Error
	return meetings, err
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// SaveTranscript stores the uploaded transcript text and timestamp
func (r *meetingRepository) SaveTranscript(ctx context.Context, meetingID uuid.UUID, text string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Updates(map[string]interface{}{
			"transcript_text":        text,
			"transcript_uploaded_at": gorm.Expr("NOW()"),
		}).
		Error
}
