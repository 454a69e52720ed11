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

// attendeeRepository implements the AttendeeRepository interface
type attendeeRepository struct {
	db *gorm.DB
}

// NewAttendeeRepository creates a new attendee repository
func NewAttendeeRepository(db *gorm.DB) repositories.AttendeeRepository {
	return &attendeeRepository{db: db}
}

// FindByMeetingAndUser retrieves an attendee by meeting and user ID
func (r *attendeeRepository) FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Attendee, error) {
	var attendee entities.Attendee
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		First(&attendee).Error
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}

// Exists reports whether the (meeting, user) pair has an attendee record
func (r *attendeeRepository) Exists(ctx context.Context, meetingID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Attendee{}).
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetOrCreate returns the attendee for the pair, creating it when absent.
// ON CONFLICT DO NOTHING plus a re-read makes concurrent creations converge
// on a single row instead of racing.
func (r *attendeeRepository) GetOrCreate(ctx context.Context, meetingID, userID uuid.UUID, role entities.AttendeeRole) (*entities.Attendee, error) {
	attendee := entities.NewAttendee(meetingID, userID, role)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(attendee).Error
	if err != nil {
		return nil, err
	}

	return r.FindByMeetingAndUser(ctx, meetingID, userID)
}

// MarkFaceVerified records a successful verification in a single update
func (r *attendeeRepository) MarkFaceVerified(ctx context.Context, attendeeID uuid.UUID, at time.Time, confidence *float64) error {
	updates := map[string]interface{}{
		"face_verified":    true,
		"face_verified_at": at,
		"updated_at":       at,
	}
	if confidence != nil {
		updates["confidence"] = *confidence
	}

	return r.db.WithContext(ctx).
		Model(&entities.Attendee{}).
		Where("id = ?", attendeeID).
		Updates(updates).
		Error
}

// FindByMeetingID retrieves all attendees of a meeting
func (r *attendeeRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Attendee, error) {
	var attendees []*entities.Attendee
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&attendees).Error
	return attendees, err
}
