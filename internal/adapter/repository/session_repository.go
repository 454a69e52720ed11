package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
)

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) repositories.SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *entities.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID finds a session by ID
func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	var session entities.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByTokenHash finds a non-revoked session by refresh token hash
func (r *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error) {
	var session entities.Session
	err := r.db.WithContext(ctx).
		Where("refresh_token = ? AND is_revoked = ?", tokenHash, false).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update persists changes to an existing session
func (r *sessionRepository) Update(ctx context.Context, session *entities.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Revoke marks a session as revoked
func (r *sessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Session{}).
		Where("id = ?", id).
		Update("is_revoked", true).
		Error
}

// DeleteExpired removes sessions past their expiry
func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < NOW()").
		Delete(&entities.Session{}).
		Error
}
