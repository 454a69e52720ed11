package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *entities.Session) error

	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)

	// FindByTokenHash finds a non-revoked session by refresh token hash
	FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)

	// Update persists changes to an existing session
	Update(ctx context.Context, session *entities.Session) error

	// Revoke marks a session as revoked
	Revoke(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes sessions past their expiry
	DeleteExpired(ctx context.Context) error
}
