package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and its companion profile in one
	// transaction
	CreateWithProfile(ctx context.Context, user *entities.User, profile *entities.Profile) error

	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByUsername retrieves a user by username (case-insensitive)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	// FindByFirstName retrieves the first user matching the given first name
	// (case-insensitive)
	FindByFirstName(ctx context.Context, firstName string) (*entities.User, error)

	// FindByLastName retrieves the first user matching the given last name
	// (case-insensitive)
	FindByLastName(ctx context.Context, lastName string) (*entities.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *entities.User) error

	// SetFaceImageKey stores the object key of the user's reference face image
	// on their profile
	SetFaceImageKey(ctx context.Context, userID uuid.UUID, key string) error

	// List retrieves users ordered by username
	List(ctx context.Context, limit, offset int) ([]*entities.User, error)
}
