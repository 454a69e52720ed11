package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile creates a user and its companion profile in one transaction
func (r *userRepository) CreateWithProfile(ctx context.Context, user *entities.User, profile *entities.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves a user by username (case-insensitive)
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByFirstName retrieves the first user matching the given first name
func (r *userRepository) FindByFirstName(ctx context.Context, firstName string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) = LOWER(?)", firstName).
		Order("username ASC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLastName retrieves the first user matching the given last name
func (r *userRepository) FindByLastName(ctx context.Context, lastName string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("LOWER(last_name) = LOWER(?)", lastName).
		Order("username ASC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user
func (r *userRepository) Update(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SetFaceImageKey stores the reference face image key on the user's profile
func (r *userRepository) SetFaceImageKey(ctx context.Context, userID uuid.UUID, key string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Profile{}).
		Where("user_id = ?", userID).
		Update("face_image_key", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List retrieves users ordered by username
func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	var users []*entities.User
	query := r.db.WithContext(ctx).Order("username ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&users).Error
	return users, err
}
