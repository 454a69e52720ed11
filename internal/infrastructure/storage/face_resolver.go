package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/warf-hq/warf-backend/internal/domain/repositories"
)

// ProfileImageResolver loads a user's reference face image from object
// storage via the key recorded on the profile. A user without a registered
// image resolves to nil, which callers treat as "cannot verify".
type ProfileImageResolver struct {
	users repositories.UserRepository
	store *MinIOClient
}

// NewProfileImageResolver creates a resolver backed by profiles and MinIO
func NewProfileImageResolver(users repositories.UserRepository, store *MinIOClient) *ProfileImageResolver {
	return &ProfileImageResolver{users: users, store: store}
}

// ReferenceImage returns the stored reference image bytes, or nil when the
// user has none
func (r *ProfileImageResolver) ReferenceImage(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil || user.Profile.FaceImageKey == nil || *user.Profile.FaceImageKey == "" {
		return nil, nil
	}
	return r.store.Download(ctx, *user.Profile.FaceImageKey)
}
