package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	pkgjwt "github.com/warf-hq/warf-backend/pkg/jwt"
)

// RegisterInput represents input for creating an account
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      entities.UserRole
}

// LoginInput represents login credentials
type LoginInput struct {
	Username string
	Password string
}

// TokenPair carries a freshly issued access and refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginOutput is the result of a successful login
type LoginOutput struct {
	User   *entities.PublicUser `json:"user"`
	Tokens TokenPair            `json:"tokens"`
}

// Service defines the interface for the auth use case
type Service interface {
	// Register creates a user together with its profile (admin only)
	Register(ctx context.Context, actor *entities.User, input RegisterInput) (*entities.User, error)

	// Login verifies credentials and opens a session
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Logout revokes the session
	Logout(ctx context.Context, sessionID uuid.UUID) error

	// SetFaceImage records the stored reference face image key on the actor's
	// profile
	SetFaceImage(ctx context.Context, actor *entities.User, key string) error

	// Authenticate resolves an access token into the current user and session
	Authenticate(ctx context.Context, accessToken string) (*entities.User, *pkgjwt.Claims, error)
}
