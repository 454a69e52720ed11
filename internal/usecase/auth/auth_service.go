package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
	usecaseErrors "github.com/warf-hq/warf-backend/internal/usecase/errors"
	pkgjwt "github.com/warf-hq/warf-backend/pkg/jwt"
)

// authService handles authentication business logic
type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtManager  *pkgjwt.Manager
	logger      *zap.Logger
}

// NewService creates a new auth service
func NewService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	jwtManager *pkgjwt.Manager,
	logger *zap.Logger,
) Service {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

// Register creates a user and its companion profile in one transaction
func (s *authService) Register(ctx context.Context, actor *entities.User, input RegisterInput) (*entities.User, error) {
	if !actor.IsAdmin() {
		return nil, usecaseErrors.ErrForbidden
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || len(input.Password) < 8 {
		return nil, usecaseErrors.ErrInvalidInput
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, usecaseErrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.NewUser(username, strings.TrimSpace(input.Email))
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.PasswordHash = string(hash)
	if input.Role != "" {
		user.Role = input.Role
	}
	if err := user.Validate(); err != nil {
		return nil, usecaseErrors.ErrInvalidInput
	}

	profile := entities.NewProfile(user.ID)
	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return user, nil
}

// Login verifies credentials, opens a session and issues tokens. The same
// error comes back for an unknown username and a wrong password.
func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, usecaseErrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, usecaseErrors.ErrUserNotActive
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	tokenHash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session := entities.NewSession(user.ID, tokenHash, time.Now().Add(s.jwtManager.GetRefreshExpiry()))
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, session.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	user.UpdateLastLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Warn("failed to record last login", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", session.ID.String()))

	return &LoginOutput{
		User: user.ToPublic(),
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
		},
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair, rotating the
// session's stored token hash
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}

	tokenHash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if !session.IsValid() || session.UserID != userID {
		return nil, usecaseErrors.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, usecaseErrors.ErrUserNotFound
	}

	newRefresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	newHash, err := s.jwtManager.HashToken(newRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}
	session.RefreshToken = newHash
	session.ExpiresAt = time.Now().Add(s.jwtManager.GetRefreshExpiry())

	// Rotation reuses the session row, so the session-scoped verification
	// flags survive a token refresh.
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, session.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}

// Logout revokes the session
func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessionRepo.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// SetFaceImage records the reference face image key on the actor's profile.
// The image itself lives in object storage; existing session flags are kept,
// verification against the new image happens on the next attempt.
func (s *authService) SetFaceImage(ctx context.Context, actor *entities.User, key string) error {
	if strings.TrimSpace(key) == "" {
		return usecaseErrors.ErrInvalidInput
	}
	if err := s.userRepo.SetFaceImageKey(ctx, actor.ID, key); err != nil {
		return fmt.Errorf("failed to store face image key: %w", err)
	}
	s.logger.Info("face image updated", zap.String("user_id", actor.ID.String()))
	return nil
}

// Authenticate resolves an access token into the current user. The session is
// checked so a revoked session invalidates outstanding access tokens.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*entities.User, *pkgjwt.Claims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, nil, usecaseErrors.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, usecaseErrors.ErrSessionNotFound
	}
	if !session.IsValid() {
		return nil, nil, usecaseErrors.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, usecaseErrors.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, nil, usecaseErrors.ErrUserNotActive
	}

	return user, claims, nil
}
