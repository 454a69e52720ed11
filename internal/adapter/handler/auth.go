package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authdto "github.com/warf-hq/warf-backend/internal/adapter/dto/auth"
	"github.com/warf-hq/warf-backend/internal/adapter/presenter"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/usecase/auth"
)

// FaceImageStore stores a user's biometric reference image and returns its
// object key
type FaceImageStore interface {
	UploadFaceImage(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error)
}

// Auth handles authentication endpoints
type Auth struct {
	authService auth.Service
	faceImages  FaceImageStore
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService auth.Service, faceImages FaceImageStore, logger *zap.Logger) *Auth {
	return &Auth{
		authService: authService,
		faceImages:  faceImages,
		logger:      logger,
	}
}

// maxFaceImageSize bounds reference image uploads.
const maxFaceImageSize = 5 << 20

// Register creates a new account. Admin only.
func (h *Auth) Register(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req authdto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), actor, auth.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      entities.UserRole(req.Role),
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToUserResponse(user))
}

// Login verifies credentials and issues a token pair
func (h *Auth) Login(c echo.Context) error {
	var req authdto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	out, err := h.authService.Login(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, authdto.LoginResponse{
		User: authdto.UserResponse{
			ID:        out.User.ID,
			Username:  out.User.Username,
			Email:     out.User.Email,
			FirstName: out.User.FirstName,
			LastName:  out.User.LastName,
			Role:      string(out.User.Role),
			IsActive:  out.User.IsActive,
			CreatedAt: out.User.CreatedAt,
		},
		Tokens: authdto.TokenResponse{
			AccessToken:  out.Tokens.AccessToken,
			RefreshToken: out.Tokens.RefreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    out.Tokens.ExpiresIn,
		},
	})
}

// Refresh exchanges a refresh token for a new pair
func (h *Auth) Refresh(c echo.Context) error {
	var req authdto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, authdto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokens.ExpiresIn,
	})
}

// Logout revokes the current session
func (h *Auth) Logout(c echo.Context) error {
	sessionID, ok := CurrentSessionID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Logged out", nil)
}

// UploadFaceImage stores a new reference face image for the current user
func (h *Auth) UploadFaceImage(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	if fileHeader.Size > maxFaceImageSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFaceImageSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}

	key, err := h.faceImages.UploadFaceImage(c.Request().Context(), actor.ID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	if err := h.authService.SetFaceImage(c.Request().Context(), actor, key); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Face image updated", map[string]string{"face_image_key": key})
}

// Me returns the authenticated user
func (h *Auth) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return c.JSON(http.StatusOK, presenter.ToUserResponse(user))
}
