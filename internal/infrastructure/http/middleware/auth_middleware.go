package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/usecase/auth"
)

const (
	// UserContextKey is the echo context key for the authenticated user
	UserContextKey = "user"
	// SessionContextKey is the echo context key for the session ID
	SessionContextKey = "session_id"
)

// EchoAuth returns an Echo middleware that validates the JWT, checks that the
// session is still live and sets "user" (*entities.User) and "session_id"
// (uuid.UUID) into the Echo context
func EchoAuth(authService auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			user, claims, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserContextKey, user)
			c.Set(SessionContextKey, claims.SessionID)

			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin users. Must run after EchoAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*entities.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
