package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT custom claims. SessionID identifies the login session
// the token belongs to; session-scoped state (the face verification flag) is
// keyed on it.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	SessionID uuid.UUID `json:"session_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	jwt.RegisteredClaims
}
