package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a login session. The session-scoped face verification
// flag is keyed on the session ID and dies with it.
type Session struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User   *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`

	// SHA-256 digest of the refresh token; the raw token is never stored.
	RefreshToken string `json:"-" gorm:"type:varchar(64);index;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IsRevoked bool      `json:"is_revoked" gorm:"default:false;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}

// NewSession creates a session for a user
func NewSession(userID uuid.UUID, refreshTokenHash string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: refreshTokenHash,
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsExpired checks whether the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid checks whether the session can still be used
func (s *Session) IsValid() bool {
	return !s.IsRevoked && !s.IsExpired()
}
