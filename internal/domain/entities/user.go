package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// User represents an account in the system
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(150);index"`
	LastName     string    `json:"last_name" gorm:"type:varchar(150);index"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:text;not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);default:'employee';not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true;not null"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with default values
func NewUser(username, email string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Role:      RoleEmployee,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin checks if the user may perform privileged operations
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the user's full name, falling back to the username
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrInvalidUsername
	}
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// ProfileStatus represents the employment status on a profile
type ProfileStatus string

const (
	ProfileStatusActive    ProfileStatus = "active"
	ProfileStatusSuspended ProfileStatus = "suspended"
	ProfileStatusLeft      ProfileStatus = "left"
)

// Profile is the administrative companion record of a User. One is created in
// the same transaction as its user; FaceImageKey points at the biometric
// reference image in object storage.
type Profile struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID     `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	FaceImageKey *string       `json:"face_image_key,omitempty" gorm:"type:varchar(500)"`
	Status       ProfileStatus `json:"status" gorm:"type:varchar(20);default:'active';not null"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile creates the companion profile for a user
func NewProfile(userID uuid.UUID) *Profile {
	return &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    ProfileStatusActive,
		CreatedAt: time.Now(),
	}
}

// PublicUser returns a user with sensitive fields removed
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPublic converts User to PublicUser
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
