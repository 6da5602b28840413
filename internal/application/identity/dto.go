package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for admin login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the signed session token
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
}

// UserInfo identifies the signed-in admin
type UserInfo struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

// SessionInfo describes a validated session token
type SessionInfo struct {
	User     UserInfo
	TokenJTI string
	IssuedAt time.Time
	TTL      time.Duration
}

// SeedAdminResult reports what seeding the admin did
type SeedAdminResult struct {
	UserID  uuid.UUID
	Email   string
	Created bool
}
