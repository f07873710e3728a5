package auth

import (
	"time"

	"github.com/angelmondragon/storefront/internal/users"
)

// Credentials is the sign-in and sign-up payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshRequest carries the refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Session is what sign-in, sign-up, refresh and session lookups return.
type Session struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time      `json:"expires_at"`
	User         *users.UserDTO `json:"user"`
}
