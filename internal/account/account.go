package account

import (
	"context"
	"time"
)

// User is the signed-in shopper as the client sees it.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session pairs the bearer credentials with their user.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Authenticator is the auth surface of the remote collaborator.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
	// GetSession returns nil when the token no longer maps to a live session.
	GetSession(ctx context.Context, accessToken string) (*Session, error)
}
