package remote

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/internal/account"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (account.Session, error) {
	var out account.Session
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/signin", body: credentials{email, password}}, &out)
	return out, err
}

func (c *Client) SignUp(ctx context.Context, email, password string) (account.Session, error) {
	var out account.Session
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/signup", body: credentials{email, password}}, &out)
	return out, err
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/signout", token: accessToken}, nil)
}

// GetSession returns nil when the server no longer knows the token.
func (c *Client) GetSession(ctx context.Context, accessToken string) (*account.Session, error) {
	var out *account.Session
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/session", token: accessToken}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
