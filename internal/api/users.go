package api

import (
	"context"
	"fmt"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

func (c *Client) Register(ctx context.Context, form domain.RegisterForm) error {
	return c.post(ctx, "/register", form, nil)
}

// Login exchanges credentials for a token pair and stores it. Everything
// after this call is authenticated until the refresh chain is exhausted.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) error {
	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	if err := c.post(ctx, "/login", creds, &pair); err != nil {
		return err
	}
	if pair.AccessToken == "" {
		return fmt.Errorf("login response carried no access token")
	}

	c.tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Logout tells the server to drop the session, then clears the local tokens
// regardless of the outcome. A server-side failure is logged and swallowed;
// locally the user is signed out either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/logout", nil, nil)
	c.tokens.Clear()
	if err != nil {
		c.logger.Warn("server-side logout failed", "error", err)
	}
	return nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := c.put(ctx, "/api/user", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
