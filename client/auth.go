package client

import (
	"context"
	"fmt"
	"net/http"
)

// Session is the auth response: a bearer token plus the authenticated user.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// RegisterInput creates a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Referral string `json:"referral_code,omitempty"`
}

// Register creates an account and persists the returned token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var session Session
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   in,
		out:    &session,
	})
	if err != nil {
		return nil, err
	}

	if session.AccessToken != "" {
		if err := c.tokens.SetToken(session.AccessToken); err != nil {
			return nil, fmt.Errorf("persist token: %w", err)
		}
	}
	return &session, nil
}

// Login authenticates with email/password and persists the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/auth/login",
		body: map[string]string{
			"email":    email,
			"password": password,
		},
		out: &session,
	})
	if err != nil {
		return nil, err
	}

	if session.AccessToken != "" {
		if err := c.tokens.SetToken(session.AccessToken); err != nil {
			return nil, fmt.Errorf("persist token: %w", err)
		}
	}
	return &session, nil
}

// Logout invalidates the session server-side and clears the stored token.
// The token is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.do(ctx, requestOptions{
		method:      http.MethodPost,
		path:        "/auth/logout",
		requireAuth: true,
	})

	if err := c.tokens.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return reqErr
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*SpecialistProfile, error) {
	var profile SpecialistProfile
	err := c.do(ctx, requestOptions{
		method:      http.MethodGet,
		path:        "/me",
		requireAuth: true,
		out:         &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile patches the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*SpecialistProfile, error) {
	var profile SpecialistProfile
	err := c.do(ctx, requestOptions{
		method:      http.MethodPatch,
		path:        "/me",
		body:        in,
		requireAuth: true,
		out:         &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
