package api

import (
	"context"
	"fmt"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
)

// LoginResponse is the body of POST /auth/login
type LoginResponse struct {
	Status string      `json:"status"`
	Token  string      `json:"token"`
	User   models.User `json:"user"`
}

type verifyResponse struct {
	Status string       `json:"status"`
	User   *models.User `json:"user"`
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, creds models.Credentials) (LoginResponse, error) {
	if creds.Username == "" || creds.Password == "" {
		return LoginResponse{}, errors.NewValidation("credentials", "username and password are required")
	}
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return LoginResponse{}, err
	}
	if resp.Token == "" {
		return LoginResponse{}, fmt.Errorf("login response carried no token")
	}
	return resp, nil
}

// Register creates a patient account
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		return errors.NewValidation("registration", "username, email and password are required")
	}
	return c.post(ctx, "/auth/register", reg, nil)
}

// Verify checks token against GET /auth/verify. Only a status of "ok" with
// a user counts as valid.
func (c *Client) Verify(ctx context.Context, token string) (models.User, error) {
	client := c
	if token != "" {
		// the explicit token wins over the configured source
		client = c.withToken(token)
	}

	var resp verifyResponse
	if err := client.get(ctx, "/auth/verify", nil, &resp); err != nil {
		return models.User{}, err
	}
	if resp.Status != constants.VerifyStatusOK || resp.User == nil {
		return models.User{}, fmt.Errorf("%w: verify returned status %q", errors.ErrUnauthenticated, resp.Status)
	}
	return *resp.User, nil
}

// ChangePassword updates the signed-in user's password. Mismatched new and
// confirm values fail locally.
func (c *Client) ChangePassword(ctx context.Context, pc models.PasswordChange) error {
	if pc.NewPassword == "" {
		return errors.NewValidation("new password", "cannot be empty")
	}
	if pc.NewPassword != pc.ConfirmPassword {
		return errors.NewValidation("confirm password", "does not match the new password")
	}
	return c.put(ctx, "/users/password", pc, nil)
}

func (c *Client) withToken(token string) *Client {
	cp := *c
	cp.token = func(context.Context) string { return token }
	return &cp
}
