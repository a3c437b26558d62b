package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
)

func (c *Client) ListServices(ctx context.Context, dentistID string) ([]models.DentalService, error) {
	var q url.Values
	if dentistID != "" {
		q = url.Values{"dentistID": []string{dentistID}}
	}
	var out []models.DentalService
	if err := c.get(ctx, "/services", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateService(ctx context.Context, svc models.DentalService) (models.DentalService, error) {
	if svc.Name == "" {
		return models.DentalService{}, errors.NewValidation("name", "is required")
	}
	if svc.Price < 0 {
		return models.DentalService{}, errors.NewValidation("price", "cannot be negative")
	}
	var out models.DentalService
	if err := c.post(ctx, "/services", svc, &out); err != nil {
		return models.DentalService{}, err
	}
	return out, nil
}

func (c *Client) DeleteService(ctx context.Context, id string) error {
	return c.delete(ctx, pathID("/services/%s", id))
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, req models.UserRequest) (models.User, error) {
	if req.Username == "" || req.Password == "" {
		return models.User{}, errors.NewValidation("user", "username and password are required")
	}
	var out models.User
	if err := c.post(ctx, "/admin/users", req, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req models.UserRequest) (models.User, error) {
	var out models.User
	if err := c.put(ctx, pathID("/admin/users/%s", id), req, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, pathID("/admin/users/%s", id))
}

// ActivityLogs returns the newest limit audit entries. limit <= 0 lets the
// server decide.
func (c *Client) ActivityLogs(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	var out []models.ActivityLog
	if err := c.get(ctx, "/admin/logs", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.get(ctx, "/admin/dashboard", nil, &out); err != nil {
		return models.DashboardStats{}, err
	}
	return out, nil
}
