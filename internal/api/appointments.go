package api

import (
	"context"
	"time"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
)

// ListAppointments returns every appointment. Admin only.
func (c *Client) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return c.appointments(ctx, "/appointments")
}

func (c *Client) PatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return c.appointments(ctx, pathID("/patients/%s/appointments", patientID))
}

func (c *Client) DentistAppointments(ctx context.Context, dentistID string) ([]models.Appointment, error) {
	return c.appointments(ctx, pathID("/dentists/%s/appointments", dentistID))
}

// AppointmentsFor picks the listing endpoint that matches the user's role
func (c *Client) AppointmentsFor(ctx context.Context, u models.User) ([]models.Appointment, error) {
	switch {
	case u.Roles.Has(constants.RoleAdmin):
		return c.ListAppointments(ctx)
	case u.Roles.Has(constants.RoleDentist):
		return c.DentistAppointments(ctx, u.ID)
	default:
		return c.PatientAppointments(ctx, u.ID)
	}
}

func (c *Client) appointments(ctx context.Context, path string) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (models.Appointment, error) {
	if err := checkAppointment(req); err != nil {
		return models.Appointment{}, err
	}
	var out models.Appointment
	if err := c.post(ctx, "/appointments", req, &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, req models.AppointmentRequest) (models.Appointment, error) {
	if err := checkAppointment(req); err != nil {
		return models.Appointment{}, err
	}
	if req.Status != "" {
		if _, err := models.ParseStatus(string(req.Status)); err != nil {
			return models.Appointment{}, errors.NewValidation("status", "%v", err)
		}
	}
	req.AppointmentID = id
	var out models.Appointment
	if err := c.put(ctx, pathID("/appointments/%s", id), req, &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

// DeleteAppointment removes an appointment. The backend only allows admins.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.delete(ctx, pathID("/appointments/%s", id))
}

func checkAppointment(req models.AppointmentRequest) error {
	if req.ScheduleID == "" {
		return errors.NewValidation("schedule", "is required")
	}
	if _, err := time.Parse(constants.DateFormat, req.Date); err != nil {
		return &errors.ValidationError{Field: "date", Message: "must be YYYY-MM-DD", Example: "2026-10-20"}
	}
	return nil
}
