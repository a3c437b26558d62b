package api

import (
	"context"

	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/timeslot"
)

func (c *Client) ListDentists(ctx context.Context) ([]models.Dentist, error) {
	var out []models.Dentist
	if err := c.get(ctx, "/dentists", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := c.get(ctx, "/schedules", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DentistSchedules(ctx context.Context, dentistID string) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := c.get(ctx, pathID("/dentists/%s/schedules", dentistID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSchedule normalises the time slot and rejects an unknown day
// before anything is sent.
func (c *Client) CreateSchedule(ctx context.Context, req models.ScheduleRequest) (models.Schedule, error) {
	req, err := prepareSchedule(req)
	if err != nil {
		return models.Schedule{}, err
	}
	var out models.Schedule
	if err := c.post(ctx, "/schedules", req, &out); err != nil {
		return models.Schedule{}, err
	}
	return out, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, id string, req models.ScheduleRequest) (models.Schedule, error) {
	req, err := prepareSchedule(req)
	if err != nil {
		return models.Schedule{}, err
	}
	var out models.Schedule
	if err := c.put(ctx, pathID("/schedules/%s", id), req, &out); err != nil {
		return models.Schedule{}, err
	}
	return out, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.delete(ctx, pathID("/schedules/%s", id))
}

func prepareSchedule(req models.ScheduleRequest) (models.ScheduleRequest, error) {
	wd, ok := models.ParseWeekday(req.Day)
	if !ok {
		return req, errors.NewValidation("day", "%q is not a weekday name", req.Day)
	}
	slot, err := timeslot.Normalize(req.TimeSlot)
	if err != nil {
		return req, err
	}
	req.Day = models.WeekdayName(wd)
	req.TimeSlot = slot
	return req, nil
}
