// Package forms builds the huh forms shared by the CLI and the TUI. Every
// field validates with the same rules the API client enforces, so a bad
// value re-prompts instead of failing after submit.
package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/schedule"
	"github.com/julianstephens/chairside/internal/timeslot"
	"github.com/julianstephens/chairside/internal/utils"
)

// Booking holds the values collected by the booking form
type Booking struct {
	Binder   *schedule.Binder
	Dentists []models.Dentist

	DentistID  string
	ScheduleID string
	Date       string
	Emergency  bool
	Family     bool
	Message    string
}

// DentistOptions lists dentists by display name
func (b *Booking) DentistOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(b.Dentists))
	for _, d := range b.Dentists {
		opts = append(opts, huh.NewOption(d.DisplayName(), d.ID))
	}
	return opts
}

// ScheduleOptions lists the chosen dentist's schedules
func (b *Booking) ScheduleOptions() []huh.Option[string] {
	scheds := b.Binder.Index[b.DentistID]
	opts := make([]huh.Option[string], 0, len(scheds))
	for _, s := range scheds {
		opts = append(opts, huh.NewOption(s.Label(), s.ID))
	}
	return opts
}

// DateOptions offers the next occurrences of the chosen schedule's weekday.
// A stale schedule carries no constraint, so the next week of days is
// offered instead. huh runs option loaders off the update loop, so this
// and CheckDate only read the binder.
func (b *Booking) DateOptions() []huh.Option[string] {
	dates := b.Binder.DatesFor(b.selection(), schedule.DefaultCount)
	if len(dates) == 0 {
		start := utils.StartOfDay(b.Binder.Clock())
		for i := 0; i < 7; i++ {
			dates = append(dates, start.AddDate(0, 0, i))
		}
	}

	opts := make([]huh.Option[string], 0, len(dates))
	for _, d := range dates {
		opts = append(opts, huh.NewOption(d.Format("Mon Jan 2, 2006"), d.Format(constants.DateFormat)))
	}
	return opts
}

// CheckDate validates the chosen date against the schedule currently picked
// in the form
func (b *Booking) CheckDate(s string) error {
	_, err := b.Binder.CheckDateFor(b.selection(), s)
	return err
}

func (b *Booking) selection() schedule.Selection {
	return b.Binder.Resolve(b.DentistID, b.ScheduleID)
}

// Request turns the collected values into a create body
func (b *Booking) Request(patientID string) models.AppointmentRequest {
	return models.AppointmentRequest{
		PatientID:       patientID,
		DentistID:       b.DentistID,
		ScheduleID:      b.ScheduleID,
		Date:            b.Date,
		IsEmergency:     b.Emergency,
		IsFamilyBooking: b.Family,
		Message:         strings.TrimSpace(b.Message),
		Status:          constants.StatusPending,
	}
}

// NewBookingForm walks dentist, schedule, date, then the optional details
func NewBookingForm(b *Booking) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dentist").
				Options(b.DentistOptions()...).
				Value(&b.DentistID),
			huh.NewSelect[string]().
				Title("Schedule").
				OptionsFunc(b.ScheduleOptions, &b.DentistID).
				Value(&b.ScheduleID).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pick a schedule")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Date").
				OptionsFunc(b.DateOptions, &b.ScheduleID).
				Value(&b.Date).
				Validate(b.CheckDate),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Emergency?").
				Value(&b.Emergency),
			huh.NewConfirm().
				Title("Booking for a family member?").
				Value(&b.Family),
			huh.NewText().
				Title("Message").
				Description("Optional note for the clinic").
				Value(&b.Message),
		),
	).WithTheme(huh.ThemeDracula())
}

// Login holds credentials typed into the login form
type Login struct {
	Username string
	Password string
}

func NewLoginForm(l *Login) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&l.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.Password).
				Validate(required("password")),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewPasswordForm collects a password change. Confirm must match new.
func NewPasswordForm(pc *models.PasswordChange) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&pc.CurrentPassword).
				Validate(required("current password")),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&pc.NewPassword).
				Validate(required("new password")),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&pc.ConfirmPassword).
				Validate(func(s string) error { return ConfirmMatches(pc.NewPassword, s) }),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewScheduleForm collects a weekday and time slot
func NewScheduleForm(req *models.ScheduleRequest) *huh.Form {
	days := make([]huh.Option[string], 0, len(constants.Weekdays))
	for _, d := range constants.Weekdays {
		days = append(days, huh.NewOption(d, d))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Day").
				Options(days...).
				Value(&req.Day),
			huh.NewInput().
				Title("Time slot").
				Placeholder(constants.SlotExample).
				Value(&req.TimeSlot).
				Validate(timeslot.Validate),
		),
	).WithTheme(huh.ThemeDracula())
}

// ConfirmMatches rejects a confirmation that differs from the new password
func ConfirmMatches(newPassword, confirm string) error {
	if newPassword != confirm {
		return errors.NewValidation("confirm password", "does not match the new password")
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.NewValidation(field, "cannot be empty")
		}
		return nil
	}
}

// ParseDateFlag normalises a --date flag value. "today" and "tomorrow" are
// accepted.
func ParseDateFlag(s string, now time.Time) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return now.Format(constants.DateFormat)
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(constants.DateFormat)
	}
	return strings.TrimSpace(s)
}
