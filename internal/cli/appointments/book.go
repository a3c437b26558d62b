package appointments

import (
	"fmt"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/forms"
	"github.com/julianstephens/chairside/internal/logger"
	"github.com/julianstephens/chairside/internal/schedule"
)

type BookCmd struct {
	Dentist   string `short:"d" help:"Dentist ID."`
	Schedule  string `short:"s" help:"Schedule ID."`
	Date      string `help:"Appointment date (YYYY-MM-DD, 'today' or 'tomorrow'). Must fall on the schedule's weekday."`
	Emergency bool   `help:"Mark as an emergency."`
	Family    bool   `help:"Booking for a family member."`
	Message   string `short:"m" help:"Note for the clinic."`
	Patient   string `help:"Patient ID to book for (admin only)."`
}

func (c *BookCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require(constants.RolePatient, constants.RoleAdmin)
	if err != nil {
		return err
	}

	patientID := user.ID
	if c.Patient != "" {
		if !user.Roles.Has(constants.RoleAdmin) {
			return errors.ErrUnauthorized
		}
		patientID = c.Patient
	}

	schedules, err := ctx.API.ListSchedules(ctx.Ctx())
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load schedules: %w", err))
	}
	binder := schedule.NewBinder(schedule.NewIndex(schedules))
	binder.Now = ctx.Clock

	booking := &forms.Booking{
		Binder:     binder,
		DentistID:  c.Dentist,
		ScheduleID: c.Schedule,
		Date:       forms.ParseDateFlag(c.Date, ctx.Clock()),
		Emergency:  c.Emergency,
		Family:     c.Family,
		Message:    c.Message,
	}

	if c.Dentist == "" || c.Schedule == "" || c.Date == "" {
		dentists, err := ctx.API.ListDentists(ctx.Ctx())
		if err != nil {
			return ctx.Check(fmt.Errorf("failed to load dentists: %w", err))
		}
		booking.Dentists = dentists
		if err := forms.NewBookingForm(booking).Run(); err != nil {
			return err
		}
	}

	binder.SelectDentist(booking.DentistID)
	sel := binder.SelectSchedule(booking.ScheduleID)
	if !sel.Found {
		logger.Warn("Schedule not found for dentist, date is unconstrained", "dentist", booking.DentistID, "schedule", booking.ScheduleID)
		ctx.Printf("⚠ Schedule %s is not listed for dentist %s; the server will decide.\n", booking.ScheduleID, booking.DentistID)
	}
	if _, err := binder.CheckDate(booking.Date); err != nil {
		return err
	}

	appt, err := ctx.API.CreateAppointment(ctx.Ctx(), booking.Request(patientID))
	if err != nil {
		return ctx.Check(fmt.Errorf("booking failed: %w", err))
	}

	ctx.Printf("✓ Booked %s", booking.Date)
	if sel.Found {
		ctx.Printf(" (%s)", sel.Schedule.Label())
	}
	if appt.ID != "" {
		ctx.Printf(" [ID: %s]", appt.ID)
	}
	ctx.Println()
	return nil
}
