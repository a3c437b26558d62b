package appointments

import (
	"fmt"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/schedule"
)

type AppointmentCmd struct {
	List   AppointmentListCmd   `cmd:"" help:"List your appointments." default:"1"`
	Update AppointmentUpdateCmd `cmd:"" help:"Change an appointment's status, date or schedule."`
	Cancel AppointmentCancelCmd `cmd:"" help:"Cancel an appointment."`
	Delete AppointmentDeleteCmd `cmd:"" help:"Delete an appointment (admin only)."`
}

type AppointmentListCmd struct {
	Status  string `help:"Only show appointments with this status."`
	ShowIDs bool   `help:"Show appointment IDs." name:"show-ids"`
}

func (c *AppointmentListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require()
	if err != nil {
		return err
	}

	appts, err := ctx.API.AppointmentsFor(ctx.Ctx(), user)
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load appointments: %w", err))
	}

	var shown int
	for _, a := range appts {
		if c.Status != "" && string(a.Status) != c.Status {
			continue
		}
		if shown == 0 {
			ctx.Println("Appointments:")
		}
		shown++

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", a.ID)
		}
		flags := ""
		if a.IsEmergency {
			flags += " [EMERGENCY]"
		}
		if a.IsFamilyBooking {
			flags += " [family]"
		}
		ctx.Printf("  %s %s%s - %s%s\n", a.Date, a.TimeSlot, idStr, a.Status, flags)

		who := a.DentistName
		if user.IsStaff() {
			who = a.PatientName
		}
		if who != "" {
			ctx.Printf("      %s\n", who)
		}
		if a.Message != "" {
			ctx.Printf("      %q\n", a.Message)
		}
	}
	if shown == 0 {
		ctx.Println("No appointments found")
	}
	return nil
}

type AppointmentUpdateCmd struct {
	ID       string `arg:"" help:"Appointment ID."`
	Status   string `help:"New status (pending|confirmed|approved|cancelled|rejected|completed)."`
	Date     string `help:"New date (YYYY-MM-DD). Must fall on the schedule's weekday."`
	Schedule string `help:"New schedule ID."`
}

func (c *AppointmentUpdateCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require()
	if err != nil {
		return err
	}
	if c.Status == "" && c.Date == "" && c.Schedule == "" {
		return errors.NewValidation("update", "nothing to change, pass --status, --date or --schedule")
	}
	// patients may only cancel, staff manage the rest
	if c.Status != "" && c.Status != string(constants.StatusCancelled) && !user.IsStaff() {
		return errors.ErrUnauthorized
	}

	appt, err := findAppointment(ctx, user, c.ID)
	if err != nil {
		return err
	}
	req := appt.ToRequest()

	if c.Status != "" {
		status, err := models.ParseStatus(c.Status)
		if err != nil {
			return errors.NewValidation("status", "%v", err)
		}
		req.Status = status
	}
	if c.Schedule != "" {
		req.ScheduleID = c.Schedule
	}
	if c.Date != "" || c.Schedule != "" {
		date := req.Date
		if c.Date != "" {
			date = c.Date
		}
		if err := checkAgainstSchedule(ctx, appt.DentistID, req.ScheduleID, date); err != nil {
			return err
		}
		req.Date = date
	}

	if _, err := ctx.API.UpdateAppointment(ctx.Ctx(), c.ID, req); err != nil {
		return ctx.Check(fmt.Errorf("failed to update appointment: %w", err))
	}
	ctx.Printf("✓ Updated appointment %s\n", c.ID)
	return nil
}

type AppointmentCancelCmd struct {
	ID string `arg:"" help:"Appointment ID."`
}

func (c *AppointmentCancelCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require()
	if err != nil {
		return err
	}
	appt, err := findAppointment(ctx, user, c.ID)
	if err != nil {
		return err
	}

	req := appt.ToRequest()
	req.Status = constants.StatusCancelled
	if _, err := ctx.API.UpdateAppointment(ctx.Ctx(), c.ID, req); err != nil {
		return ctx.Check(fmt.Errorf("failed to cancel appointment: %w", err))
	}
	ctx.Printf("✓ Cancelled appointment %s\n", c.ID)
	return nil
}

type AppointmentDeleteCmd struct {
	ID string `arg:"" help:"Appointment ID."`
}

func (c *AppointmentDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleAdmin); err != nil {
		return err
	}
	if err := ctx.API.DeleteAppointment(ctx.Ctx(), c.ID); err != nil {
		return ctx.Check(fmt.Errorf("failed to delete appointment: %w", err))
	}
	ctx.Printf("✓ Deleted appointment %s\n", c.ID)
	return nil
}

func findAppointment(ctx *cli.Context, user models.User, id string) (models.Appointment, error) {
	appts, err := ctx.API.AppointmentsFor(ctx.Ctx(), user)
	if err != nil {
		return models.Appointment{}, ctx.Check(fmt.Errorf("failed to load appointments: %w", err))
	}
	for _, a := range appts {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Appointment{}, fmt.Errorf("appointment not found: %s", id)
}

func checkAgainstSchedule(ctx *cli.Context, dentistID, scheduleID, date string) error {
	schedules, err := ctx.API.ListSchedules(ctx.Ctx())
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load schedules: %w", err))
	}
	binder := schedule.NewBinder(schedule.NewIndex(schedules))
	binder.Now = ctx.Clock
	binder.SelectDentist(dentistID)
	binder.SelectSchedule(scheduleID)
	_, err = binder.CheckDate(date)
	return err
}
