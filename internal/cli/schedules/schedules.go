package schedules

import (
	"fmt"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/forms"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/schedule"
	"github.com/julianstephens/chairside/internal/timeslot"
	"github.com/julianstephens/chairside/internal/utils"
)

var staff = []string{constants.RoleDentist, constants.RoleAdmin}

type ScheduleCmd struct {
	List   ScheduleListCmd   `cmd:"" help:"List schedules." default:"1"`
	Add    ScheduleAddCmd    `cmd:"" help:"Add a weekly schedule slot."`
	Edit   ScheduleEditCmd   `cmd:"" help:"Edit a schedule slot."`
	Delete ScheduleDeleteCmd `cmd:"" help:"Delete a schedule slot."`
}

type ScheduleListCmd struct {
	Dentist string `short:"d" help:"Only show this dentist's schedules. Defaults to your own for dentists."`
	ShowIDs bool   `help:"Show schedule IDs." name:"show-ids"`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require(staff...)
	if err != nil {
		return err
	}

	dentistID := c.Dentist
	if dentistID == "" && !user.Roles.Has(constants.RoleAdmin) {
		dentistID = user.ID
	}

	var scheds []models.Schedule
	if dentistID != "" {
		scheds, err = ctx.API.DentistSchedules(ctx.Ctx(), dentistID)
	} else {
		scheds, err = ctx.API.ListSchedules(ctx.Ctx())
	}
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load schedules: %w", err))
	}
	if len(scheds) == 0 {
		ctx.Println("No schedules found")
		return nil
	}

	ctx.Println("Schedules:")
	for _, s := range scheds {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", s.ID)
		}
		ctx.Printf("  %-9s %s%s\n", s.Day, s.TimeSlot, idStr)
		if dentistID == "" {
			ctx.Printf("      dentist %s\n", s.DentistID)
		}
	}
	return nil
}

type ScheduleAddCmd struct {
	Day     string `help:"Weekday name, e.g. Monday."`
	Slot    string `help:"Time slot, e.g. '9:00AM - 10:00AM'."`
	Dentist string `help:"Dentist ID (admin only). Defaults to you."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require(staff...)
	if err != nil {
		return err
	}

	req := models.ScheduleRequest{DentistID: user.ID, Day: c.Day, TimeSlot: c.Slot}
	if c.Dentist != "" {
		if !user.Roles.Has(constants.RoleAdmin) {
			return errors.ErrUnauthorized
		}
		req.DentistID = c.Dentist
	}
	if req.Day == "" || req.TimeSlot == "" {
		if err := forms.NewScheduleForm(&req).Run(); err != nil {
			return err
		}
	}

	s, err := ctx.API.CreateSchedule(ctx.Ctx(), req)
	if err != nil {
		return ctx.Check(err)
	}
	ctx.Printf("✓ Added %s", s.Label())
	if s.ID != "" {
		ctx.Printf(" (ID: %s)", s.ID)
	}
	ctx.Println()
	return nil
}

type ScheduleEditCmd struct {
	ID   string `arg:"" help:"Schedule ID."`
	Day  string `help:"New weekday name."`
	Slot string `help:"New time slot."`
}

func (c *ScheduleEditCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require(staff...)
	if err != nil {
		return err
	}
	current, err := ownedSchedule(ctx, user, c.ID)
	if err != nil {
		return err
	}

	req := models.ScheduleRequest{DentistID: current.DentistID, Day: current.Day, TimeSlot: current.TimeSlot}
	if c.Day == "" && c.Slot == "" {
		if err := forms.NewScheduleForm(&req).Run(); err != nil {
			return err
		}
	}
	if c.Day != "" {
		req.Day = c.Day
	}
	if c.Slot != "" {
		req.TimeSlot = c.Slot
	}

	s, err := ctx.API.UpdateSchedule(ctx.Ctx(), c.ID, req)
	if err != nil {
		return ctx.Check(err)
	}
	ctx.Printf("✓ Updated schedule %s: %s\n", c.ID, s.Label())
	return nil
}

type ScheduleDeleteCmd struct {
	ID string `arg:"" help:"Schedule ID."`
}

func (c *ScheduleDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require(staff...)
	if err != nil {
		return err
	}
	if _, err := ownedSchedule(ctx, user, c.ID); err != nil {
		return err
	}
	if err := ctx.API.DeleteSchedule(ctx.Ctx(), c.ID); err != nil {
		return ctx.Check(fmt.Errorf("failed to delete schedule: %w", err))
	}
	ctx.Printf("✓ Deleted schedule %s\n", c.ID)
	return nil
}

// ownedSchedule finds id and checks that user may change it. Dentists only
// manage their own schedules; admins manage any.
func ownedSchedule(ctx *cli.Context, user models.User, id string) (*models.Schedule, error) {
	scheds, err := ctx.API.ListSchedules(ctx.Ctx())
	if err != nil {
		return nil, ctx.Check(fmt.Errorf("failed to load schedules: %w", err))
	}
	for i := range scheds {
		if scheds[i].ID != id {
			continue
		}
		if scheds[i].DentistID != user.ID && !user.Roles.Has(constants.RoleAdmin) {
			return nil, errors.ErrUnauthorized
		}
		return &scheds[i], nil
	}
	return nil, fmt.Errorf("schedule not found: %s", id)
}

// DatesCmd prints upcoming dates for a weekday. It needs no session.
type DatesCmd struct {
	Day   string `arg:"" help:"Weekday name, e.g. Friday."`
	Count int    `short:"n" help:"How many dates to show." default:"4"`
}

func (c *DatesCmd) Run(ctx *cli.Context) error {
	dates := schedule.NextDates(ctx.Clock(), c.Day, c.Count)
	if len(dates) == 0 {
		if _, ok := models.ParseWeekday(c.Day); !ok {
			return errors.NewValidation("day", "%q is not a weekday name", c.Day)
		}
		return nil
	}
	for _, d := range dates {
		ctx.Printf("%s  %s\n", utils.FormatDate(d), d.Format("Mon Jan 2"))
	}
	return nil
}

type SlotCmd struct {
	Check SlotCheckCmd `cmd:"" help:"Validate and normalise a time slot."`
}

type SlotCheckCmd struct {
	Slot string `arg:"" help:"Time slot text, e.g. '9:00am-10:00am'."`
}

func (c *SlotCheckCmd) Run(ctx *cli.Context) error {
	slot, err := timeslot.Normalize(c.Slot)
	if err != nil {
		return err
	}
	start, end := timeslot.Split(slot)
	ctx.Printf("%s\n", slot)
	ctx.Printf("  start %s, end %s\n", start, end)
	return nil
}
