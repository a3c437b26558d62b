package schedule

import (
	"time"

	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/utils"
)

// Index groups schedules by dentist id
type Index map[string][]models.Schedule

// NewIndex builds an Index, keeping input order within each dentist
func NewIndex(schedules []models.Schedule) Index {
	idx := make(Index)
	for _, s := range schedules {
		idx[s.DentistID] = append(idx[s.DentistID], s)
	}
	return idx
}

// Selection is the outcome of picking a schedule. When Found is false the
// id was not in the current dentist's list and no date constraint applies.
type Selection struct {
	Found            bool
	Schedule         models.Schedule
	DisabledWeekdays []time.Weekday
	DefaultDate      time.Time
}

// Binder keeps an appointment's date consistent with the weekday of its
// selected schedule.
type Binder struct {
	Index Index
	Now   func() time.Time

	dentistID string
	schedules []models.Schedule
	selection Selection
}

// NewBinder creates a Binder over idx using the wall clock
func NewBinder(idx Index) *Binder {
	return &Binder{Index: idx, Now: time.Now}
}

// Clock returns the binder's notion of now
func (b *Binder) Clock() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// SelectDentist narrows the available schedules to one dentist and clears
// any previous schedule choice.
func (b *Binder) SelectDentist(dentistID string) []models.Schedule {
	b.dentistID = dentistID
	b.schedules = b.Index[dentistID]
	b.selection = Selection{}
	return b.schedules
}

// Schedules returns the current dentist's schedules
func (b *Binder) Schedules() []models.Schedule {
	return b.schedules
}

// SelectSchedule resolves id against the current dentist's schedules and
// keeps the result as the current selection.
func (b *Binder) SelectSchedule(id string) Selection {
	b.selection = b.Resolve(b.dentistID, id)
	return b.selection
}

// Resolve looks up scheduleID among dentistID's schedules without touching
// the binder's state. On a hit every other weekday is disabled and the
// nearest valid date becomes the default. A stale id yields a selection
// with no constraint instead of failing.
func (b *Binder) Resolve(dentistID, scheduleID string) Selection {
	for _, s := range b.Index[dentistID] {
		if s.ID != scheduleID {
			continue
		}
		wd, ok := s.Weekday()
		if !ok {
			break
		}
		sel := Selection{
			Found:            true,
			Schedule:         s,
			DisabledWeekdays: DisabledWeekdays(wd),
		}
		if d, ok := Nearest(b.Clock(), s.Day); ok {
			sel.DefaultDate = d
		}
		return sel
	}
	return Selection{}
}

// Selection returns the current selection
func (b *Binder) Selection() Selection {
	return b.selection
}

// Allows reports whether date may be committed. Without a found selection
// everything is allowed.
func (b *Binder) Allows(date time.Time) bool {
	return b.selection.Allows(date)
}

// Allows reports whether date falls on the selected weekday
func (s Selection) Allows(date time.Time) bool {
	if !s.Found {
		return true
	}
	for _, wd := range s.DisabledWeekdays {
		if date.Weekday() == wd {
			return false
		}
	}
	return true
}

// CandidateDates lists the next n dates for the selected schedule
func (b *Binder) CandidateDates(n int) []time.Time {
	return b.DatesFor(b.selection, n)
}

// DatesFor lists the next n dates for sel, or nil when sel was not found
func (b *Binder) DatesFor(sel Selection, n int) []time.Time {
	if !sel.Found {
		return nil
	}
	return NextDates(b.Clock(), sel.Schedule.Day, n)
}

// CheckDate parses a YYYY-MM-DD date in the clock's location and rejects it
// when its weekday disagrees with the selected schedule.
func (b *Binder) CheckDate(date string) (time.Time, error) {
	return b.CheckDateFor(b.selection, date)
}

// CheckDateFor is CheckDate against an explicit selection
func (b *Binder) CheckDateFor(sel Selection, date string) (time.Time, error) {
	d, err := utils.ParseDateInLocation(date, b.Clock().Location())
	if err != nil {
		return time.Time{}, &errors.ValidationError{Field: "date", Message: "must be YYYY-MM-DD", Example: "2026-10-14"}
	}
	if !sel.Allows(d) {
		return time.Time{}, errors.NewValidation("date",
			"%s is a %s but the selected schedule runs on %s", date, d.Weekday(), sel.Schedule.Day)
	}
	return d, nil
}

// DisabledWeekdays returns every weekday except keep
func DisabledWeekdays(keep time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 0, 6)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd != keep {
			out = append(out, wd)
		}
	}
	return out
}
