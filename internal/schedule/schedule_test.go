package schedule

import (
	"testing"
	"time"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
)

// Wednesday afternoon
var fixedNow = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func TestNextDatesAllWeekdays(t *testing.T) {
	nows := []time.Time{
		fixedNow,
		time.Date(2026, 12, 29, 23, 59, 0, 0, time.UTC), // crosses the year
		time.Date(2028, 2, 27, 8, 0, 0, 0, time.UTC),    // leap February
	}

	for _, now := range nows {
		for wd, day := range constants.Weekdays {
			for _, n := range []int{1, 2, 4, 10} {
				dates := NextDates(now, day, n)
				if len(dates) != n {
					t.Fatalf("NextDates(%v, %s, %d) returned %d dates", now, day, n, len(dates))
				}
				for i, d := range dates {
					if d.Weekday() != time.Weekday(wd) {
						t.Errorf("NextDates(%s)[%d] = %v is a %v", day, i, d, d.Weekday())
					}
					if d.Hour() != 0 || d.Minute() != 0 {
						t.Errorf("NextDates(%s)[%d] = %v is not midnight", day, i, d)
					}
					if i > 0 {
						if !d.After(dates[i-1]) {
							t.Errorf("NextDates(%s) not ascending at %d", day, i)
						}
						if got := d.Sub(dates[i-1]); got != 7*24*time.Hour {
							t.Errorf("NextDates(%s) gap at %d = %v, want 168h", day, i, got)
						}
					}
				}
				if first := dates[0]; first.Before(midnight(now)) || first.Sub(midnight(now)) >= 7*24*time.Hour {
					t.Errorf("NextDates(%s) first = %v is outside the coming week of %v", day, first, now)
				}
			}
		}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func TestNextDatesIncludesToday(t *testing.T) {
	dates := NextDates(fixedNow, "Wednesday", 4)
	want := []string{"2026-10-14", "2026-10-21", "2026-10-28", "2026-11-04"}
	for i, d := range dates {
		if got := d.Format(constants.DateFormat); got != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestNextDatesTuesdayWrapsToNextWeek(t *testing.T) {
	d, ok := Nearest(fixedNow, "Tuesday")
	if !ok {
		t.Fatal("Nearest(Tuesday) not found")
	}
	if got := d.Format(constants.DateFormat); got != "2026-10-20" {
		t.Errorf("Nearest(Tuesday) = %s, want 2026-10-20", got)
	}
}

func TestNextDatesUnknownDay(t *testing.T) {
	for _, day := range []string{"", "Mon", "Funday", "Lundi"} {
		if dates := NextDates(fixedNow, day, 4); len(dates) != 0 {
			t.Errorf("NextDates(%q) = %v, want empty", day, dates)
		}
	}
	if _, ok := Nearest(fixedNow, "Funday"); ok {
		t.Error("Nearest(Funday) reported ok")
	}
	if dates := NextDates(fixedNow, "Monday", 0); len(dates) != 0 {
		t.Errorf("NextDates(n=0) = %v, want empty", dates)
	}
}

func TestNextDatesDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// DST ends 2026-11-01 in New York
	now := time.Date(2026, 10, 26, 9, 0, 0, 0, loc)
	for _, d := range NextDates(now, "Monday", 3) {
		if d.Hour() != 0 {
			t.Errorf("date %v drifted off midnight across DST", d)
		}
	}
}

func testIndex() Index {
	return NewIndex([]models.Schedule{
		{ID: "s1", DentistID: "d1", Day: "Monday", TimeSlot: "9:00AM - 10:00AM"},
		{ID: "s2", DentistID: "d1", Day: "Friday", TimeSlot: "1:00PM - 2:00PM"},
		{ID: "s3", DentistID: "d2", Day: "Wednesday", TimeSlot: "10:00AM - 11:00AM"},
		{ID: "s4", DentistID: "d2", Day: "Someday", TimeSlot: "10:00AM - 11:00AM"},
	})
}

func newTestBinder() *Binder {
	b := NewBinder(testIndex())
	b.Now = func() time.Time { return fixedNow }
	return b
}

func TestBinderSelectDentist(t *testing.T) {
	b := newTestBinder()

	got := b.SelectDentist("d1")
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s2" {
		t.Fatalf("SelectDentist(d1) = %v", got)
	}
	if len(b.SelectDentist("nobody")) != 0 {
		t.Error("SelectDentist(nobody) should have no schedules")
	}
}

func TestBinderSelectSchedule(t *testing.T) {
	for _, day := range constants.Weekdays {
		b := NewBinder(NewIndex([]models.Schedule{{ID: "x", DentistID: "d", Day: day}}))
		b.Now = func() time.Time { return fixedNow }
		b.SelectDentist("d")

		sel := b.SelectSchedule("x")
		if !sel.Found {
			t.Fatalf("SelectSchedule(%s) not found", day)
		}
		if len(sel.DisabledWeekdays) != 6 {
			t.Errorf("%s: disabled weekdays = %v, want 6", day, sel.DisabledWeekdays)
		}
		want, _ := models.ParseWeekday(day)
		for _, wd := range sel.DisabledWeekdays {
			if wd == want {
				t.Errorf("%s: selected weekday is disabled", day)
			}
		}
		if sel.DefaultDate.Weekday() != want {
			t.Errorf("%s: default date %v on %v", day, sel.DefaultDate, sel.DefaultDate.Weekday())
		}
		if !b.Allows(sel.DefaultDate) {
			t.Errorf("%s: default date rejected", day)
		}
		if b.Allows(sel.DefaultDate.AddDate(0, 0, 1)) {
			t.Errorf("%s: next day allowed", day)
		}
	}
}

func TestBinderStaleSchedule(t *testing.T) {
	b := newTestBinder()
	b.SelectDentist("d1")
	b.SelectSchedule("s1")

	// s3 belongs to another dentist
	sel := b.SelectSchedule("s3")
	if sel.Found {
		t.Fatal("SelectSchedule(s3) found a schedule of another dentist")
	}
	if len(sel.DisabledWeekdays) != 0 || !sel.DefaultDate.IsZero() {
		t.Errorf("stale selection should carry no constraint: %+v", sel)
	}
	if !b.Allows(fixedNow.AddDate(0, 0, 3)) {
		t.Error("stale selection should allow any date")
	}
	if len(b.CandidateDates(4)) != 0 {
		t.Error("stale selection should have no candidate dates")
	}
}

func TestBinderUnknownDayIsNotFound(t *testing.T) {
	b := newTestBinder()
	b.SelectDentist("d2")
	if sel := b.SelectSchedule("s4"); sel.Found {
		t.Errorf("schedule with invalid day should not be found: %+v", sel)
	}
}

func TestBinderSwitchingDentistClearsSelection(t *testing.T) {
	b := newTestBinder()
	b.SelectDentist("d1")
	b.SelectSchedule("s1")
	b.SelectDentist("d2")
	if b.Selection().Found {
		t.Error("selection survived dentist change")
	}
}

func TestBinderResolveIsReadOnly(t *testing.T) {
	b := newTestBinder()
	b.SelectDentist("d1")
	b.SelectSchedule("s1")

	sel := b.Resolve("d1", "s2")
	if !sel.Found || sel.Schedule.Day != "Friday" {
		t.Fatalf("Resolve(d1, s2) = %+v", sel)
	}
	if b.Selection().Schedule.ID != "s1" {
		t.Errorf("Resolve replaced the selection with %s", b.Selection().Schedule.ID)
	}
	if sel := b.Resolve("d2", "s1"); sel.Found {
		t.Error("Resolve(d2, s1) found a schedule of another dentist")
	}

	// 2026-10-16 is a Friday
	if _, err := b.CheckDateFor(sel, "2026-10-16"); err != nil {
		t.Errorf("CheckDateFor(unconstrained) error = %v", err)
	}
	if _, err := b.CheckDateFor(b.Resolve("d1", "s2"), "2026-10-19"); err == nil {
		t.Error("CheckDateFor(s2, Monday) accepted a Monday")
	}
}

func TestBinderCandidateDates(t *testing.T) {
	b := newTestBinder()
	b.SelectDentist("d1")
	b.SelectSchedule("s2")

	dates := b.CandidateDates(DefaultCount)
	want := []string{"2026-10-16", "2026-10-23", "2026-10-30", "2026-11-06"}
	if len(dates) != len(want) {
		t.Fatalf("CandidateDates() = %v", dates)
	}
	for i, d := range dates {
		if d.Format(constants.DateFormat) != want[i] {
			t.Errorf("CandidateDates()[%d] = %v, want %s", i, d, want[i])
		}
	}
}

func TestBinderCheckDate(t *testing.T) {
	b := newTestBinder()
	b.SelectDentist("d1")
	b.SelectSchedule("s1")

	if _, err := b.CheckDate("2026-10-19"); err != nil {
		t.Errorf("CheckDate(Monday) error = %v", err)
	}

	tests := []string{"2026-10-20", "19-10-2026", ""}
	for _, date := range tests {
		_, err := b.CheckDate(date)
		if !errors.IsValidation(err) {
			t.Errorf("CheckDate(%q) error = %v, want ValidationError", date, err)
		}
	}
}
