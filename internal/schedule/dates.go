package schedule

import (
	"time"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/utils"
)

// DefaultCount is how many upcoming dates a booking form offers
const DefaultCount = constants.DefaultDateCount

// NextDates returns the next n calendar dates, at local midnight in now's
// location, that fall on day. Today counts if it already matches. Dates are
// ascending and exactly one week apart. An unknown day name or n < 1 yields
// no dates.
func NextDates(now time.Time, day string, n int) []time.Time {
	target, ok := models.ParseWeekday(day)
	if !ok || n < 1 {
		return nil
	}

	start := utils.StartOfDay(now)
	offset := (int(target) - int(start.Weekday()) + 7) % 7
	first := start.AddDate(0, 0, offset)

	dates := make([]time.Time, n)
	for i := range dates {
		// AddDate keeps wall-clock midnight across DST changes
		dates[i] = first.AddDate(0, 0, 7*i)
	}
	return dates
}

// Nearest returns the first date on or after today that falls on day.
func Nearest(now time.Time, day string) (time.Time, bool) {
	dates := NextDates(now, day, 1)
	if len(dates) == 0 {
		return time.Time{}, false
	}
	return dates[0], true
}
