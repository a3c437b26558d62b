package models

import (
	"strings"
	"time"

	"github.com/julianstephens/chairside/internal/constants"
)

// Schedule is a recurring weekly availability slot belonging to one dentist
type Schedule struct {
	ID        string `json:"scheduleID"`
	DentistID string `json:"dentistID"`
	Day       string `json:"day"`      // canonical English weekday name
	TimeSlot  string `json:"timeSlot"` // "H:MMAM - H:MMPM"
}

// Weekday resolves the schedule's day name
func (s Schedule) Weekday() (time.Weekday, bool) {
	return ParseWeekday(s.Day)
}

// Label renders "Monday 9:00AM - 10:00AM"
func (s Schedule) Label() string {
	return s.Day + " " + s.TimeSlot
}

// ScheduleRequest is the create/update body for a schedule
type ScheduleRequest struct {
	DentistID string `json:"dentistID,omitempty"`
	Day       string `json:"day"`
	TimeSlot  string `json:"timeSlot"`
}

// ParseWeekday maps one of the seven English weekday names onto
// time.Weekday. Matching ignores case and surrounding space but accepts
// no abbreviations.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	for i, day := range constants.Weekdays {
		if strings.EqualFold(day, name) {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// WeekdayName returns the canonical name for wd
func WeekdayName(wd time.Weekday) string {
	return constants.Weekdays[int(wd)%7]
}
