// Package timeslot validates free-text time ranges such as "9:00AM - 10:00AM".
//
// Only the shape is checked. Hours are not range checked and the start may
// be later than the end; the backend stores whatever passes the pattern.
package timeslot

import (
	"regexp"
	"strings"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
)

var (
	slotPattern = regexp.MustCompile(`^\d{1,2}:\d{2}(AM|PM)\s*-\s*\d{1,2}:\d{2}(AM|PM)$`)
	meridiem    = regexp.MustCompile(`(?i)(am|pm)`)
	separator   = regexp.MustCompile(`\s*-\s*`)
)

// Normalize canonicalises a time range and validates it. Any Unicode
// whitespace run, including non-breaking spaces, collapses to one space,
// am/pm is uppercased and the separator becomes " - ".
// Input that still fails the pattern yields a *errors.ValidationError.
func Normalize(s string) (string, error) {
	out := strings.Join(strings.Fields(s), " ")
	out = meridiem.ReplaceAllStringFunc(out, strings.ToUpper)
	out = separator.ReplaceAllString(out, " - ")

	if !slotPattern.MatchString(out) {
		return "", &errors.ValidationError{
			Field:   "time slot",
			Message: "must be in the format H:MMAM - H:MMPM",
			Example: constants.SlotExample,
		}
	}
	return out, nil
}

// Validate reports only the error from Normalize, for use as a form
// validator that keeps re-prompting.
func Validate(s string) error {
	_, err := Normalize(s)
	return err
}

// Split returns the start and end labels of a canonical slot.
func Split(slot string) (start, end string) {
	start, end, _ = strings.Cut(slot, " - ")
	return start, end
}
