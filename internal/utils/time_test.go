package utils

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	in := time.Date(2026, 3, 8, 15, 42, 7, 99, loc)
	got := StartOfDay(in)
	want := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("StartOfDay() location = %v, want %v", got.Location(), loc)
	}
}

func TestParseDateInLocation(t *testing.T) {
	got, err := ParseDateInLocation("2026-10-14", time.UTC)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if FormatDate(got) != "2026-10-14" || got.Weekday() != time.Wednesday {
		t.Errorf("ParseDateInLocation() = %v (%v)", got, got.Weekday())
	}

	if _, err := ParseDateInLocation("14/10/2026", time.UTC); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestLoadLocation(t *testing.T) {
	for _, tz := range []string{"", "Local"} {
		loc, err := LoadLocation(tz)
		if err != nil || loc != time.Local {
			t.Errorf("LoadLocation(%q) = %v, %v; want time.Local", tz, loc, err)
		}
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("LoadLocation(Not/AZone) should fail")
	}
}
