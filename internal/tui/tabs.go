package tui

import "github.com/julianstephens/chairside/internal/constants"

// Tab is one top-level screen. Each declares the roles allowed to see it.
type Tab int

const (
	TabAppointments Tab = iota
	TabSchedules
	TabLogs
	TabDashboard
)

var tabs = []struct {
	title string
	roles []string
}{
	TabAppointments: {"Appointments", nil},
	TabSchedules:    {"Schedules", []string{constants.RoleDentist, constants.RoleAdmin}},
	TabLogs:         {"Logs", []string{constants.RoleAdmin}},
	TabDashboard:    {"Dashboard", []string{constants.RoleAdmin}},
}

func (t Tab) Title() string {
	return tabs[t].title
}

// Roles returns the allowed roles; nil means any signed-in user
func (t Tab) Roles() []string {
	return tabs[t].roles
}

func (t Tab) next() Tab {
	return (t + 1) % Tab(len(tabs))
}

func (t Tab) prev() Tab {
	return (t + Tab(len(tabs)) - 1) % Tab(len(tabs))
}
