package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/gate"
	"github.com/julianstephens/chairside/internal/models"
)

type gateMsg struct {
	gen   int
	roles []string
	res   gate.Result
}

type loadedMsg struct {
	gen    int
	tab    Tab
	appts  []models.Appointment
	scheds []models.Schedule
	logs   []models.ActivityLog
	stats  models.DashboardStats
	err    error
}

type bookingReadyMsg struct {
	gen      int
	dentists []models.Dentist
	scheds   []models.Schedule
	err      error
}

type bookedMsg struct {
	appt models.Appointment
	err  error
}

func (m Model) gateCmd(gen int, roles []string) tea.Cmd {
	g, ctx := m.deps.Gate, m.ctx
	return func() tea.Msg {
		return gateMsg{gen: gen, roles: roles, res: g.Evaluate(ctx, roles...)}
	}
}

func (m Model) loadCmd(gen int, tab Tab, user models.User) tea.Cmd {
	client, ctx := m.deps.API, m.ctx
	return func() tea.Msg {
		msg := loadedMsg{gen: gen, tab: tab}
		switch tab {
		case TabAppointments:
			msg.appts, msg.err = client.AppointmentsFor(ctx, user)
		case TabSchedules:
			if user.Roles.Has(constants.RoleAdmin) {
				msg.scheds, msg.err = client.ListSchedules(ctx)
			} else {
				msg.scheds, msg.err = client.DentistSchedules(ctx, user.ID)
			}
		case TabLogs:
			msg.logs, msg.err = client.ActivityLogs(ctx, constants.DefaultLogLimit)
		case TabDashboard:
			msg.stats, msg.err = client.Dashboard(ctx)
		}
		return msg
	}
}

func (m Model) bookingCmd(gen int) tea.Cmd {
	client, ctx := m.deps.API, m.ctx
	return func() tea.Msg {
		msg := bookingReadyMsg{gen: gen}
		if msg.dentists, msg.err = client.ListDentists(ctx); msg.err != nil {
			return msg
		}
		msg.scheds, msg.err = client.ListSchedules(ctx)
		return msg
	}
}

func (m Model) createCmd(req models.AppointmentRequest) tea.Cmd {
	client, ctx := m.deps.API, m.ctx
	return func() tea.Msg {
		appt, err := client.CreateAppointment(ctx, req)
		return bookedMsg{appt: appt, err: err}
	}
}
