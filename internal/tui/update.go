package tui

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/forms"
	"github.com/julianstephens/chairside/internal/gate"
	"github.com/julianstephens/chairside/internal/logger"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/schedule"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle Booking State
	if m.state == stateBooking {
		return m.updateBooking(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - 8
		if h < 3 {
			h = 3
		}
		m.appts.SetHeight(h)
		m.scheds.SetHeight(h)
		m.logs.SetHeight(h)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case gateMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.res.State == gate.Checking {
			// abandoned evaluation, nothing was decided
			return m, nil
		}
		m.tracker.Record(msg.roles, msg.res)
		return m, m.applyGate(msg.res)

	case loadedMsg:
		if msg.gen != m.gen || msg.tab != m.tab {
			logger.Debug("Dropping stale load", "tab", msg.tab.Title(), "gen", msg.gen, "current", m.gen)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.handleErr(msg.err)
		}
		m.setData(msg)
		return m, nil

	case bookingReadyMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.handleErr(msg.err)
		}
		return m, m.startBooking(msg.dentists, msg.scheds)

	case bookedMsg:
		if msg.err != nil {
			return m, m.handleErr(msg.err)
		}
		m.status = fmt.Sprintf("✓ Booked %s", msg.appt.Date)
		if m.tab != TabAppointments {
			return m, nil
		}
		m.gen++
		m.loading = true
		return m, m.loadCmd(m.gen, m.tab, m.user)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m, m.switchTab(m.tab.next())
		case key.Matches(msg, m.keys.ShiftTab):
			return m, m.switchTab(m.tab.prev())
		case key.Matches(msg, m.keys.Refresh):
			if m.state != stateReady {
				return m, nil
			}
			m.gen++
			m.loading = true
			m.status = ""
			return m, m.loadCmd(m.gen, m.tab, m.user)
		case key.Matches(msg, m.keys.Book):
			if m.tab != TabAppointments || m.state != stateReady {
				return m, nil
			}
			if !m.user.Roles.HasAny(constants.RolePatient, constants.RoleAdmin) {
				m.status = "Only patients can book appointments"
				return m, nil
			}
			m.loading = true
			return m, m.bookingCmd(m.gen)
		}

		var cmd tea.Cmd
		if t := m.activeTable(); t != nil {
			*t, cmd = t.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m *Model) updateBooking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.endBooking("")
		return *m, nil
	}

	var cmds []tea.Cmd
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		cmds = append(cmds, cmd)
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.booking.CheckDate(m.booking.Date); err != nil {
			m.endBooking(errors.Format(err))
			break
		}
		req := m.booking.Request(m.user.ID)
		m.endBooking("Booking...")
		cmds = append(cmds, m.createCmd(req))
	case huh.StateAborted:
		m.endBooking("")
	}
	return *m, tea.Batch(cmds...)
}

func (m *Model) startBooking(dentists []models.Dentist, scheds []models.Schedule) tea.Cmd {
	binder := schedule.NewBinder(schedule.NewIndex(scheds))
	binder.Now = m.deps.Now
	m.booking = &forms.Booking{Binder: binder, Dentists: dentists}
	m.form = forms.NewBookingForm(m.booking)
	m.state = stateBooking
	return m.form.Init()
}

func (m *Model) endBooking(status string) {
	m.state = stateReady
	m.form = nil
	m.booking = nil
	m.status = status
}

// switchTab moves to t. The gate only re-runs when t needs different roles.
func (m *Model) switchTab(t Tab) tea.Cmd {
	m.tab = t
	m.gen++
	m.status = ""
	roles := t.Roles()
	if m.tracker.Changed(roles) {
		m.state = stateChecking
		m.loading = true
		return m.gateCmd(m.gen, roles)
	}
	return m.applyGate(m.tracker.Last())
}

func (m *Model) applyGate(res gate.Result) tea.Cmd {
	switch res.State {
	case gate.Unauthenticated:
		m.err = errors.ErrUnauthenticated
		return m.quit()
	case gate.Unauthorized:
		m.user = res.User
		m.state = stateUnauthorized
		m.loading = false
		return nil
	case gate.Authorized:
		m.user = res.User
		m.state = stateReady
		m.loading = true
		return m.loadCmd(m.gen, m.tab, m.user)
	}
	return nil
}

// handleErr ends the dashboard on a rejected token and shows anything else
func (m *Model) handleErr(err error) tea.Cmd {
	if stderrors.Is(err, errors.ErrUnauthenticated) {
		if cerr := m.deps.Sessions.Clear(m.ctx); cerr != nil {
			logger.Warn("Failed to clear session", "error", cerr)
		}
		m.err = errors.ErrUnauthenticated
		return m.quit()
	}
	if stderrors.Is(err, errors.ErrUnauthorized) {
		m.state = stateUnauthorized
		return nil
	}
	logger.Warn("TUI request failed", "tab", m.tab.Title(), "error", err)
	m.status = errors.Format(err)
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}

func (m *Model) activeTable() *table.Model {
	switch m.tab {
	case TabAppointments:
		return &m.appts
	case TabSchedules:
		return &m.scheds
	case TabLogs:
		return &m.logs
	}
	return nil
}

func (m *Model) setData(msg loadedMsg) {
	switch msg.tab {
	case TabAppointments:
		rows := make([]table.Row, 0, len(msg.appts))
		for _, a := range msg.appts {
			with := a.DentistName
			if m.user.IsStaff() {
				with = a.PatientName
			}
			flags := ""
			if a.IsEmergency {
				flags = "EMERGENCY"
			} else if a.IsFamilyBooking {
				flags = "family"
			}
			rows = append(rows, table.Row{a.Date, a.TimeSlot, with, string(a.Status), flags})
		}
		m.appts.SetRows(rows)
	case TabSchedules:
		rows := make([]table.Row, 0, len(msg.scheds))
		for _, s := range msg.scheds {
			rows = append(rows, table.Row{s.Day, s.TimeSlot, s.DentistID, s.ID})
		}
		m.scheds.SetRows(rows)
	case TabLogs:
		rows := make([]table.Row, 0, len(msg.logs))
		loc := m.deps.Now().Location()
		for _, l := range msg.logs {
			rows = append(rows, table.Row{l.Timestamp.In(loc).Format("2006-01-02 15:04"), l.Username, l.Role, l.Action, l.TargetData})
		}
		m.logs.SetRows(rows)
	case TabDashboard:
		m.stats = msg.stats
	}
}
