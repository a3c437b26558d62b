package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.state == stateBooking:
		content = m.form.View()
	case m.state == stateChecking:
		content = m.spinner.View() + " Checking access..."
	case m.state == stateUnauthorized:
		content = m.viewUnauthorized()
	case m.loading:
		content = m.spinner.View() + " Loading..."
	default:
		content = m.viewTab()
	}

	var status string
	if m.status != "" {
		status = warningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var out []string
	for i := range tabs {
		t := Tab(i)
		if t == m.tab {
			out = append(out, activeTabStyle.Render(t.Title()))
		} else {
			out = append(out, inactiveTabStyle.Render(t.Title()))
		}
	}
	if m.user.Username != "" {
		out = append(out, inactiveTabStyle.Render("· "+m.user.DisplayName()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) viewTab() string {
	switch m.tab {
	case TabAppointments:
		if len(m.appts.Rows()) == 0 {
			return "No appointments yet. Press b to book one."
		}
		return m.appts.View()
	case TabSchedules:
		if len(m.scheds.Rows()) == 0 {
			return "No schedules found."
		}
		return m.scheds.View()
	case TabLogs:
		if len(m.logs.Rows()) == 0 {
			return "No activity recorded."
		}
		return m.logs.View()
	case TabDashboard:
		return m.viewDashboard()
	}
	return ""
}

func (m Model) viewDashboard() string {
	s := m.stats
	lines := []struct {
		label string
		value int
	}{
		{"Patients", s.TotalPatients},
		{"Dentists", s.TotalDentists},
		{"Appointments", s.TotalAppointments},
		{"  pending", s.Pending},
		{"  confirmed", s.Confirmed},
		{"  cancelled", s.Cancelled},
		{"  completed", s.Completed},
		{"Emergencies", s.Emergency},
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(statLabelStyle.Render(l.label))
		b.WriteString(statValueStyle.Render(fmt.Sprint(l.value)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewUnauthorized() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Unauthorized"),
			"",
			fmt.Sprintf("%s is not available for your account.", m.tab.Title()),
		),
	)
}
