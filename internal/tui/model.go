package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chairside/internal/forms"
	"github.com/julianstephens/chairside/internal/gate"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/session"
)

// Client is the part of the API the dashboard reads from
type Client interface {
	AppointmentsFor(ctx context.Context, u models.User) ([]models.Appointment, error)
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	DentistSchedules(ctx context.Context, dentistID string) ([]models.Schedule, error)
	ListDentists(ctx context.Context) ([]models.Dentist, error)
	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (models.Appointment, error)
	ActivityLogs(ctx context.Context, limit int) ([]models.ActivityLog, error)
	Dashboard(ctx context.Context) (models.DashboardStats, error)
}

type Deps struct {
	API      Client
	Sessions session.Store
	Gate     *gate.Gate
	Now      func() time.Time
}

type viewState int

const (
	stateChecking viewState = iota
	stateReady
	stateUnauthorized
	stateBooking
)

type Model struct {
	deps    Deps
	ctx     context.Context
	cancel  context.CancelFunc
	tracker *gate.Tracker

	tab     Tab
	state   viewState
	loading bool
	// gen increases on every navigation; results tagged with an older gen
	// are dropped
	gen  int
	user models.User

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	appts  table.Model
	scheds table.Model
	logs   table.Model
	stats  models.DashboardStats

	form    *huh.Form
	booking *forms.Booking

	status   string
	err      error
	quitting bool
	width    int
	height   int
}

// NewModel builds the dashboard. Cancelling parent stops in-flight loads.
func NewModel(parent context.Context, deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	ctx, cancel := context.WithCancel(parent)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = warningStyle

	return Model{
		deps:    deps,
		ctx:     ctx,
		cancel:  cancel,
		tracker: gate.NewTracker(deps.Gate),
		tab:     TabAppointments,
		state:   stateChecking,
		loading: true,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		appts:   newTable(appointmentColumns),
		scheds:  newTable(scheduleColumns),
		logs:    newTable(logColumns),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.gateCmd(m.gen, m.tab.Roles()))
}

// Err is set when the dashboard exited because the session is gone
func (m Model) Err() error {
	return m.err
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	if m.tab == TabAppointments {
		keys = append(keys, m.keys.Book)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Back}
	var actions []key.Binding
	if m.tab == TabAppointments {
		actions = append(actions, m.keys.Book)
	}
	return [][]key.Binding{global, navigation, actions}
}

var (
	appointmentColumns = []table.Column{
		{Title: "Date", Width: 11},
		{Title: "Time", Width: 18},
		{Title: "With", Width: 22},
		{Title: "Status", Width: 10},
		{Title: "Flags", Width: 12},
	}
	scheduleColumns = []table.Column{
		{Title: "Day", Width: 10},
		{Title: "Time", Width: 18},
		{Title: "Dentist", Width: 12},
		{Title: "ID", Width: 12},
	}
	logColumns = []table.Column{
		{Title: "When", Width: 16},
		{Title: "User", Width: 14},
		{Title: "Role", Width: 13},
		{Title: "Action", Width: 18},
		{Title: "Target", Width: 30},
	}
)

func newTable(cols []table.Column) table.Model {
	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
}
