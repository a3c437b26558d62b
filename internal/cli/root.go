package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/chairside/internal/api"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/gate"
	"github.com/julianstephens/chairside/internal/keyring"
	"github.com/julianstephens/chairside/internal/logger"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/session"
	"github.com/julianstephens/chairside/internal/storage"
)

// Client is the backend surface commands depend on
type Client interface {
	gate.Verifier
	Login(ctx context.Context, creds models.Credentials) (api.LoginResponse, error)
	Register(ctx context.Context, reg models.Registration) error
	ChangePassword(ctx context.Context, pc models.PasswordChange) error
	Ping(ctx context.Context) error
	BaseURL() string

	ListDentists(ctx context.Context) ([]models.Dentist, error)
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	DentistSchedules(ctx context.Context, dentistID string) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, req models.ScheduleRequest) (models.Schedule, error)
	UpdateSchedule(ctx context.Context, id string, req models.ScheduleRequest) (models.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error

	ListServices(ctx context.Context, dentistID string) ([]models.DentalService, error)
	CreateService(ctx context.Context, svc models.DentalService) (models.DentalService, error)
	DeleteService(ctx context.Context, id string) error

	AppointmentsFor(ctx context.Context, u models.User) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req models.AppointmentRequest) (models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req models.UserRequest) (models.User, error)
	UpdateUser(ctx context.Context, id string, req models.UserRequest) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	ActivityLogs(ctx context.Context, limit int) ([]models.ActivityLog, error)
	Dashboard(ctx context.Context) (models.DashboardStats, error)
}

var _ Client = (*api.Client)(nil)

type Context struct {
	API      Client
	Sessions session.Store
	Gate     *gate.Gate
	Store    storage.Provider
	Keyring  *keyring.Keyring
	Backend  string
	Location *time.Location
	Now      func() time.Time
	Out      io.Writer
	// Base is cancelled on interrupt
	Base context.Context
}

// Ctx returns the command's cancellation context
func (c *Context) Ctx() context.Context {
	if c.Base == nil {
		return context.Background()
	}
	return c.Base
}

// Clock returns the current time in the configured location
func (c *Context) Clock() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.Location == nil {
		return now()
	}
	return now().In(c.Location)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Require runs the role gate for a command. No roles means any signed-in
// user.
func (c *Context) Require(roles ...string) (models.User, error) {
	res := c.Gate.Evaluate(c.Ctx(), roles...)
	if err := res.Err(); err != nil {
		logger.Debug("Gate denied command", "state", res.State, "roles", roles, "cause", res.Cause)
		return res.User, err
	}
	return res.User, nil
}

// Check drops the stored session when the backend rejects the token mid
// command, then passes err through.
func (c *Context) Check(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, errors.ErrUnauthenticated) {
		if cerr := c.Sessions.Clear(c.Ctx()); cerr != nil {
			logger.Warn("Failed to clear session", "error", cerr)
		}
	}
	return err
}
