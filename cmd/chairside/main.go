package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/chairside/internal/api"
	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/cli/admin"
	"github.com/julianstephens/chairside/internal/cli/appointments"
	"github.com/julianstephens/chairside/internal/cli/auth"
	"github.com/julianstephens/chairside/internal/cli/schedules"
	"github.com/julianstephens/chairside/internal/cli/services"
	"github.com/julianstephens/chairside/internal/cli/system"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/gate"
	"github.com/julianstephens/chairside/internal/keyring"
	"github.com/julianstephens/chairside/internal/logger"
	"github.com/julianstephens/chairside/internal/session"
	"github.com/julianstephens/chairside/internal/storage/sqlite"
	"github.com/julianstephens/chairside/internal/utils"
)

var CLI struct {
	Version        kong.VersionFlag
	APIURL         string        `name:"api-url" help:"Clinic API base URL." env:"CHAIRSIDE_API_URL" default:"${api_url}"`
	Config         string        `help:"Local storage path." type:"path" env:"CHAIRSIDE_CONFIG" default:"${config_path}"`
	SessionBackend string        `name:"session-backend" help:"Where the session is kept (local|keyring)." env:"CHAIRSIDE_SESSION_BACKEND" enum:"local,keyring" default:"local"`
	Timeout        time.Duration `help:"Per-request timeout." env:"CHAIRSIDE_TIMEOUT" default:"15s"`
	Rate           float64       `help:"Maximum API requests per second. 0 disables the limit." env:"CHAIRSIDE_RATE" default:"10"`
	Timezone       string        `help:"IANA timezone used for dates." env:"CHAIRSIDE_TZ" default:"Local"`
	Debug          bool          `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize local storage."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Inspect the OS keyring."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Login    auth.LoginCmd      `cmd:"" help:"Sign in."`
	Logout   auth.LogoutCmd     `cmd:"" help:"Sign out and forget the stored session."`
	Register auth.RegisterCmd   `cmd:"" help:"Create a patient account."`
	Whoami   auth.WhoamiCmd     `cmd:"" help:"Show the signed-in user."`
	Password auth.PasswordCmd   `cmd:"" help:"Change your password."`
	Dates    schedules.DatesCmd `cmd:"" help:"List upcoming dates for a weekday."`
	Slot     schedules.SlotCmd  `cmd:"" help:"Time slot helpers."`

	Book        appointments.BookCmd        `cmd:"" help:"Book an appointment."`
	Appointment appointments.AppointmentCmd `cmd:"" aliases:"appt" help:"Manage appointments."`
	Schedule    schedules.ScheduleCmd       `cmd:"" help:"Manage dentist schedules."`
	Service     services.ServiceCmd         `cmd:"" help:"Manage dental services."`
	Admin       admin.AdminCmd              `cmd:"" help:"Clinic administration."`
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal client for the dental clinic booking service"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"api_url":     constants.DefaultAPIURL,
			"config_path": constants.DefaultConfigPath,
		},
	)

	logCfg := logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
		APIURL:    CLI.APIURL,
		Backend:   CLI.SessionBackend,
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatalf("invalid timezone %q: %v", CLI.Timezone, err)
	}

	store := sqlite.NewStore(CLI.Config)
	defer store.Close()

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// init creates the store, doctor reports on it and the date helpers
	// never touch it
	switch strings.Fields(ctx.Command())[0] {
	case "init", "doctor", "dates", "slot":
	default:
		if err := store.Load(base); err != nil {
			errors.Fatal(err)
		}
	}

	kr := keyring.New(constants.AppName)
	var sessions session.Store
	if CLI.SessionBackend == constants.SessionBackendKeyring {
		sessions = session.NewKeyring(kr)
	} else {
		sessions = session.NewLocal(store)
	}

	client := api.New(CLI.APIURL,
		api.WithTimeout(CLI.Timeout),
		api.WithRateLimit(CLI.Rate),
		api.WithToken(func(ctx context.Context) string {
			s, err := sessions.Get(ctx)
			if err != nil {
				return ""
			}
			return s.Token
		}),
	)

	appCtx := &cli.Context{
		API:      client,
		Sessions: sessions,
		Gate:     gate.New(sessions, client),
		Store:    store,
		Keyring:  kr,
		Backend:  CLI.SessionBackend,
		Location: loc,
		Out:      os.Stdout,
		Base:     base,
	}

	logger.Debug("Starting command", "command", ctx.Command())
	errors.Fatal(ctx.Run(appCtx))
}
