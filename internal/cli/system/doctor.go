package system

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/gate"
	"github.com/julianstephens/chairside/internal/logger"
	"github.com/julianstephens/chairside/internal/session"
)

const pingTimeout = 5 * time.Second

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	storageOK := false

	// Check 1: local storage
	if err := checkStorage(ctx); err != nil {
		ctx.Printf("❌ Local storage: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Local storage: OK\n")
		storageOK = true
	}

	// Check 2: schema version (only if storage loaded)
	if storageOK {
		if err := checkSchema(ctx); err != nil {
			ctx.Printf("❌ Schema version: FAIL\n")
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.Printf("✓ Schema version: OK\n")
		}
	} else {
		ctx.Printf("⊘ Schema version: SKIPPED (storage not loaded)\n")
	}

	// Check 3: keyring (warning unless it is the session backend)
	if ctx.Keyring != nil && ctx.Keyring.IsAvailable() {
		ctx.Printf("✓ OS keyring: OK\n")
	} else if ctx.Backend == constants.SessionBackendKeyring {
		ctx.Printf("❌ OS keyring: FAIL\n")
		ctx.Printf("   Error: keyring is the session backend but is unavailable\n")
		hasError = true
	} else {
		ctx.Printf("⚠ OS keyring: WARNING\n")
		ctx.Printf("   keyring unavailable, use --session-backend=local\n")
	}

	// Check 4: clock
	if err := checkClock(ctx.Clock()); err != nil {
		ctx.Printf("❌ Clock/timezone: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Clock/timezone: OK (%s)\n", ctx.Clock().Location())
	}

	// Check 5: backend reachable
	apiOK := false
	pctx, cancel := context.WithTimeout(ctx.Ctx(), pingTimeout)
	err := ctx.API.Ping(pctx)
	cancel()
	if err != nil {
		ctx.Printf("❌ API reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ API reachable: OK (%s)\n", ctx.API.BaseURL())
		apiOK = true
	}

	// Check 6: session (warning only, and only if storage and API are up)
	if storageOK && apiOK {
		res := ctx.Gate.Evaluate(ctx.Ctx())
		switch {
		case res.State == gate.Authorized:
			ctx.Printf("✓ Session: OK (%s)\n", res.User.Username)
		case stderrors.Is(res.Cause, session.ErrNoSession):
			ctx.Printf("⚠ Session: WARNING\n")
			ctx.Printf("   not logged in\n")
		default:
			ctx.Printf("⚠ Session: WARNING\n")
			ctx.Printf("   stored session was rejected and has been cleared\n")
		}
	} else {
		ctx.Printf("⊘ Session: SKIPPED\n")
	}

	if p := logger.Path(); p != "" {
		ctx.Println()
		ctx.Printf("Logs: %s\n", p)
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorage(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func checkSchema(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaStatus(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("storage schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
