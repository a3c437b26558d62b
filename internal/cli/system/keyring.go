package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/keyring"
)

type KeyringCmd struct {
	Status KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if ctx.Keyring == nil || !ctx.Keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")

	_, err := ctx.Keyring.Get(constants.SessionKey)
	switch {
	case err == nil:
		ctx.Println("✓ A session is stored in the keyring")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No session stored in keyring")
	default:
		return fmt.Errorf("failed to read keyring: %w", err)
	}

	if ctx.Backend != constants.SessionBackendKeyring {
		ctx.Println("ℹ Sessions are currently kept in local storage (--session-backend=local)")
	}
	return nil
}
