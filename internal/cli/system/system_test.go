package system

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/chairside/internal/cli/clitest"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/keyring"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/session"
)

var patient = models.User{ID: "p1", Username: "pat", Roles: models.NewRoles(constants.RolePatient)}

func TestDoctorAllPass(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	err := (&DoctorCmd{}).Run(env.Ctx)
	require.NoError(t, err)

	out := env.Out.String()
	assert.Contains(t, out, "✓ Local storage: OK")
	assert.Contains(t, out, "✓ Schema version: OK")
	assert.Contains(t, out, "⚠ OS keyring: WARNING")
	assert.Contains(t, out, "✓ API reachable: OK")
	assert.Contains(t, out, "✓ Session: OK (pat)")
	assert.Contains(t, out, "All diagnostics passed!")
}

func TestDoctorNotLoggedInWarns(t *testing.T) {
	env := clitest.New(t)

	require.NoError(t, (&DoctorCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "not logged in")
}

func TestDoctorRejectedSessionIsCleared(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	env.Backend.User = nil

	require.NoError(t, (&DoctorCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "has been cleared")

	_, err := env.Ctx.Sessions.Get(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestDoctorAPIDown(t *testing.T) {
	env := clitest.New(t)
	env.Backend.Server.Close()

	err := (&DoctorCmd{}).Run(env.Ctx)
	require.Error(t, err)
	out := env.Out.String()
	assert.Contains(t, out, "❌ API reachable: FAIL")
	assert.Contains(t, out, "⊘ Session: SKIPPED")
	assert.Contains(t, out, "Diagnostics completed with errors.")
}

func TestDoctorKeyringBackendUnavailable(t *testing.T) {
	env := clitest.New(t)
	env.Ctx.Backend = constants.SessionBackendKeyring

	err := (&DoctorCmd{}).Run(env.Ctx)
	require.Error(t, err)
	assert.Contains(t, env.Out.String(), "❌ OS keyring: FAIL")
}

func TestInitForceSignsOut(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	require.NoError(t, (&InitCmd{Force: true}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "Deleted existing storage")

	_, err := os.Stat(env.Store.GetConfigPath())
	require.NoError(t, err)
	_, err = env.Ctx.Sessions.Get(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestInitIsIdempotent(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	require.NoError(t, (&InitCmd{}).Run(env.Ctx))
	s, err := env.Ctx.Sessions.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", s.Token)
}

func TestKeyringStatusMissing(t *testing.T) {
	env := clitest.New(t)

	require.Error(t, (&KeyringStatusCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "not available")
}

func TestKeyringStatusMocked(t *testing.T) {
	gokeyring.MockInit()
	env := clitest.New(t)
	env.Ctx.Keyring = keyring.New("chairside-test")

	require.NoError(t, (&KeyringStatusCmd{}).Run(env.Ctx))
	out := env.Out.String()
	assert.Contains(t, out, "✓ OS keyring is available")
	assert.Contains(t, out, "No session stored in keyring")
	assert.Contains(t, out, "local storage")
}
