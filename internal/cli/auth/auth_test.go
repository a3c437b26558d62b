package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/chairside/internal/cli/clitest"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/session"
)

var patient = models.User{
	ID:        "p1",
	Username:  "pat",
	Email:     "pat@example.com",
	FirstName: "Pat",
	LastName:  "Doe",
	Roles:     models.NewRoles(constants.RolePatient),
}

func TestLoginStoresSession(t *testing.T) {
	env := clitest.New(t)
	env.Backend.Handle("POST", "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "pat", creds.Username)
		clitest.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "token": "tok-9", "user": patient})
	})

	require.NoError(t, (&LoginCmd{Username: " pat ", Password: "pw"}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "✓ Logged in as Pat Doe (ROLE_PATIENT)")

	ctx := context.Background()
	s, err := env.Ctx.Sessions.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-9", s.Token)
	u, err := env.Ctx.Sessions.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p1", u.ID)
}

func TestLoginRejected(t *testing.T) {
	env := clitest.New(t)
	env.Backend.Handle("POST", "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		clitest.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad credentials"})
	})

	err := (&LoginCmd{Username: "pat", Password: "nope"}).Run(env.Ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad credentials")
	_, serr := env.Ctx.Sessions.Get(context.Background())
	assert.ErrorIs(t, serr, session.ErrNoSession)
}

func TestLogout(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	require.NoError(t, (&LogoutCmd{}).Run(env.Ctx))
	require.NoError(t, (&LogoutCmd{}).Run(env.Ctx))
	_, err := env.Ctx.Sessions.Get(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestWhoami(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	require.NoError(t, (&WhoamiCmd{}).Run(env.Ctx))
	out := env.Out.String()
	assert.Contains(t, out, "User:  Pat Doe (pat)")
	assert.Contains(t, out, "Email: pat@example.com")
	assert.Contains(t, out, "Roles: ROLE_PATIENT")
	assert.NotContains(t, out, "Token expires")
}

func TestWhoamiShowsExpiry(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "pat",
		ExpiresAt: jwt.NewNumericDate(clitest.Now.Add(2 * time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, env.Ctx.Sessions.Set(context.Background(), session.Session{Token: tok}))

	require.NoError(t, (&WhoamiCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "(in 2h0m0s)")
}

func TestWhoamiNotLoggedIn(t *testing.T) {
	env := clitest.New(t)

	err := (&WhoamiCmd{}).Run(env.Ctx)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
}

func TestPasswordMismatchSendsNothing(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	err := (&PasswordCmd{Current: "old", New: "new-1", Confirm: "new-2"}).Run(env.Ctx)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 0, env.Backend.Hits("PUT", "/users/password"))
}

func TestPasswordChanged(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	env.Backend.Handle("PUT", "/users/password", func(w http.ResponseWriter, r *http.Request) {
		clitest.WriteJSON(w, http.StatusOK, map[string]string{"message": "updated"})
	})

	require.NoError(t, (&PasswordCmd{Current: "old", New: "new-1", Confirm: "new-1"}).Run(env.Ctx))
	assert.Equal(t, 1, env.Backend.Hits("PUT", "/users/password"))
}
