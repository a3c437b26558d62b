package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/keyring"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/storage/sqlite"
)

func localStore(t *testing.T) Store {
	t.Helper()
	p := sqlite.NewStore(filepath.Join(t.TempDir(), "chairside.db"))
	if err := p.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return NewLocal(p)
}

func keyringStore(t *testing.T) Store {
	t.Helper()
	gokeyring.MockInit()
	return NewKeyring(keyring.New("chairside-test"))
}

func TestStores(t *testing.T) {
	backends := map[string]func(*testing.T) Store{
		"local":   localStore,
		"keyring": keyringStore,
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			if _, err := s.Get(ctx); !errors.Is(err, ErrNoSession) {
				t.Fatalf("Get() on empty store error = %v, want ErrNoSession", err)
			}

			if err := s.Set(ctx, Session{Token: "tok-1"}); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			user := models.User{ID: "u1", Username: "ann", Roles: models.Roles{Values: []string{constants.RoleDentist}, Encoded: true}}
			if err := s.SetUser(ctx, user); err != nil {
				t.Fatalf("SetUser() error = %v", err)
			}

			got, err := s.Get(ctx)
			if err != nil || got.Token != "tok-1" {
				t.Errorf("Get() = %+v, %v", got, err)
			}
			gotUser, err := s.GetUser(ctx)
			if err != nil {
				t.Fatalf("GetUser() error = %v", err)
			}
			if gotUser.Username != "ann" || !gotUser.Roles.Encoded || !gotUser.Roles.Has(constants.RoleDentist) {
				t.Errorf("GetUser() = %+v", gotUser)
			}

			if err := s.Clear(ctx); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if _, err := s.Get(ctx); !errors.Is(err, ErrNoSession) {
				t.Errorf("Get() after Clear error = %v", err)
			}
			if _, err := s.GetUser(ctx); !errors.Is(err, ErrNoSession) {
				t.Errorf("GetUser() after Clear error = %v", err)
			}
			// clearing twice is fine
			if err := s.Clear(ctx); err != nil {
				t.Errorf("second Clear() error = %v", err)
			}
		})
	}
}

func TestEmptyTokenIsNoSession(t *testing.T) {
	ctx := context.Background()
	s := localStore(t)
	if err := s.Set(ctx, Session{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Get() with empty token error = %v, want ErrNoSession", err)
	}
}

func TestCorruptBlob(t *testing.T) {
	ctx := context.Background()
	p := sqlite.NewStore(filepath.Join(t.TempDir(), "chairside.db"))
	if err := p.Init(ctx); err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if err := p.Set(ctx, constants.SessionKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	_, err := NewLocal(p).Get(ctx)
	if err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("Get() on corrupt blob error = %v, want decode error", err)
	}
}

func TestInspect(t *testing.T) {
	exp := time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	raw, err := tok.SignedString([]byte("not-our-secret"))
	if err != nil {
		t.Fatal(err)
	}

	c, ok := Inspect(raw)
	if !ok {
		t.Fatal("Inspect() failed on a JWT")
	}
	if c.Subject != "u1" || !c.ExpiresAt.Equal(exp) {
		t.Errorf("Inspect() = %+v", c)
	}
	if !c.Expired(exp.Add(time.Minute)) || c.Expired(exp.Add(-time.Minute)) {
		t.Error("Expired() gave the wrong answer")
	}

	if _, ok := Inspect("opaque-token"); ok {
		t.Error("Inspect() accepted an opaque token")
	}
}
