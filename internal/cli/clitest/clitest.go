// Package clitest wires a cli.Context against an in-process backend and a
// throwaway sqlite store for command tests.
package clitest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/chairside/internal/api"
	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/gate"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/session"
	"github.com/julianstephens/chairside/internal/storage/sqlite"
)

// Now is the fixed clock used by every command test: Wednesday 2026-10-14
var Now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

// Backend is a fake clinic API. Routes use ServeMux patterns relative to
// /api, e.g. "POST /appointments".
type Backend struct {
	Server *httptest.Server
	// User is returned by /auth/verify; nil rejects every token
	User *models.User

	mux  *http.ServeMux
	mu   sync.Mutex
	hits map[string]int
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{mux: http.NewServeMux(), hits: map[string]int{}}
	b.mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if b.User == nil {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"status": constants.VerifyStatusOK, "user": b.User})
	})
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.Method+" "+r.URL.Path]++
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Server.Close)
	return b
}

// Handle registers h for pattern under /api
func (b *Backend) Handle(method, path string, h http.HandlerFunc) {
	b.mux.HandleFunc(method+" /api"+path, h)
}

// Hits counts requests to method and path, e.g. Hits("POST", "/appointments")
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" /api"+path]
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", constants.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Env is a ready command context plus its captured output
type Env struct {
	Ctx     *cli.Context
	Out     *bytes.Buffer
	Backend *Backend
	Store   *sqlite.Store
}

// New builds an Env with an initialised store and no session
func New(t *testing.T) *Env {
	t.Helper()
	backend := NewBackend(t)

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "chairside.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	sessions := session.NewLocal(store)
	client := api.New(backend.Server.URL+"/api",
		api.WithRateLimit(0),
		api.WithToken(func(ctx context.Context) string {
			s, err := sessions.Get(ctx)
			if err != nil {
				return ""
			}
			return s.Token
		}),
	)

	out := &bytes.Buffer{}
	return &Env{
		Ctx: &cli.Context{
			API:      client,
			Sessions: sessions,
			Gate:     gate.New(sessions, client),
			Store:    store,
			Backend:  constants.SessionBackendLocal,
			Location: time.UTC,
			Now:      func() time.Time { return Now },
			Out:      out,
			Base:     context.Background(),
		},
		Out:     out,
		Backend: backend,
		Store:   store,
	}
}

// Login stores a session for u and makes the backend accept it
func (e *Env) Login(t *testing.T, u models.User) {
	t.Helper()
	e.Backend.User = &u
	ctx := context.Background()
	if err := e.Ctx.Sessions.Set(ctx, session.Session{Token: "test-token"}); err != nil {
		t.Fatalf("failed to store session: %v", err)
	}
	if err := e.Ctx.Sessions.SetUser(ctx, u); err != nil {
		t.Fatalf("failed to store user: %v", err)
	}
}
