// Package gate decides whether the stored session may see a screen or run a
// command. It fails closed: any doubt about the token clears it.
package gate

import (
	"context"
	stderrors "errors"
	"slices"

	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/logger"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/session"
)

// Verifier asks the backend whether a token is still valid
type Verifier interface {
	Verify(ctx context.Context, token string) (models.User, error)
}

type State int

const (
	Checking State = iota
	Authorized
	Unauthorized
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Result is the outcome of one evaluation
type Result struct {
	State State
	User  models.User
	// Cause is the verifier error behind an Unauthenticated result, if any
	Cause error
}

// Err maps a denied result onto the error taxonomy. Authorized returns nil.
func (r Result) Err() error {
	switch r.State {
	case Authorized:
		return nil
	case Unauthorized:
		return errors.ErrUnauthorized
	case Unauthenticated:
		return errors.ErrUnauthenticated
	}
	return stderrors.New("authorization still in progress")
}

type Gate struct {
	Sessions session.Store
	Verifier Verifier
}

func New(sessions session.Store, v Verifier) *Gate {
	return &Gate{Sessions: sessions, Verifier: v}
}

// Evaluate checks the stored token with the backend, then the user's roles
// against allowed. An empty allowed list only requires a valid session.
func (g *Gate) Evaluate(ctx context.Context, allowed ...string) Result {
	sess, err := g.Sessions.Get(ctx)
	if err != nil {
		if !stderrors.Is(err, session.ErrNoSession) {
			logger.Warn("Failed to read session", "error", err)
		}
		return Result{State: Unauthenticated, Cause: err}
	}

	user, err := g.Verifier.Verify(ctx, sess.Token)
	if err != nil {
		if ctx.Err() != nil {
			// abandoned, the token was never judged
			return Result{State: Checking, Cause: ctx.Err()}
		}
		logger.Info("Session rejected, clearing", "error", err)
		if cerr := g.Sessions.Clear(ctx); cerr != nil {
			logger.Error("Failed to clear session", "error", cerr)
		}
		return Result{State: Unauthenticated, Cause: err}
	}

	if err := g.Sessions.SetUser(ctx, user); err != nil {
		logger.Warn("Failed to cache user details", "error", err)
	}

	if len(allowed) == 0 || user.Roles.HasAny(allowed...) {
		return Result{State: Authorized, User: user}
	}
	return Result{State: Unauthorized, User: user}
}

// Tracker re-runs the gate only when the required roles change, the way
// navigation between screens does. The zero value is ready to use once Gate
// is set.
type Tracker struct {
	Gate *Gate

	roles []string
	last  Result
	valid bool
}

func NewTracker(g *Gate) *Tracker {
	return &Tracker{Gate: g}
}

// Changed reports whether roles differs from the last evaluated list
func (t *Tracker) Changed(roles []string) bool {
	return !t.valid || !slices.Equal(t.roles, roles)
}

// Evaluate returns the cached result when roles is unchanged
func (t *Tracker) Evaluate(ctx context.Context, roles ...string) Result {
	if !t.Changed(roles) {
		return t.last
	}
	res := t.Gate.Evaluate(ctx, roles...)
	if res.State == Checking {
		return res
	}
	t.roles = slices.Clone(roles)
	t.last = res
	t.valid = true
	return res
}

// Record stores a result computed elsewhere, e.g. by an async command
func (t *Tracker) Record(roles []string, res Result) {
	if res.State == Checking {
		return
	}
	t.roles = slices.Clone(roles)
	t.last = res
	t.valid = true
}

// Reset forces the next Evaluate to hit the backend
func (t *Tracker) Reset() {
	t.valid = false
	t.roles = nil
	t.last = Result{}
}

// Last returns the most recent result
func (t *Tracker) Last() Result {
	return t.last
}
