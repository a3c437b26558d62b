// Package session holds the persisted bearer token and the cached user
// snapshot behind a single Store interface.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/chairside/internal/models"
)

// ErrNoSession is returned when nothing has been stored, or the stored blob
// holds no token
var ErrNoSession = errors.New("no session stored")

// Session is the persisted login state. It is stored as an opaque JSON blob.
type Session struct {
	Token string `json:"token"`
}

// Store is the only way components read or write session state. Writes to
// the session and the user snapshot are independent; another process may
// observe one without the other.
type Store interface {
	Get(ctx context.Context) (Session, error)
	Set(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
	GetUser(ctx context.Context) (models.User, error)
	SetUser(ctx context.Context, u models.User) error
}

// blobs is the raw key/value surface both backends share
type blobs interface {
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string) error
	del(ctx context.Context, key string) error
}

// blobStore implements Store over two JSON blobs
type blobStore struct {
	kv         blobs
	sessionKey string
	userKey    string
}

func (b *blobStore) Get(ctx context.Context) (Session, error) {
	raw, ok, err := b.kv.get(ctx, b.sessionKey)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNoSession
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("corrupt session blob: %w", err)
	}
	if s.Token == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (b *blobStore) Set(ctx context.Context, s Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.kv.set(ctx, b.sessionKey, string(raw))
}

// Clear removes both the token and the cached user details
func (b *blobStore) Clear(ctx context.Context) error {
	if err := b.kv.del(ctx, b.sessionKey); err != nil {
		return err
	}
	return b.kv.del(ctx, b.userKey)
}

func (b *blobStore) GetUser(ctx context.Context) (models.User, error) {
	raw, ok, err := b.kv.get(ctx, b.userKey)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrNoSession
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.User{}, fmt.Errorf("corrupt user details blob: %w", err)
	}
	return u, nil
}

func (b *blobStore) SetUser(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return b.kv.set(ctx, b.userKey, string(raw))
}
