package session

import (
	"context"
	"errors"

	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/keyring"
	"github.com/julianstephens/chairside/internal/storage"
)

// NewLocal stores the session in local key/value storage
func NewLocal(p storage.Provider) Store {
	return &blobStore{
		kv:         localBlobs{p: p},
		sessionKey: constants.SessionKey,
		userKey:    constants.UserDetailsKey,
	}
}

// NewKeyring stores the session in the OS keyring under service
func NewKeyring(k *keyring.Keyring) Store {
	return &blobStore{
		kv:         keyringBlobs{k: k},
		sessionKey: constants.SessionKey,
		userKey:    constants.UserDetailsKey,
	}
}

type localBlobs struct {
	p storage.Provider
}

func (l localBlobs) get(ctx context.Context, key string) (string, bool, error) {
	v, err := l.p.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (l localBlobs) set(ctx context.Context, key, value string) error {
	return l.p.Set(ctx, key, value)
}

func (l localBlobs) del(ctx context.Context, key string) error {
	return l.p.Delete(ctx, key)
}

// the OS keyring API has no context support
type keyringBlobs struct {
	k *keyring.Keyring
}

func (kb keyringBlobs) get(_ context.Context, key string) (string, bool, error) {
	v, err := kb.k.Get(key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (kb keyringBlobs) set(_ context.Context, key, value string) error {
	return kb.k.Set(key, value)
}

func (kb keyringBlobs) del(_ context.Context, key string) error {
	if err := kb.k.Delete(key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
