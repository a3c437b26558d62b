package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/chairside/internal/constants"
)

var (
	// ErrNotFound is returned when nothing is stored under the requested key
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Keyring stores secrets for one service name in the OS keyring
type Keyring struct {
	Service string
}

// New returns a Keyring for service, defaulting to the application name
func New(service string) *Keyring {
	if service == "" {
		service = constants.AppName
	}
	return &Keyring{Service: service}
}

// Get retrieves the secret stored under user.
func (k *Keyring) Get(user string) (string, error) {
	secret, err := keyring.Get(k.Service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret under user.
func (k *Keyring) Set(user, secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(k.Service, user, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored under user.
func (k *Keyring) Delete(user string) error {
	if err := keyring.Delete(k.Service, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func (k *Keyring) IsAvailable() bool {
	_, err := keyring.Get(k.Service, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
