package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "webmail"

// Keys under which session credentials are stored.
const (
	keyAccessToken  = "access-token"
	keyRefreshToken = "refresh-token"
	keyAccount      = "account"
)

// Keyring is a Store backed by the system keyring.
type Keyring struct{}

// NewKeyring returns a keyring-backed credential store.
func NewKeyring() *Keyring {
	return &Keyring{}
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/webmail/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("webmail-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

func (k *Keyring) get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

func (k *Keyring) set(key, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

func (k *Keyring) remove(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

func (k *Keyring) AccessToken() (string, error) {
	return k.get(keyAccessToken)
}

func (k *Keyring) SetAccessToken(token string) error {
	return k.set(keyAccessToken, token)
}

func (k *Keyring) RefreshToken() (string, error) {
	return k.get(keyRefreshToken)
}

func (k *Keyring) SetRefreshToken(token string) error {
	return k.set(keyRefreshToken, token)
}

func (k *Keyring) Account() (string, error) {
	return k.get(keyAccount)
}

func (k *Keyring) SetAccount(descriptor string) error {
	return k.set(keyAccount, descriptor)
}

// Clear removes all session credentials. Called on logout and when a
// refresh attempt fails for good.
func (k *Keyring) Clear() error {
	for _, key := range []string{keyAccessToken, keyRefreshToken, keyAccount} {
		if err := k.remove(key); err != nil {
			return err
		}
	}
	return nil
}
