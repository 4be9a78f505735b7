package credential

import "errors"

// ErrNotFound is returned when a credential is absent from the store.
var ErrNotFound = errors.New("credential not found")

// Store is the durable credential store for one mailbox session: the
// short-lived access token, the optional refresh credential, and the
// account descriptor. Login writes all three, a silent refresh overwrites
// the access token, logout clears everything.
type Store interface {
	AccessToken() (string, error)
	SetAccessToken(token string) error

	RefreshToken() (string, error)
	SetRefreshToken(token string) error

	Account() (string, error)
	SetAccount(descriptor string) error

	// Clear removes all stored credentials.
	Clear() error
}
