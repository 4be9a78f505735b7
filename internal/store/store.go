package store

import (
	"context"

	"github.com/nhle/webmail/internal/model"
)

// Well-known setting keys.
const (
	SettingTheme      = "theme"
	SettingLastFolder = "last_folder"
)

// Store defines the persistence interface for display preferences and the
// account record. Tokens never land here; they live in the system keyring.
type Store interface {
	// === Settings (durable key/value) ===

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// === Account ===

	SaveAccount(ctx context.Context, account model.Account) error
	GetAccount(ctx context.Context) (*model.Account, error)
	DeleteAccount(ctx context.Context) error
}
