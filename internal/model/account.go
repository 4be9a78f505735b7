package model

import "time"

// Account is the locally persisted descriptor of the logged-in mailbox
// owner. It mirrors the Profile record from the API plus bookkeeping.
type Account struct {
	ID          string    `json:"id" db:"id"`
	Address     string    `json:"address" db:"address"`
	DisplayName string    `json:"display_name" db:"display_name"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
