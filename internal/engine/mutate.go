package engine

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/webmail/internal/model"
)

// MutationKind names a per-email mutating operation.
type MutationKind string

const (
	MutationArchive      MutationKind = "archive"
	MutationSpam         MutationKind = "spam"
	MutationToggleUnread MutationKind = "unread"
)

// EmailMutator is the slice of the mailbox API the Mutator needs.
type EmailMutator interface {
	Archive(ctx context.Context, id string) error
	MarkSpam(ctx context.Context, id string) error
	ToggleUnread(ctx context.Context, id string) (model.EmailPatch, error)
}

// MutationDoneMsg reports a completed mutation attempt. On success,
// archive/spam remove the email and unread applies Patch; in every case the
// email's loading marker must be cleared by the handler.
type MutationDoneMsg struct {
	Kind MutationKind
	ID   string

	// Patch holds the server-returned fields for unread toggles.
	Patch model.EmailPatch

	// AutoAdvance asks the handler to move the selection to the next
	// email before removing this one (keyboard-driven archive/spam).
	AutoAdvance bool

	Err error
}

// Mutator executes per-email mutations as background commands. It never
// touches the email list itself: removal and updates happen only after the
// server confirms, via the action sequence the message handler dispatches.
type Mutator struct {
	client  EmailMutator
	timeout time.Duration
}

// NewMutator creates a Mutator over the given API client.
func NewMutator(client EmailMutator, timeout time.Duration) *Mutator {
	if timeout <= 0 {
		timeout = fetchTimeout
	}
	return &Mutator{client: client, timeout: timeout}
}

// Archive returns a command that archives the email.
func (m *Mutator) Archive(id string, autoAdvance bool) tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := client.Archive(ctx, id)
		return MutationDoneMsg{
			Kind:        MutationArchive,
			ID:          id,
			AutoAdvance: autoAdvance,
			Err:         err,
		}
	}
}

// MarkSpam returns a command that moves the email to junk.
func (m *Mutator) MarkSpam(id string, autoAdvance bool) tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := client.MarkSpam(ctx, id)
		return MutationDoneMsg{
			Kind:        MutationSpam,
			ID:          id,
			AutoAdvance: autoAdvance,
			Err:         err,
		}
	}
}

// ToggleUnread returns a command that flips the email's read flag.
func (m *Mutator) ToggleUnread(id string) tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		patch, err := client.ToggleUnread(ctx, id)
		return MutationDoneMsg{
			Kind:  MutationToggleUnread,
			ID:    id,
			Patch: patch,
			Err:   err,
		}
	}
}
