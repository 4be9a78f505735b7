package app

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/webmail/internal/mailbox"
	"github.com/nhle/webmail/internal/model"
	"github.com/nhle/webmail/internal/store"
)

// apply runs the actions through the transition function in order and syncs
// the list view with the result. A rejected action is logged and skipped;
// the actions after it still run.
func (m *Model) apply(actions ...mailbox.Action) {
	for _, a := range actions {
		next, err := mailbox.Apply(m.state, a)
		if err != nil {
			log.Printf("state transition rejected: %v", err)
			continue
		}
		m.state = next
	}
	m.mailList.SyncState(m.state)
}

// startFolderLoad marks the list as loading and issues the fetch.
func (m *Model) startFolderLoad(folder model.Folder) tea.Cmd {
	m.apply(mailbox.SetLoadingEmails{Loading: true})
	return m.fetcher.LoadFolder(folder)
}

// switchFolder changes the active folder, persists the choice, and starts
// the load sequence. Leaving search mode is implied.
func (m *Model) switchFolder(folder model.Folder) tea.Cmd {
	if folder == m.state.CurrentFolder && !m.state.Searching {
		return nil
	}

	m.apply(
		mailbox.SetSearching{Searching: false},
		mailbox.SetCurrentFolder{Folder: folder},
		mailbox.SetSelectedEmail{Email: nil},
	)

	s := m.store
	persist := func() tea.Msg {
		if err := s.SetSetting(
			context.Background(), store.SettingLastFolder, string(folder),
		); err != nil {
			log.Printf("persisting last folder: %v", err)
		}
		return nil
	}

	return tea.Batch(m.startFolderLoad(folder), persist)
}

// openEmail selects the email and shows it in the reader. Opening an unread
// email also flips its read flag server-side.
func (m *Model) openEmail(email model.Email) (tea.Model, tea.Cmd) {
	m.apply(mailbox.SetSelectedEmail{Email: &email})
	m.readerView.SetEmail(&email)
	m.previousView = m.currentView
	m.currentView = ViewReader

	if !email.IsRead && !m.state.IsEmailLoading(email.ID) {
		m.apply(mailbox.AddEmailLoading{ID: email.ID})
		return m, m.mutator.ToggleUnread(email.ID)
	}
	return m, nil
}

// loadProfile fetches the account descriptor in the background.
func (m *Model) loadProfile() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), profileTimeout)
		defer cancel()

		profile, err := client.Profile(ctx)
		return profileLoadedMsg{profile: profile, err: err}
	}
}
