package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/webmail/internal/api"
	"github.com/nhle/webmail/internal/engine"
	"github.com/nhle/webmail/internal/mailbox"
	"github.com/nhle/webmail/internal/search"
)

// handleEmailsLoaded folds a finished folder fetch into the state. Results
// of superseded fetches are dropped.
func (m Model) handleEmailsLoaded(msg engine.EmailsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.fetcher.IsCurrentFolderLoad(msg) {
		return m, nil
	}

	if msg.Err != nil {
		if api.IsAuthError(msg.Err) {
			return m.logout()
		}
		m.errMessage = fmt.Sprintf("Failed to load %s: %v", msg.Folder.DisplayName(), msg.Err)
		m.apply(mailbox.SetLoadingEmails{Loading: false})
		return m, nil
	}

	m.errMessage = ""
	m.apply(
		mailbox.SetEmails{Emails: msg.Emails},
		mailbox.SetLoadingEmails{Loading: false},
	)
	return m, nil
}

// handleSearchLoaded folds a finished search into the state. Stale results
// and results arriving after the query was cleared are dropped.
func (m Model) handleSearchLoaded(msg engine.SearchLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.fetcher.IsCurrentSearch(msg) || !m.state.Searching {
		return m, nil
	}

	if msg.Err != nil {
		if api.IsAuthError(msg.Err) {
			return m.logout()
		}
		m.errMessage = fmt.Sprintf("Search failed: %v", msg.Err)
		m.apply(mailbox.SetLoadingSearch{Loading: false})
		return m, nil
	}

	m.errMessage = ""
	m.apply(
		mailbox.SetEmails{Emails: msg.Emails},
		mailbox.SetLoadingSearch{Loading: false},
	)
	return m, nil
}

// handleQuerySettled reacts to a debounced query value: a non-empty query
// starts a search, an empty one leaves search mode and restores the folder.
func (m Model) handleQuerySettled(msg search.SettledMsg) (tea.Model, tea.Cmd) {
	if msg.Query == "" {
		if !m.state.Searching {
			return m, nil
		}
		m.apply(mailbox.SetSearching{Searching: false})
		return m, m.startFolderLoad(m.state.CurrentFolder)
	}

	m.apply(
		mailbox.SetSearching{Searching: true},
		mailbox.SetLoadingSearch{Loading: true},
	)
	return m, m.fetcher.SearchQuery(msg.Query)
}

// handleMutationDone folds a confirmed mutation into the state. The email
// list changes only here, after the server has confirmed; the loading
// marker is cleared whatever the outcome.
func (m Model) handleMutationDone(msg engine.MutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsAuthError(msg.Err) {
			return m.logout()
		}
		m.errMessage = fmt.Sprintf("Action failed: %v", msg.Err)
		m.apply(mailbox.RemoveEmailLoading{ID: msg.ID})
		return m, nil
	}

	m.errMessage = ""

	switch msg.Kind {
	case engine.MutationArchive, engine.MutationSpam:
		actions := []mailbox.Action{}
		if msg.AutoAdvance {
			// Move the cursor off the email before it disappears so the
			// selection survives the removal.
			actions = append(actions, mailbox.NextEmail{})
		}
		actions = append(actions,
			mailbox.RemoveEmail{ID: msg.ID},
			mailbox.RemoveEmailLoading{ID: msg.ID},
		)
		m.apply(actions...)

		// The open email is gone; fall back to the list.
		if m.currentView == ViewReader {
			if _, ok := m.state.SelectedEmail(); !ok {
				m.currentView = ViewList
			}
		}

	case engine.MutationToggleUnread:
		m.apply(
			mailbox.UpdateEmail{ID: msg.ID, Patch: msg.Patch},
			mailbox.RemoveEmailLoading{ID: msg.ID},
		)
		if m.currentView == ViewReader {
			if email, ok := m.state.SelectedEmail(); ok && email.ID == msg.ID {
				m.readerView.SetEmail(&email)
			}
		}

	default:
		m.apply(mailbox.RemoveEmailLoading{ID: msg.ID})
	}

	return m, nil
}

// handleProfileLoaded records the fetched account descriptor and persists it
// for the next session.
func (m Model) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.logout()
		}
		m.errMessage = fmt.Sprintf("Failed to load profile: %v", msg.err)
		return m, nil
	}

	m.profile = msg.profile
	return m, m.persistAccount(*msg.profile)
}
