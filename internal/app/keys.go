package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/webmail/internal/engine"
	"github.com/nhle/webmail/internal/mailbox"
	"github.com/nhle/webmail/internal/model"
)

// handleGlobalKeys processes keybindings that work across views. The third
// return value reports whether the key was consumed; unconsumed keys fall
// through to the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	// While signing in or typing a query, only ctrl+c is global.
	if m.currentView == ViewLogin || m.mailList.InSearchMode() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewList {
			return m, tea.Quit, true
		}
		return m, nil, false

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Down):
		if m.currentView == ViewList {
			m.apply(mailbox.NextEmail{})
			return m, nil, true
		}
		return m, nil, false

	case key.Matches(msg, m.keys.Up):
		if m.currentView == ViewList {
			m.apply(mailbox.PreviousEmail{})
			return m, nil, true
		}
		return m, nil, false

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		if m.currentView == ViewList && m.state.Selected != nil {
			m.apply(mailbox.SetSelectedEmail{Email: nil})
			return m, nil, true
		}
		return m, nil, false

	case key.Matches(msg, m.keys.Archive):
		next, cmd := m.mutateCurrent(engine.MutationArchive)
		return next, cmd, true

	case key.Matches(msg, m.keys.Spam):
		next, cmd := m.mutateCurrent(engine.MutationSpam)
		return next, cmd, true

	case key.Matches(msg, m.keys.ToggleUnread):
		next, cmd := m.mutateCurrent(engine.MutationToggleUnread)
		return next, cmd, true

	case key.Matches(msg, m.keys.Refresh):
		if m.currentView == ViewList && !m.state.Searching {
			return m, m.startFolderLoad(m.state.CurrentFolder), true
		}
		return m, nil, false

	case key.Matches(msg, m.keys.FolderInbox):
		return m.folderKey(model.FolderInbox)
	case key.Matches(msg, m.keys.FolderArchive):
		return m.folderKey(model.FolderArchive)
	case key.Matches(msg, m.keys.FolderSent):
		return m.folderKey(model.FolderSent)
	case key.Matches(msg, m.keys.FolderJunk):
		return m.folderKey(model.FolderJunk)
	case key.Matches(msg, m.keys.FolderDrafts):
		return m.folderKey(model.FolderDrafts)

	case key.Matches(msg, m.keys.Logout):
		next, cmd := m.logout()
		return next, cmd, true
	}

	return m, nil, false
}

// folderKey switches folders when the list view is active.
func (m Model) folderKey(folder model.Folder) (tea.Model, tea.Cmd, bool) {
	if m.currentView != ViewList {
		return m, nil, false
	}
	return m, m.switchFolder(folder), true
}

// mutateCurrent starts a mutation on the selected email. Without a
// selection the keystroke is a no-op, and an email with a pending mutation
// is left alone.
func (m Model) mutateCurrent(kind engine.MutationKind) (tea.Model, tea.Cmd) {
	email, ok := m.state.SelectedEmail()
	if !ok || m.state.IsEmailLoading(email.ID) {
		return m, nil
	}

	m.apply(mailbox.AddEmailLoading{ID: email.ID})

	autoAdvance := m.currentView == ViewList

	switch kind {
	case engine.MutationArchive:
		return m, m.mutator.Archive(email.ID, autoAdvance)
	case engine.MutationSpam:
		return m, m.mutator.MarkSpam(email.ID, autoAdvance)
	case engine.MutationToggleUnread:
		return m, m.mutator.ToggleUnread(email.ID)
	}
	return m, nil
}
