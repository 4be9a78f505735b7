package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Open key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Mutations
	Archive      key.Binding
	Spam         key.Binding
	ToggleUnread key.Binding

	// Folder switching
	FolderInbox   key.Binding
	FolderArchive key.Binding
	FolderSent    key.Binding
	FolderJunk    key.Binding
	FolderDrafts  key.Binding

	// Manual refresh
	Refresh key.Binding

	// Help toggle
	Help key.Binding

	// Logout
	Logout key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next email"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous email"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open email"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "deselect/back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Archive: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "archive"),
		),
		Spam: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "mark spam"),
		),
		ToggleUnread: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "toggle read"),
		),
		FolderInbox: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "inbox"),
		),
		FolderArchive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "archive folder"),
		),
		FolderSent: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sent"),
		),
		FolderJunk: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "junk"),
		),
		FolderDrafts: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "drafts"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Open, k.Archive,
		k.Spam, k.Search, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back, k.Quit},
		{k.Archive, k.Spam, k.ToggleUnread, k.Refresh},
		{k.FolderInbox, k.FolderArchive, k.FolderSent, k.FolderJunk, k.FolderDrafts},
		{k.Search, k.Help, k.Logout},
	}
}
