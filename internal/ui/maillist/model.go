package maillist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/webmail/internal/keys"
	"github.com/nhle/webmail/internal/mailbox"
	"github.com/nhle/webmail/internal/model"
	"github.com/nhle/webmail/internal/search"
	"github.com/nhle/webmail/internal/theme"
)

// OpenEmailMsg is sent when the user opens an email from the list.
type OpenEmailMsg struct {
	Email model.Email
}

// Model is the email list view component. It renders the mailbox state; it
// never owns it. Selection and content changes flow in through SyncState.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	loading     map[string]bool
	searchMode  bool
	searchInput textinput.Model
	debouncer   *search.Debouncer
	width       int
	height      int
}

// New creates a new email list model.
func New(k *keys.KeyMap, width, height int) Model {
	loading := make(map[string]bool)
	delegate := ItemDelegate{loading: loading}

	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Inbox"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search emails..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		loading:     loading,
		searchInput: si,
		debouncer:   search.New(search.DefaultSettle),
		width:       width,
		height:      height,
	}
}

// SyncState rebuilds the visible rows from the mailbox state. The list
// cursor follows the state's selection, not the other way around.
func (m *Model) SyncState(st mailbox.State) {
	items := make([]list.Item, len(st.Emails))
	for i, email := range st.Emails {
		items[i] = EmailItem{Email: email}
	}
	m.list.SetItems(items)

	for id := range m.loading {
		delete(m.loading, id)
	}
	for id := range st.EmailsLoading {
		m.loading[id] = true
	}

	if st.Selected != nil {
		m.list.Select(st.Selected.Index)
	} else {
		m.list.Select(0)
	}

	if st.Searching {
		m.list.Title = fmt.Sprintf("Search results (%d)", st.TotalEmails)
	} else {
		m.list.Title = fmt.Sprintf("%s (%d)", st.CurrentFolder.DisplayName(), st.TotalEmails)
	}
}

// InSearchMode reports whether the search input currently has focus.
func (m Model) InSearchMode() bool {
	return m.searchMode
}

// Update handles messages for the email list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case search.TickMsg:
		query, ok := m.debouncer.Settle(msg)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return search.SettledMsg{Query: query}
		}

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while the search field has focus.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Leave the field focused state; the pending query settles on
		// its own timer.
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		return m, m.debouncer.Input("")
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()

	if after != before {
		return m, tea.Batch(cmd, m.debouncer.Input(after))
	}
	return m, cmd
}

// handleNormalKeys processes key input outside of search mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		item, ok := m.list.SelectedItem().(EmailItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return OpenEmailMsg{Email: item.Email}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()
	}

	return m, nil
}

// View renders the email list view.
func (m Model) View() string {
	if m.searchMode || m.searchInput.Value() != "" {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when the folder has no emails.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.searchInput.Value() != "" {
		return style.Render("No matching emails.")
	}
	return style.Render("This folder is empty.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
