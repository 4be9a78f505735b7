package login

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/webmail/internal/theme"
)

// Mode represents the current state of the login view.
type Mode int

const (
	ModeWelcome Mode = iota // Confirm starting the browser sign-in
	ModeWaiting             // Waiting for the browser redirect
	ModeError               // Sign-in failed; offer retry
)

// StartRequestedMsg signals the parent to begin the browser sign-in flow.
type StartRequestedMsg struct{}

// CancelRequestedMsg signals the parent to abort a pending sign-in.
type CancelRequestedMsg struct{}

// Model is the sign-in view shown while the session has no valid account.
type Model struct {
	mode    Mode
	form    *huh.Form
	confirm bool
	authURL string
	err     error
	spinner spinner.Model
	width   int
	height  int
}

// New creates a new login view model.
func New(width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		mode:    ModeWelcome,
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.form = m.buildConfirmForm()
	return m
}

// buildConfirmForm creates the initial sign-in confirmation form.
func (m *Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sign in to your mailbox").
				Description("A browser window will open for authentication.").
				Affirmative("Sign in").
				Negative("Quit").
				Value(&m.confirm),
		),
	)
}

// Init returns the initial command for the login view.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// SetWaiting switches to the waiting state with the URL the user's browser
// was pointed at.
func (m *Model) SetWaiting(authURL string) {
	m.mode = ModeWaiting
	m.authURL = authURL
	m.err = nil
}

// SetError switches to the error state after a failed sign-in attempt.
func (m *Model) SetError(err error) {
	m.mode = ModeError
	m.err = err
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeWelcome:
		return m.updateWelcome(msg)
	case ModeWaiting:
		return m.updateWaiting(msg)
	case ModeError:
		return m.updateError(msg)
	}
	return m, nil
}

func (m Model) updateWelcome(msg tea.Msg) (Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if !m.confirm {
			return m, tea.Quit
		}
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg { return StartRequestedMsg{} },
		)
	}

	return m, cmd
}

func (m Model) updateWaiting(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, func() tea.Msg { return CancelRequestedMsg{} }
		}
	}
	return m, nil
}

func (m Model) updateError(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "r":
			m.mode = ModeWelcome
			m.confirm = false
			m.form = m.buildConfirmForm()
			return m, m.form.Init()
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the login view.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	switch m.mode {
	case ModeWaiting:
		urlStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue)
		hint := theme.HelpStyle.Render("If the browser did not open, visit the URL above. Press esc to cancel.")
		return style.Render(lipgloss.JoinVertical(
			lipgloss.Center,
			m.spinner.View()+" Waiting for sign-in to complete...",
			"",
			urlStyle.Render(m.authURL),
			"",
			hint,
		))

	case ModeError:
		errStyle := lipgloss.NewStyle().Foreground(theme.ColorRed)
		return style.Render(lipgloss.JoinVertical(
			lipgloss.Center,
			errStyle.Render(fmt.Sprintf("Sign-in failed: %v", m.err)),
			"",
			theme.HelpStyle.Render("Press enter to retry, q to quit."),
		))

	default:
		return style.Render(m.form.View())
	}
}

// SetSize updates the login view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
