package reader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/webmail/internal/keys"
	"github.com/nhle/webmail/internal/model"
	"github.com/nhle/webmail/internal/theme"
)

// BackMsg signals the parent to navigate back to the email list.
type BackMsg struct{}

// Model is the opened-email reading view component.
type Model struct {
	email    *model.Email
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new reader model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the reader view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reader view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the reader view.
func (m Model) View() string {
	if m.email == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No email selected")
	}

	return m.viewport.View()
}

// renderContent builds the full email content string for the viewport.
func (m Model) renderContent() string {
	if m.email == nil {
		return ""
	}

	email := m.email
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	subject := email.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	sections = append(sections, titleStyle.Render(subject))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	from := email.FromName()
	if addr := email.From.EmailAddress.Address; addr != "" && addr != from {
		from = fmt.Sprintf("%s <%s>", from, addr)
	}
	sections = append(sections, fmt.Sprintf(
		"%s      %s",
		metaStyle.Render("From:"),
		valStyle.Render(from),
	))

	if !email.ReceivedDateTime.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Received:"),
			valStyle.Render(email.ReceivedDateTime.Format("2006-01-02 15:04")),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	body := email.Body.Content
	if strings.EqualFold(email.Body.ContentType, "html") {
		body = HTMLToText(body)
	}
	if body == "" {
		body = email.BodyPreview
	}
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Empty message")
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetEmail updates the email being displayed and re-renders the content.
func (m *Model) SetEmail(email *model.Email) {
	m.email = email
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetSize updates the reader view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
