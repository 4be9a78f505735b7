package maillist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/webmail/internal/model"
	"github.com/nhle/webmail/internal/theme"
)

// EmailItem wraps a model.Email so it can be used in a bubbles/list.
type EmailItem struct {
	Email model.Email
}

// FilterValue returns the string used for fuzzy filtering.
func (i EmailItem) FilterValue() string { return i.Email.Subject }

// Title returns the email subject for the list.
func (i EmailItem) Title() string { return i.Email.Subject }

// Description returns a short summary line for the list.
func (i EmailItem) Description() string {
	return i.Email.FromName() + " | " + relativeTime(i.Email.ReceivedDateTime)
}

// ItemDelegate implements list.ItemDelegate for rendering email rows.
type ItemDelegate struct {
	// loading maps email IDs to true while a mutation is in flight.
	// Shared by reference with the maillist Model so updates are visible.
	loading map[string]bool
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single email row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ei, ok := item.(EmailItem)
	if !ok {
		return
	}

	email := ei.Email
	isSelected := index == m.Index()

	var prefix string
	if email.IsRead {
		prefix = " "
	} else {
		prefix = "●"
	}

	from := email.FromName()
	if len(from) > 24 {
		from = from[:23] + "…"
	}

	subject := email.Subject
	if subject == "" {
		subject = "(no subject)"
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(email.ReceivedDateTime))

	busyIndicator := ""
	if d.loading[email.ID] {
		busyIndicator = lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render(" ⋯")
	}

	line := fmt.Sprintf(
		"%s %-24s %s%s  %s",
		prefix, from, subject, busyIndicator, timeStr,
	)

	if !email.IsRead {
		line = theme.UnreadStyle.Render(line)
	} else {
		line = theme.ReadStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("Jan 02, 2006")
	}
}
