package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSettle is the quiet period after the last keystroke before a
// query is considered settled.
const DefaultSettle = 300 * time.Millisecond

// SettledMsg carries a debounced query value ready to be executed. An
// empty query means the user cleared the field and search mode ends.
type SettledMsg struct {
	Query string
}

// TickMsg is the internal timer message; hand it to Settle.
type TickMsg struct {
	Gen int
}

// Debouncer rate-limits raw per-keystroke input into settled query values.
// Trailing debounce: each keystroke restarts the quiet period, and only the
// newest pending timer may emit. Clearing the field bypasses the timer and
// emits immediately.
type Debouncer struct {
	settle  time.Duration
	gen     int
	pending string
}

// New creates a Debouncer with the given quiet period.
func New(settle time.Duration) *Debouncer {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Debouncer{settle: settle}
}

// Input registers a keystroke's current field value and returns the command
// to schedule. Any previously scheduled tick is superseded.
func (d *Debouncer) Input(value string) tea.Cmd {
	d.gen++
	d.pending = value

	if value == "" {
		// Emptying the field is not debounced.
		return func() tea.Msg {
			return SettledMsg{Query: ""}
		}
	}

	gen := d.gen
	return tea.Tick(d.settle, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// Settle resolves a timer tick. It returns the settled query only when the
// tick is the newest one; ticks superseded by later keystrokes resolve to
// nothing.
func (d *Debouncer) Settle(msg TickMsg) (string, bool) {
	if msg.Gen != d.gen {
		return "", false
	}
	return d.pending, true
}
