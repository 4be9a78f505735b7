package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyLastKeystrokeSettles(t *testing.T) {
	d := New(DefaultSettle)

	d.Input("r")
	d.Input("re")
	d.Input("rep")

	// The two superseded ticks resolve to nothing.
	_, ok := d.Settle(TickMsg{Gen: 1})
	assert.False(t, ok)
	_, ok = d.Settle(TickMsg{Gen: 2})
	assert.False(t, ok)

	// Exactly one emission, carrying the last keystroke's value.
	query, ok := d.Settle(TickMsg{Gen: 3})
	require.True(t, ok)
	assert.Equal(t, "rep", query)
}

func TestTickFiresAfterQuietPeriod(t *testing.T) {
	d := New(5 * time.Millisecond)

	cmd := d.Input("report")
	require.NotNil(t, cmd)

	start := time.Now()
	msg := cmd()
	elapsed := time.Since(start)

	tick, ok := msg.(TickMsg)
	require.True(t, ok)
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)

	query, ok := d.Settle(tick)
	require.True(t, ok)
	assert.Equal(t, "report", query)
}

func TestClearingEmitsImmediately(t *testing.T) {
	d := New(DefaultSettle)

	d.Input("report")
	cmd := d.Input("")
	require.NotNil(t, cmd)

	// No timer involved: the command resolves at once.
	msg := cmd()
	settled, ok := msg.(SettledMsg)
	require.True(t, ok)
	assert.Equal(t, "", settled.Query)

	// The pending keystroke's tick was superseded by the clear.
	_, ok = d.Settle(TickMsg{Gen: 1})
	assert.False(t, ok)
}

func TestNewInputRestartsWindow(t *testing.T) {
	d := New(DefaultSettle)

	d.Input("a")
	query, ok := d.Settle(TickMsg{Gen: 1})
	require.True(t, ok)
	assert.Equal(t, "a", query)

	// A later keystroke invalidates the old generation permanently.
	d.Input("ab")
	_, ok = d.Settle(TickMsg{Gen: 1})
	assert.False(t, ok)
	query, ok = d.Settle(TickMsg{Gen: 2})
	require.True(t, ok)
	assert.Equal(t, "ab", query)
}
