package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/webmail/internal/model"
)

func testEmails() []model.Email {
	return []model.Email{
		{ID: "a", Subject: "first"},
		{ID: "b", Subject: "second"},
		{ID: "c", Subject: "third"},
	}
}

func stateWith(emails []model.Email) State {
	s := NewState(model.FolderInbox)
	s, err := Apply(s, SetEmails{Emails: emails})
	if err != nil {
		panic(err)
	}
	return s
}

func mustApply(t *testing.T, s State, a Action) State {
	t.Helper()
	next, err := Apply(s, a)
	require.NoError(t, err)
	return next
}

func TestAddEmailLoadingIsIdempotent(t *testing.T) {
	s := stateWith(testEmails())

	s = mustApply(t, s, AddEmailLoading{ID: "b"})
	s = mustApply(t, s, AddEmailLoading{ID: "b"})

	assert.Len(t, s.EmailsLoading, 1)
	assert.True(t, s.IsEmailLoading("b"))
}

func TestRemoveEmailLoadingAbsentIsNoOp(t *testing.T) {
	s := stateWith(testEmails())

	next := mustApply(t, s, RemoveEmailLoading{ID: "zzz"})

	assert.Equal(t, s.EmailsLoading, next.EmailsLoading)
}

func TestRemoveEmailClearsSelection(t *testing.T) {
	s := stateWith(testEmails())
	b := s.Emails[1]
	s = mustApply(t, s, SetSelectedEmail{Email: &b})

	s = mustApply(t, s, RemoveEmail{ID: "b"})

	assert.Nil(t, s.Selected)
	assert.Equal(t, 2, s.TotalEmails)
	assert.Equal(t, -1, indexOf(s.Emails, "b"))
}

func TestRemoveEmailKeepsOtherSelection(t *testing.T) {
	s := stateWith(testEmails())
	c := s.Emails[2]
	s = mustApply(t, s, SetSelectedEmail{Email: &c})

	s = mustApply(t, s, RemoveEmail{ID: "a"})

	require.NotNil(t, s.Selected)
	assert.Equal(t, "c", s.Selected.ID)
	// Index shifts down after removing an earlier email.
	assert.Equal(t, 1, s.Selected.Index)
}

func TestRemoveEmailUnknownIDIsNoOp(t *testing.T) {
	s := stateWith(testEmails())
	b := s.Emails[1]
	s = mustApply(t, s, SetSelectedEmail{Email: &b})

	next := mustApply(t, s, RemoveEmail{ID: "zzz"})

	assert.Equal(t, s.Emails, next.Emails)
	assert.Equal(t, s.Selected, next.Selected)
}

func TestRemoveEmailDoesNotMutatePreviousState(t *testing.T) {
	s := stateWith(testEmails())

	next := mustApply(t, s, RemoveEmail{ID: "a"})

	// The earlier snapshot keeps its full list.
	assert.Len(t, s.Emails, 3)
	assert.Len(t, next.Emails, 2)
}

func TestNextEmailBoundaries(t *testing.T) {
	s := stateWith(testEmails())

	// No prior selection: selects index 0.
	s = mustApply(t, s, NextEmail{})
	require.NotNil(t, s.Selected)
	assert.Equal(t, "a", s.Selected.ID)
	assert.Equal(t, 0, s.Selected.Index)

	s = mustApply(t, s, NextEmail{})
	s = mustApply(t, s, NextEmail{})
	require.Equal(t, "c", s.Selected.ID)

	// At the last index the transition is a no-op.
	next := mustApply(t, s, NextEmail{})
	assert.Equal(t, s.Selected, next.Selected)
}

func TestPreviousEmailBoundaries(t *testing.T) {
	s := stateWith(testEmails())

	// No selection: no-op.
	next := mustApply(t, s, PreviousEmail{})
	assert.Nil(t, next.Selected)

	a := s.Emails[0]
	s = mustApply(t, s, SetSelectedEmail{Email: &a})
	next = mustApply(t, s, PreviousEmail{})
	require.NotNil(t, next.Selected)
	assert.Equal(t, "a", next.Selected.ID)
	assert.Equal(t, 0, next.Selected.Index)
}

func TestNextAndPreviousFromMiddle(t *testing.T) {
	s := stateWith(testEmails())
	b := s.Emails[1]
	s = mustApply(t, s, SetSelectedEmail{Email: &b})

	down := mustApply(t, s, NextEmail{})
	require.NotNil(t, down.Selected)
	assert.Equal(t, "c", down.Selected.ID)
	assert.Equal(t, 2, down.Selected.Index)

	up := mustApply(t, s, PreviousEmail{})
	require.NotNil(t, up.Selected)
	assert.Equal(t, "a", up.Selected.ID)
	assert.Equal(t, 0, up.Selected.Index)
}

func TestSetEmailsRecomputesSelectionIndex(t *testing.T) {
	s := stateWith(testEmails())
	b := s.Emails[1]
	s = mustApply(t, s, SetSelectedEmail{Email: &b})

	// New list with b moved to the front.
	s = mustApply(t, s, SetEmails{Emails: []model.Email{
		{ID: "b"}, {ID: "c"},
	}})

	require.NotNil(t, s.Selected)
	assert.Equal(t, "b", s.Selected.ID)
	assert.Equal(t, 0, s.Selected.Index)
	assert.Equal(t, 2, s.TotalEmails)
}

func TestSetSelectedEmailAbsentIDGetsIndexMinusOne(t *testing.T) {
	s := stateWith(testEmails())
	ghost := model.Email{ID: "ghost"}

	s = mustApply(t, s, SetSelectedEmail{Email: &ghost})

	require.NotNil(t, s.Selected)
	assert.Equal(t, -1, s.Selected.Index)

	_, ok := s.SelectedEmail()
	assert.False(t, ok)
}

func TestUpdateEmailPatchesOnlyTarget(t *testing.T) {
	s := stateWith(testEmails())
	read := true

	s = mustApply(t, s, UpdateEmail{
		ID:    "b",
		Patch: model.EmailPatch{IsRead: &read},
	})

	assert.False(t, s.Emails[0].IsRead)
	assert.True(t, s.Emails[1].IsRead)
	assert.False(t, s.Emails[2].IsRead)
	// Untouched fields survive the merge.
	assert.Equal(t, "second", s.Emails[1].Subject)
}

func TestUpdateEmailUnknownIDIsNoOp(t *testing.T) {
	s := stateWith(testEmails())
	read := true

	next := mustApply(t, s, UpdateEmail{
		ID:    "zzz",
		Patch: model.EmailPatch{IsRead: &read},
	})

	assert.Equal(t, s.Emails, next.Emails)
}

func TestSetCurrentFolderKeepsEmails(t *testing.T) {
	s := stateWith(testEmails())

	s = mustApply(t, s, SetCurrentFolder{Folder: model.FolderJunk})

	assert.Equal(t, model.FolderJunk, s.CurrentFolder)
	// The caller is responsible for the follow-up fetch; the list stays.
	assert.Len(t, s.Emails, 3)
}

func TestFlagsRoundTrip(t *testing.T) {
	s := NewState(model.FolderInbox)

	s = mustApply(t, s, SetLoggedIn{LoggedIn: true})
	s = mustApply(t, s, SetLoadingEmails{Loading: true})
	s = mustApply(t, s, SetSearching{Searching: true})

	assert.True(t, s.LoggedIn)
	assert.True(t, s.LoadingEmails)
	assert.True(t, s.Searching)

	s = mustApply(t, s, SetLoadingEmails{Loading: false})
	s = mustApply(t, s, SetSearching{Searching: false})
	assert.False(t, s.LoadingEmails)
	assert.False(t, s.Searching)
}

type bogusAction struct{}

func (bogusAction) isAction() {}

func TestUnknownActionReturnsError(t *testing.T) {
	s := stateWith(testEmails())

	next, err := Apply(s, bogusAction{})

	require.ErrorIs(t, err, ErrUnknownAction)
	// State survives intact; nothing is silently corrupted.
	assert.Equal(t, s.Emails, next.Emails)
}

func TestArchiveSequenceProperty(t *testing.T) {
	// Archiving id "b": loading marker appears, then after the confirmed
	// removal both the email and the marker are gone.
	s := stateWith(testEmails())

	s = mustApply(t, s, AddEmailLoading{ID: "b"})
	assert.True(t, s.IsEmailLoading("b"))

	s = mustApply(t, s, RemoveEmail{ID: "b"})
	s = mustApply(t, s, RemoveEmailLoading{ID: "b"})

	assert.Empty(t, s.EmailsLoading)
	assert.Equal(t, -1, indexOf(s.Emails, "b"))
}

func TestApplyIsDeterministic(t *testing.T) {
	s := stateWith(testEmails())

	first := mustApply(t, s, NextEmail{})
	second := mustApply(t, s, NextEmail{})

	assert.Equal(t, first, second)
}
