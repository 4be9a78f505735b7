package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/webmail/internal/model"
)

// fakeMailbox implements EmailLister and EmailMutator in memory.
type fakeMailbox struct {
	emails    []model.Email
	searchHit []model.Email
	err       error

	archived []string
	spammed  []string
	toggled  []string
}

func (f *fakeMailbox) FolderEmails(_ context.Context, _ model.Folder) ([]model.Email, error) {
	return f.emails, f.err
}

func (f *fakeMailbox) Search(_ context.Context, _ string) ([]model.Email, error) {
	return f.searchHit, f.err
}

func (f *fakeMailbox) Archive(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.archived = append(f.archived, id)
	return nil
}

func (f *fakeMailbox) MarkSpam(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.spammed = append(f.spammed, id)
	return nil
}

func (f *fakeMailbox) ToggleUnread(_ context.Context, id string) (model.EmailPatch, error) {
	if f.err != nil {
		return model.EmailPatch{}, f.err
	}
	f.toggled = append(f.toggled, id)
	read := false
	return model.EmailPatch{IsRead: &read}, nil
}

func TestLoadFolderProducesEmails(t *testing.T) {
	mb := &fakeMailbox{emails: []model.Email{{ID: "m1"}, {ID: "m2"}}}
	f := NewFetcher(mb, time.Second)

	msg := f.LoadFolder(model.FolderInbox)()

	loaded, ok := msg.(EmailsLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, model.FolderInbox, loaded.Folder)
	assert.Len(t, loaded.Emails, 2)
	assert.True(t, f.IsCurrentFolderLoad(loaded))
}

func TestLoadFolderErrorIsCarried(t *testing.T) {
	mb := &fakeMailbox{err: errors.New("boom")}
	f := NewFetcher(mb, time.Second)

	msg := f.LoadFolder(model.FolderInbox)()

	loaded, ok := msg.(EmailsLoadedMsg)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestSupersededFolderLoadIsStale(t *testing.T) {
	mb := &fakeMailbox{emails: []model.Email{{ID: "m1"}}}
	f := NewFetcher(mb, time.Second)

	first := f.LoadFolder(model.FolderInbox)
	second := f.LoadFolder(model.FolderJunk)

	// The slow first response arrives after the second was issued.
	firstMsg := first().(EmailsLoadedMsg)
	secondMsg := second().(EmailsLoadedMsg)

	assert.False(t, f.IsCurrentFolderLoad(firstMsg))
	assert.True(t, f.IsCurrentFolderLoad(secondMsg))
}

func TestSupersededSearchIsStale(t *testing.T) {
	mb := &fakeMailbox{searchHit: []model.Email{{ID: "m1"}}}
	f := NewFetcher(mb, time.Second)

	first := f.SearchQuery("repo")
	second := f.SearchQuery("report")

	firstMsg := first().(SearchLoadedMsg)
	secondMsg := second().(SearchLoadedMsg)

	assert.False(t, f.IsCurrentSearch(firstMsg))
	assert.True(t, f.IsCurrentSearch(secondMsg))
	assert.Equal(t, "report", secondMsg.Query)
}

func TestArchiveReportsCompletion(t *testing.T) {
	mb := &fakeMailbox{}
	m := NewMutator(mb, time.Second)

	msg := m.Archive("m42", true)()

	done, ok := msg.(MutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, MutationArchive, done.Kind)
	assert.Equal(t, "m42", done.ID)
	assert.True(t, done.AutoAdvance)
	assert.Equal(t, []string{"m42"}, mb.archived)
}

func TestMarkSpamFailureCarriesError(t *testing.T) {
	mb := &fakeMailbox{err: errors.New("boom")}
	m := NewMutator(mb, time.Second)

	msg := m.MarkSpam("m42", false)()

	done, ok := msg.(MutationDoneMsg)
	require.True(t, ok)
	assert.Error(t, done.Err)
	assert.Equal(t, MutationSpam, done.Kind)
	assert.Empty(t, mb.spammed)
}

func TestToggleUnreadCarriesPatch(t *testing.T) {
	mb := &fakeMailbox{}
	m := NewMutator(mb, time.Second)

	msg := m.ToggleUnread("m7")()

	done, ok := msg.(MutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, MutationToggleUnread, done.Kind)
	require.NotNil(t, done.Patch.IsRead)
	assert.False(t, *done.Patch.IsRead)
}
