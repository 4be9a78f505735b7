package engine

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nhle/webmail/internal/model"
)

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

// EmailLister is the slice of the mailbox API the Fetcher needs.
type EmailLister interface {
	FolderEmails(ctx context.Context, folder model.Folder) ([]model.Email, error)
	Search(ctx context.Context, query string) ([]model.Email, error)
}

// EmailsLoadedMsg carries the result of a folder load.
type EmailsLoadedMsg struct {
	RequestID string
	Folder    model.Folder
	Emails    []model.Email
	Err       error
}

// SearchLoadedMsg carries the result of a search query.
type SearchLoadedMsg struct {
	RequestID string
	Query     string
	Emails    []model.Email
	Err       error
}

// Fetcher issues folder listings and search queries as background commands.
// Each request carries an id; only the most recently issued request of each
// kind is considered current, so a slow response for a superseded folder or
// query is dropped instead of clobbering newer results.
type Fetcher struct {
	client  EmailLister
	timeout time.Duration

	mu            sync.Mutex
	currentFolder string
	currentSearch string
}

// NewFetcher creates a Fetcher over the given API client.
func NewFetcher(client EmailLister, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = fetchTimeout
	}
	return &Fetcher{client: client, timeout: timeout}
}

// LoadFolder returns a command that lists the folder's emails.
func (f *Fetcher) LoadFolder(folder model.Folder) tea.Cmd {
	id := uuid.NewString()

	f.mu.Lock()
	f.currentFolder = id
	f.mu.Unlock()

	client := f.client
	timeout := f.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		emails, err := client.FolderEmails(ctx, folder)
		return EmailsLoadedMsg{
			RequestID: id,
			Folder:    folder,
			Emails:    emails,
			Err:       err,
		}
	}
}

// SearchQuery returns a command that runs the search. The caller gates on
// non-empty queries; an empty query never reaches the network.
func (f *Fetcher) SearchQuery(query string) tea.Cmd {
	id := uuid.NewString()

	f.mu.Lock()
	f.currentSearch = id
	f.mu.Unlock()

	client := f.client
	timeout := f.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		emails, err := client.Search(ctx, query)
		return SearchLoadedMsg{
			RequestID: id,
			Query:     query,
			Emails:    emails,
			Err:       err,
		}
	}
}

// IsCurrentFolderLoad reports whether the message belongs to the most
// recently issued folder load.
func (f *Fetcher) IsCurrentFolderLoad(msg EmailsLoadedMsg) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return msg.RequestID == f.currentFolder
}

// IsCurrentSearch reports whether the message belongs to the most recently
// issued search.
func (f *Fetcher) IsCurrentSearch(msg SearchLoadedMsg) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return msg.RequestID == f.currentSearch
}
