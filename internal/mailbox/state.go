package mailbox

import "github.com/nhle/webmail/internal/model"

// Selection tracks the currently displayed email by id, with the derived
// list index cached alongside. The index is always recomputed from the
// email list and never trusted across a list refresh.
type Selection struct {
	ID    string
	Index int
}

// State is the single source of truth for one mailbox session. It is a
// value: transitions return a new State and never mutate the input, so a
// previous snapshot stays valid for equality checks and tests.
type State struct {
	LoggedIn bool

	CurrentFolder model.Folder

	// Emails is the ordered message list in server-provided order; the
	// client never re-sorts it.
	Emails      []model.Email
	TotalEmails int

	Selected *Selection

	// EmailsLoading holds the ids of emails with an in-flight mutation.
	EmailsLoading map[string]struct{}

	LoadingEmails bool
	LoadingSearch bool
	Searching     bool
}

// NewState returns the initial state for a session, positioned on folder.
func NewState(folder model.Folder) State {
	return State{
		CurrentFolder: folder,
		EmailsLoading: map[string]struct{}{},
	}
}

// SelectedEmail returns the selected email record, if a selection exists
// and still references an id present in the list.
func (s State) SelectedEmail() (model.Email, bool) {
	if s.Selected == nil {
		return model.Email{}, false
	}
	idx := indexOf(s.Emails, s.Selected.ID)
	if idx < 0 {
		return model.Email{}, false
	}
	return s.Emails[idx], true
}

// IsEmailLoading reports whether the email id has an in-flight mutation.
func (s State) IsEmailLoading(id string) bool {
	_, ok := s.EmailsLoading[id]
	return ok
}

// indexOf returns the position of the email with the given id, or -1.
func indexOf(emails []model.Email, id string) int {
	for i, e := range emails {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// cloneLoading copies the loading set so transitions keep value semantics.
func cloneLoading(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
