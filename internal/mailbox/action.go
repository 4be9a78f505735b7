package mailbox

import "github.com/nhle/webmail/internal/model"

// Action is the closed set of state transitions. Controllers construct
// actions and hand them to Apply; nothing else changes State.
type Action interface {
	isAction()
}

// SetLoggedIn records the session's authentication status. Clearing stored
// credentials on logout is the caller's side effect, not the reducer's.
type SetLoggedIn struct {
	LoggedIn bool
}

// SetLoadingEmails toggles the folder-load flag.
type SetLoadingEmails struct {
	Loading bool
}

// SetLoadingSearch toggles the search-load flag.
type SetLoadingSearch struct {
	Loading bool
}

// SetEmails replaces the email list with a fresh server result. Selection
// is kept; its index is recomputed against the new list.
type SetEmails struct {
	Emails []model.Email
}

// RemoveEmail drops the email with the given id. Removing the selected
// email clears the selection; an absent id is a safe no-op.
type RemoveEmail struct {
	ID string
}

// UpdateEmail merges patch fields into the matching email only.
type UpdateEmail struct {
	ID    string
	Patch model.EmailPatch
}

// SetSelectedEmail selects the given email, or clears the selection when
// Email is nil.
type SetSelectedEmail struct {
	Email *model.Email
}

// NextEmail moves the selection one position down; with no prior selection
// it selects the first email. A no-op at the end of the list.
type NextEmail struct{}

// PreviousEmail moves the selection one position up. A no-op at the top.
type PreviousEmail struct{}

// AddEmailLoading marks an email as having an in-flight mutation.
// Idempotent: adding twice is the same as adding once.
type AddEmailLoading struct {
	ID string
}

// RemoveEmailLoading clears an email's in-flight mutation marker.
type RemoveEmailLoading struct {
	ID string
}

// SetCurrentFolder switches the active folder. It does not clear the email
// list; the caller follows up with the loading/fetch sequence.
type SetCurrentFolder struct {
	Folder model.Folder
}

// SetSearching toggles search mode.
type SetSearching struct {
	Searching bool
}

func (SetLoggedIn) isAction()        {}
func (SetLoadingEmails) isAction()   {}
func (SetLoadingSearch) isAction()   {}
func (SetEmails) isAction()          {}
func (RemoveEmail) isAction()        {}
func (UpdateEmail) isAction()        {}
func (SetSelectedEmail) isAction()   {}
func (NextEmail) isAction()          {}
func (PreviousEmail) isAction()      {}
func (AddEmailLoading) isAction()    {}
func (RemoveEmailLoading) isAction() {}
func (SetCurrentFolder) isAction()   {}
func (SetSearching) isAction()       {}
