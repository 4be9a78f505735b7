package mailbox

import (
	"errors"
	"fmt"

	"github.com/nhle/webmail/internal/model"
)

// ErrUnknownAction is returned by Apply for action kinds outside the closed
// set. Callers decide whether to log-and-ignore or fail hard; the previous
// state is always returned intact alongside the error.
var ErrUnknownAction = errors.New("unknown action")

// Apply is the transition function: given the same (state, action) pair it
// always produces the same result. No-op transitions return the input state
// unchanged.
func Apply(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SetLoggedIn:
		s.LoggedIn = a.LoggedIn
		return s, nil

	case SetLoadingEmails:
		s.LoadingEmails = a.Loading
		return s, nil

	case SetLoadingSearch:
		s.LoadingSearch = a.Loading
		return s, nil

	case SetEmails:
		s.Emails = a.Emails
		s.TotalEmails = len(a.Emails)
		if s.Selected != nil {
			s.Selected = &Selection{
				ID:    s.Selected.ID,
				Index: indexOf(s.Emails, s.Selected.ID),
			}
		}
		return s, nil

	case RemoveEmail:
		idx := indexOf(s.Emails, a.ID)
		if idx < 0 {
			// Stale reference; the email is already gone.
			return s, nil
		}
		emails := make([]model.Email, 0, len(s.Emails)-1)
		emails = append(emails, s.Emails[:idx]...)
		emails = append(emails, s.Emails[idx+1:]...)
		s.Emails = emails
		s.TotalEmails = len(emails)
		if s.Selected != nil {
			if s.Selected.ID == a.ID {
				// Never silently reassign a removed selection.
				s.Selected = nil
			} else {
				s.Selected = &Selection{
					ID:    s.Selected.ID,
					Index: indexOf(s.Emails, s.Selected.ID),
				}
			}
		}
		return s, nil

	case UpdateEmail:
		idx := indexOf(s.Emails, a.ID)
		if idx < 0 {
			return s, nil
		}
		emails := make([]model.Email, len(s.Emails))
		copy(emails, s.Emails)
		emails[idx] = a.Patch.Apply(emails[idx])
		s.Emails = emails
		return s, nil

	case SetSelectedEmail:
		if a.Email == nil {
			s.Selected = nil
			return s, nil
		}
		s.Selected = &Selection{
			ID:    a.Email.ID,
			Index: indexOf(s.Emails, a.Email.ID),
		}
		return s, nil

	case NextEmail:
		if len(s.Emails) == 0 {
			return s, nil
		}
		if s.Selected == nil {
			s.Selected = &Selection{ID: s.Emails[0].ID, Index: 0}
			return s, nil
		}
		idx := indexOf(s.Emails, s.Selected.ID)
		if idx < 0 {
			// Selection no longer in the list; restart at the top.
			s.Selected = &Selection{ID: s.Emails[0].ID, Index: 0}
			return s, nil
		}
		if idx >= len(s.Emails)-1 {
			return s, nil
		}
		s.Selected = &Selection{ID: s.Emails[idx+1].ID, Index: idx + 1}
		return s, nil

	case PreviousEmail:
		if s.Selected == nil {
			return s, nil
		}
		idx := indexOf(s.Emails, s.Selected.ID)
		if idx <= 0 {
			return s, nil
		}
		s.Selected = &Selection{ID: s.Emails[idx-1].ID, Index: idx - 1}
		return s, nil

	case AddEmailLoading:
		if _, ok := s.EmailsLoading[a.ID]; ok {
			return s, nil
		}
		loading := cloneLoading(s.EmailsLoading)
		loading[a.ID] = struct{}{}
		s.EmailsLoading = loading
		return s, nil

	case RemoveEmailLoading:
		if _, ok := s.EmailsLoading[a.ID]; !ok {
			return s, nil
		}
		loading := cloneLoading(s.EmailsLoading)
		delete(loading, a.ID)
		s.EmailsLoading = loading
		return s, nil

	case SetCurrentFolder:
		s.CurrentFolder = a.Folder
		return s, nil

	case SetSearching:
		s.Searching = a.Searching
		return s, nil

	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
}
