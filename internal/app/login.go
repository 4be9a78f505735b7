package app

import (
	"context"
	"log"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/oauth2"

	"github.com/nhle/webmail/internal/auth"
	"github.com/nhle/webmail/internal/mailbox"
	"github.com/nhle/webmail/internal/model"
	loginview "github.com/nhle/webmail/internal/ui/login"
)

// profileTimeout bounds the account descriptor fetch after sign-in.
const profileTimeout = 15 * time.Second

// loginTimeout bounds how long the redirect listener waits for the browser.
const loginTimeout = 5 * time.Minute

// sessionResumedMsg reports whether a stored token was found at startup.
type sessionResumedMsg struct {
	loggedIn bool
}

// loginDoneMsg carries the outcome of a browser sign-in attempt.
type loginDoneMsg struct {
	token *oauth2.Token
	err   error
}

// profileLoadedMsg carries the fetched account descriptor.
type profileLoadedMsg struct {
	profile *model.Profile
	err     error
}

// startLogin begins the browser sign-in flow: start the redirect listener,
// open the authorization URL, and wait for the provider to call back.
func (m Model) startLogin() (tea.Model, tea.Cmd) {
	pending, err := m.flow.Begin()
	if err != nil {
		m.loginView.SetError(err)
		return m, nil
	}

	m.pending = pending
	m.loginView.SetWaiting(pending.AuthURL)

	return m, tea.Batch(
		openBrowser(pending.AuthURL),
		waitForLogin(pending),
	)
}

// waitForLogin blocks on the redirect listener and exchanges the code.
func waitForLogin(pending *auth.PendingLogin) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()

		token, err := pending.Wait(ctx)
		return loginDoneMsg{token: token, err: err}
	}
}

// cancelLogin aborts a pending sign-in and returns to the welcome screen.
func (m Model) cancelLogin() (tea.Model, tea.Cmd) {
	if m.pending != nil {
		m.pending.Cancel()
		m.pending = nil
	}
	m.loginView = loginview.New(m.layout.ContentWidth(), m.layout.ContentHeight())
	return m, m.loginView.Init()
}

// finishLogin persists the obtained tokens and enters the mailbox.
func (m Model) finishLogin(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.pending = nil

	if msg.err != nil {
		m.loginView.SetError(msg.err)
		return m, nil
	}

	if err := m.creds.SetAccessToken(msg.token.AccessToken); err != nil {
		m.loginView.SetError(err)
		return m, nil
	}
	if msg.token.RefreshToken != "" {
		if err := m.creds.SetRefreshToken(msg.token.RefreshToken); err != nil {
			log.Printf("storing refresh credential: %v", err)
		}
	}

	// A provisional display name from the token keeps the header useful
	// until the profile fetch lands.
	if name, err := auth.PayloadField(msg.token.AccessToken, "name"); err == nil && name != "" {
		m.profile = &model.Profile{DisplayName: name}
	}

	m.apply(mailbox.SetLoggedIn{LoggedIn: true})
	m.currentView = ViewList

	return m, tea.Batch(
		m.startFolderLoad(m.state.CurrentFolder),
		m.loadProfile(),
	)
}

// logout clears credentials and the persisted account, resets the session
// state, and returns to the sign-in view.
func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.creds.Clear(); err != nil {
		log.Printf("clearing credentials: %v", err)
	}

	s := m.store
	deleteAccount := func() tea.Msg {
		if err := s.DeleteAccount(context.Background()); err != nil {
			log.Printf("deleting account record: %v", err)
		}
		return nil
	}

	m.state = mailbox.NewState(model.FolderInbox)
	m.profile = nil
	m.errMessage = ""
	m.mailList.SyncState(m.state)
	m.loginView = loginview.New(m.layout.ContentWidth(), m.layout.ContentHeight())
	m.currentView = ViewLogin

	return m, tea.Batch(deleteAccount, m.loginView.Init())
}

// persistAccount stores the account descriptor locally and in the keyring.
func (m Model) persistAccount(profile model.Profile) tea.Cmd {
	s := m.store
	creds := m.creds
	return func() tea.Msg {
		account := model.Account{
			Address:     profile.Address(),
			DisplayName: profile.DisplayName,
			UpdatedAt:   time.Now().UTC(),
		}
		if err := s.SaveAccount(context.Background(), account); err != nil {
			log.Printf("saving account record: %v", err)
		}
		if err := creds.SetAccount(profile.Address()); err != nil {
			log.Printf("storing account descriptor: %v", err)
		}
		return nil
	}
}

// openBrowser points the user's default browser at the URL. Failure is not
// fatal; the URL stays visible on screen for manual use.
func openBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			log.Printf("opening browser: %v", err)
		}
		return nil
	}
}
