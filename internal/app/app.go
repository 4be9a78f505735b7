package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/webmail/internal/api"
	"github.com/nhle/webmail/internal/auth"
	"github.com/nhle/webmail/internal/credential"
	"github.com/nhle/webmail/internal/engine"
	"github.com/nhle/webmail/internal/keys"
	"github.com/nhle/webmail/internal/mailbox"
	"github.com/nhle/webmail/internal/model"
	"github.com/nhle/webmail/internal/search"
	"github.com/nhle/webmail/internal/store"
	"github.com/nhle/webmail/internal/ui"
	helpview "github.com/nhle/webmail/internal/ui/help"
	loginview "github.com/nhle/webmail/internal/ui/login"
	"github.com/nhle/webmail/internal/ui/maillist"
	"github.com/nhle/webmail/internal/ui/reader"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewList
	ViewReader
	ViewHelp
)

// Model is the root Bubble Tea model. It owns the mailbox state; every
// change to it goes through the transition function, and the sub-views
// render what the state says.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	state mailbox.State

	store   store.Store
	creds   credential.Store
	client  *api.Client
	fetcher *engine.Fetcher
	mutator *engine.Mutator
	flow    *auth.Flow
	pending *auth.PendingLogin

	keys       *keys.KeyMap
	mailList   maillist.Model
	readerView reader.Model
	helpView   helpview.Model
	loginView  loginview.Model

	profile    *model.Profile
	errMessage string
	ready      bool
}

// Deps bundles the wired-up services the root model runs on.
type Deps struct {
	Store   store.Store
	Creds   credential.Store
	Client  *api.Client
	Fetcher *engine.Fetcher
	Mutator *engine.Mutator
	Flow    *auth.Flow
}

// New creates the root application model, positioned on the given folder.
func New(deps Deps, folder model.Folder) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewLogin,
		state:       mailbox.NewState(folder),
		store:       deps.Store,
		creds:       deps.Creds,
		client:      deps.Client,
		fetcher:     deps.Fetcher,
		mutator:     deps.Mutator,
		flow:        deps.Flow,
		keys:        k,
		mailList:    maillist.New(k, 80, 24),
		readerView:  reader.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		loginView:   loginview.New(80, 24),
	}
}

// Init resumes the stored session when a token exists, otherwise starts at
// the sign-in view.
func (m Model) Init() tea.Cmd {
	creds := m.creds
	return func() tea.Msg {
		token, err := creds.AccessToken()
		return sessionResumedMsg{loggedIn: err == nil && token != ""}
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.mailList.SetSize(contentWidth, contentHeight)
		m.readerView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.loginView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionResumedMsg:
		if !msg.loggedIn {
			m.currentView = ViewLogin
			return m, m.loginView.Init()
		}
		m.apply(mailbox.SetLoggedIn{LoggedIn: true})
		m.currentView = ViewList
		return m, tea.Batch(
			m.startFolderLoad(m.state.CurrentFolder),
			m.loadProfile(),
		)

	case loginview.StartRequestedMsg:
		return m.startLogin()

	case loginview.CancelRequestedMsg:
		return m.cancelLogin()

	case loginDoneMsg:
		return m.finishLogin(msg)

	case profileLoadedMsg:
		return m.handleProfileLoaded(msg)

	case engine.EmailsLoadedMsg:
		return m.handleEmailsLoaded(msg)

	case engine.SearchLoadedMsg:
		return m.handleSearchLoaded(msg)

	case engine.MutationDoneMsg:
		return m.handleMutationDone(msg)

	case search.SettledMsg:
		return m.handleQuerySettled(msg)

	case maillist.OpenEmailMsg:
		return m.openEmail(msg.Email)

	case reader.BackMsg:
		m.apply(mailbox.SetSelectedEmail{Email: nil})
		m.currentView = ViewList
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewList:
		m.mailList, cmd = m.mailList.Update(msg)
	case ViewReader:
		m.readerView, cmd = m.readerView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	header := m.layout.RenderHeader("Webmail", m.accountLabel())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.mailList.View()
	case ViewReader:
		return m.readerView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// accountLabel returns the header's right-hand account segment.
func (m Model) accountLabel() string {
	if m.profile == nil {
		return ""
	}
	return m.profile.Address()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Show the last error prominently when present.
	if m.errMessage != "" && m.currentView == ViewList {
		return m.errMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewReader:
		return "esc back | j/k scroll | e archive | ! spam | u toggle read"
	default:
		if m.state.LoadingEmails {
			return "loading emails..."
		}
		if m.state.LoadingSearch {
			return "searching..."
		}
		return "q quit | ? help | / search | e archive | ! spam | 1-5 folders"
	}
}
