package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/nhle/webmail/internal/model"
)

// Flow drives the interactive OAuth2 login against the identity provider:
// PKCE authorization-code flow with a localhost redirect listener.
type Flow struct {
	cfg          *oauth2.Config
	redirectPort int
}

// NewFlow builds a login flow from the application's OAuth settings.
func NewFlow(cfg model.OAuthConfig) *Flow {
	return &Flow{
		cfg: &oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.Authority + "/authorize",
				TokenURL: cfg.Authority + "/token",
			},
			RedirectURL: fmt.Sprintf(
				"http://localhost:%d/redirect", cfg.RedirectPort,
			),
			Scopes: cfg.Scopes,
		},
		redirectPort: cfg.RedirectPort,
	}
}

// PendingLogin is a started login attempt: the URL the user must open in a
// browser, and a redirect listener waiting for the provider to call back.
type PendingLogin struct {
	AuthURL string

	flow     *Flow
	verifier string
	state    string
	server   *http.Server
	codeCh   chan string
	errCh    chan error
}

// Begin starts the redirect listener and returns the authorization URL to
// present to the user. The caller must finish with Wait or Cancel.
func (f *Flow) Begin() (*PendingLogin, error) {
	verifier := oauth2.GenerateVerifier()
	state := oauth2.GenerateVerifier()

	p := &PendingLogin{
		flow:     f,
		verifier: verifier,
		state:    state,
		codeCh:   make(chan string, 1),
		errCh:    make(chan error, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/redirect", p.handleRedirect)

	p.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", f.redirectPort),
		Handler: mux,
	}

	go func() {
		if err := p.server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			p.errCh <- err
		}
	}()

	p.AuthURL = f.cfg.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	return p, nil
}

// handleRedirect captures the authorization code from the provider's
// callback request.
func (p *PendingLogin) handleRedirect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("state") != p.state {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		p.errCh <- errors.New("authorization state mismatch")
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "authorization code not received", http.StatusBadRequest)
		p.errCh <- errors.New("authorization code not received")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Login complete. Go back to your terminal :)"))
	p.codeCh <- code
}

// Wait blocks until the provider redirects back, then exchanges the code
// for a token. The redirect listener is shut down before returning.
func (p *PendingLogin) Wait(ctx context.Context) (*oauth2.Token, error) {
	defer p.shutdown()

	var code string
	select {
	case code = <-p.codeCh:
	case err := <-p.errCh:
		return nil, fmt.Errorf("redirect listener: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := p.flow.cfg.Exchange(
		ctx, code, oauth2.VerifierOption(p.verifier),
	)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	return token, nil
}

// Cancel aborts a pending login and stops the redirect listener.
func (p *PendingLogin) Cancel() {
	p.shutdown()
}

func (p *PendingLogin) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = p.server.Shutdown(ctx)
}

// TokenRefresher exchanges a stored refresh credential for a new access
// token without user interaction. It satisfies the api.Refresher contract.
type TokenRefresher struct {
	cfg *oauth2.Config
}

// NewTokenRefresher builds a silent refresher from the OAuth settings.
func NewTokenRefresher(cfg model.OAuthConfig) *TokenRefresher {
	return &TokenRefresher{
		cfg: &oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.Authority + "/authorize",
				TokenURL: cfg.Authority + "/token",
			},
			Scopes: cfg.Scopes,
		},
	}
}

// Refresh obtains a fresh access token from the refresh credential.
func (r *TokenRefresher) Refresh(
	ctx context.Context,
	refreshToken string,
) (string, error) {
	source := r.cfg.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
	})

	token, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("refreshing token: %w", err)
	}

	return token.AccessToken, nil
}
