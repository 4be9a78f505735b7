package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/webmail/internal/credential"
)

// Refresher obtains a fresh access token from the identity provider using
// a stored refresh credential, without user interaction.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Client issues authenticated calls against the mailbox API. Every request
// carries the current bearer token from the credential store. A 401
// response triggers exactly one silent refresh followed by one retry; if
// either fails the stored credentials are cleared and the call surfaces an
// AuthError. The client never loops.
type Client struct {
	baseURL    string
	creds      credential.Store
	refresher  Refresher
	httpClient *http.Client
}

// NewClient creates a mailbox API client. baseURL is the root URL of the
// API (e.g. http://localhost:3000/api).
func NewClient(
	baseURL string,
	creds credential.Store,
	refresher Refresher,
	timeout time.Duration,
) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		creds:     creds,
		refresher: refresher,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// get performs an authenticated GET and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// put performs an authenticated PUT with an optional JSON body.
func (c *Client) put(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// do is the core request method: token attach, single refresh-and-retry on
// 401, JSON (de)serialization.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	token, err := c.creds.AccessToken()
	if err != nil {
		return &AuthError{Message: "no access token stored"}
	}

	status, respBody, err := c.roundTrip(ctx, method, path, body, token)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}

	if status == http.StatusUnauthorized {
		status, respBody, err = c.refreshAndRetry(ctx, method, path, body)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return &RequestError{Method: method, Path: path, Status: status}
	}

	if result == nil || status == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return &RequestError{
			Method: method,
			Path:   path,
			Status: status,
			Err:    fmt.Errorf("unmarshaling response: %w", err),
		}
	}

	return nil
}

// refreshAndRetry runs the single-retry-on-expiry protocol: one silent
// token refresh, one retried call. Any failure clears stored credentials.
func (c *Client) refreshAndRetry(
	ctx context.Context,
	method string,
	path string,
	body interface{},
) (int, []byte, error) {
	refreshToken, err := c.creds.RefreshToken()
	if err != nil {
		_ = c.creds.Clear()
		return 0, nil, &AuthError{Message: "no refresh credential stored"}
	}

	newToken, err := c.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		_ = c.creds.Clear()
		return 0, nil, &AuthError{
			Message: fmt.Sprintf("token refresh failed: %v", err),
		}
	}

	if err := c.creds.SetAccessToken(newToken); err != nil {
		return 0, nil, &RequestError{
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("storing refreshed token: %w", err),
		}
	}

	status, respBody, err := c.roundTrip(ctx, method, path, body, newToken)
	if err != nil {
		return 0, nil, &RequestError{Method: method, Path: path, Err: err}
	}

	if status == http.StatusUnauthorized {
		// The refreshed token was rejected too; give up.
		_ = c.creds.Clear()
		return 0, nil, &AuthError{
			Message: "still unauthorized after token refresh",
		}
	}

	return status, respBody, nil
}

// roundTrip builds and executes a single HTTP request with the given token.
func (c *Client) roundTrip(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	token string,
) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL+path, bodyReader,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", readErr)
	}

	return resp.StatusCode, respBody, nil
}
