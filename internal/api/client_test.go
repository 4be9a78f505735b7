package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/webmail/internal/credential"
	"github.com/nhle/webmail/internal/model"
)

// fakeRefresher counts refresh attempts and hands out a fixed token.
type fakeRefresher struct {
	calls int32
	token string
	err   error
}

func (f *fakeRefresher) Refresh(_ context.Context, refreshToken string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func newTestStore(t *testing.T) *credential.Memory {
	t.Helper()
	creds := credential.NewMemory()
	require.NoError(t, creds.SetAccessToken("stale-token"))
	require.NoError(t, creds.SetRefreshToken("refresh-credential"))
	return creds
}

func TestFolderEmailsAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/inbox/emails", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"m1","subject":"hello"}]`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	client := NewClient(srv.URL, creds, &fakeRefresher{}, time.Second)

	emails, err := client.FolderEmails(context.Background(), model.FolderInbox)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "m1", emails[0].ID)
	assert.Equal(t, "Bearer stale-token", gotAuth)
}

func TestUnauthorizedThenRefreshRetriesExactlyOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			assert.Equal(t, "Bearer stale-token", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	refresher := &fakeRefresher{token: "fresh-token"}
	client := NewClient(srv.URL, creds, refresher, time.Second)

	_, err := client.FolderEmails(context.Background(), model.FolderInbox)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&refresher.calls))

	// The refreshed token was persisted.
	stored, err := creds.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", stored)
}

func TestUnauthorizedWithFailedRefreshClearsCredentials(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := newTestStore(t)
	refresher := &fakeRefresher{err: errors.New("invalid_grant")}
	client := NewClient(srv.URL, creds, refresher, time.Second)

	_, err := client.FolderEmails(context.Background(), model.FolderInbox)
	require.Error(t, err)
	assert.True(t, IsAuthError(err))

	// No retry after a failed refresh.
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	_, err = creds.AccessToken()
	assert.ErrorIs(t, err, credential.ErrNotFound)
	_, err = creds.RefreshToken()
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestUnauthorizedTwiceDoesNotLoop(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := newTestStore(t)
	refresher := &fakeRefresher{token: "fresh-token"}
	client := NewClient(srv.URL, creds, refresher, time.Second)

	_, err := client.FolderEmails(context.Background(), model.FolderInbox)
	require.Error(t, err)
	assert.True(t, IsAuthError(err))

	// Original call plus exactly one retry.
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&refresher.calls))

	_, err = creds.AccessToken()
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestServerErrorSurfacesAsRequestError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	creds := newTestStore(t)
	client := NewClient(srv.URL, creds, &fakeRefresher{}, time.Second)

	err := client.Archive(context.Background(), "m1")
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.False(t, IsAuthError(err))

	// Non-401 errors are never retried.
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// Credentials survive a plain request failure.
	stored, err := creds.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "stale-token", stored)
}

func TestTransportFailureSurfacesAsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	creds := newTestStore(t)
	client := NewClient(srv.URL, creds, &fakeRefresher{}, time.Second)

	_, err := client.Search(context.Background(), "report")
	require.Error(t, err)

	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestMissingAccessTokenIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued without a token")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, credential.NewMemory(), &fakeRefresher{}, time.Second)

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestToggleUnreadReturnsUpdatedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/emails/m7/unread", r.URL.Path)
		_, _ = w.Write([]byte(`{"isRead":false}`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	client := NewClient(srv.URL, creds, &fakeRefresher{}, time.Second)

	patch, err := client.ToggleUnread(context.Background(), "m7")
	require.NoError(t, err)
	require.NotNil(t, patch.IsRead)
	assert.False(t, *patch.IsRead)
}

func TestSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	client := NewClient(srv.URL, creds, &fakeRefresher{}, time.Second)

	_, err := client.Search(context.Background(), "quarterly report & budget")
	require.NoError(t, err)
	assert.Equal(t, "quarterly report & budget", gotQuery)
}
