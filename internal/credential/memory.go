package credential

import "sync"

// Memory is an in-memory Store used by tests and by the login flow before
// the user chooses to persist a session.
type Memory struct {
	mu      sync.Mutex
	access  string
	refresh string
	account string
}

// NewMemory returns an empty in-memory credential store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) AccessToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.access == "" {
		return "", ErrNotFound
	}
	return m.access, nil
}

func (m *Memory) SetAccessToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = token
	return nil
}

func (m *Memory) RefreshToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refresh == "" {
		return "", ErrNotFound
	}
	return m.refresh, nil
}

func (m *Memory) SetRefreshToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh = token
	return nil
}

func (m *Memory) Account() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.account == "" {
		return "", ErrNotFound
	}
	return m.account, nil
}

func (m *Memory) SetAccount(descriptor string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account = descriptor
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.account = ""
	return nil
}
