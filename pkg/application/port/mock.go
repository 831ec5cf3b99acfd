package port

import (
	"context"
	"sync"

	"github.com/illumination-k/token-helper/pkg/login"
	"github.com/illumination-k/token-helper/pkg/provisioning"
)

// MockTokenStore is an in-memory TokenStore for testing
type MockTokenStore struct {
	mu sync.Mutex

	Token     string
	JSONFile  string
	JSFile    string
	Warnings  []string
	WriteFunc func(token string) error
	WatchFunc func(ctx context.Context, onChange func(path string)) error

	WriteCalls []string
}

// NewMockTokenStore creates a mock store holding token
func NewMockTokenStore(token string) *MockTokenStore {
	return &MockTokenStore{
		Token:      token,
		JSONFile:   "/tmp/http-client.private.env.json",
		JSFile:     "/tmp/config.js",
		WriteCalls: []string{},
	}
}

func (m *MockTokenStore) ReadCurrentToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Token
}

// WriteToken records the call and stores token unless WriteFunc fails
func (m *MockTokenStore) WriteToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCalls = append(m.WriteCalls, token)
	if m.WriteFunc != nil {
		if err := m.WriteFunc(token); err != nil {
			return err
		}
	}
	m.Token = token
	return nil
}

func (m *MockTokenStore) ValidatePaths() []string {
	return m.Warnings
}

// Watch blocks until ctx is done unless WatchFunc is set
func (m *MockTokenStore) Watch(ctx context.Context, onChange func(path string)) error {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, onChange)
	}
	<-ctx.Done()
	return nil
}

func (m *MockTokenStore) JSONPath() string { return m.JSONFile }
func (m *MockTokenStore) JSPath() string   { return m.JSFile }

// GetWriteCalls returns all written tokens (for test assertions)
func (m *MockTokenStore) GetWriteCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// MockTokenLookup is a mock TokenLookup for testing
type MockTokenLookup struct {
	FetchFunc  func(ctx context.Context, id provisioning.ID) (string, string, error)
	FetchCalls []provisioning.ID
}

// NewMockTokenLookup creates a mock lookup answering every id with username and token
func NewMockTokenLookup(username, token string) *MockTokenLookup {
	return &MockTokenLookup{
		FetchFunc: func(context.Context, provisioning.ID) (string, string, error) {
			return username, token, nil
		},
		FetchCalls: []provisioning.ID{},
	}
}

// FetchLatestToken records the call and delegates to FetchFunc
func (m *MockTokenLookup) FetchLatestToken(ctx context.Context, id provisioning.ID) (string, string, error) {
	m.FetchCalls = append(m.FetchCalls, id)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, id)
	}
	return "", "", nil
}

// MockLoginProber is a mock LoginProber for testing
type MockLoginProber struct {
	ProbeFunc  func(ctx context.Context, id provisioning.ID, section, locale string) (*login.Result, error)
	ProbeCalls []ProbeCall
}

// ProbeCall records a call to Probe
type ProbeCall struct {
	ID      provisioning.ID
	Section string
	Locale  string
}

// NewMockLoginProber creates a mock prober that answers with status 200 and an empty body
func NewMockLoginProber() *MockLoginProber {
	return &MockLoginProber{
		ProbeCalls: []ProbeCall{},
	}
}

// Probe records the call and delegates to ProbeFunc
func (m *MockLoginProber) Probe(ctx context.Context, id provisioning.ID, section, locale string) (*login.Result, error) {
	m.ProbeCalls = append(m.ProbeCalls, ProbeCall{ID: id, Section: section, Locale: locale})
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, id, section, locale)
	}
	return &login.Result{Status: 200, Headers: map[string]string{}}, nil
}
