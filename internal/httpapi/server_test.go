package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/summitmls/reso-odata-gateway/internal/auditbus"
	"github.com/summitmls/reso-odata-gateway/internal/authsvc"
	"github.com/summitmls/reso-odata-gateway/internal/config"
	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
	"github.com/summitmls/reso-odata-gateway/internal/resource"
)

// fakeGateway is a minimal dbgateway.Gateway stand-in shared by this
// package's handler tests.
type fakeGateway struct {
	queryResult *dbgateway.Result
	queryErr    error
}

func (f *fakeGateway) Query(ctx context.Context, query string, params map[string]interface{}) (*dbgateway.Result, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryResult != nil {
		return f.queryResult, nil
	}
	return &dbgateway.Result{}, nil
}

func (f *fakeGateway) QueryRow(ctx context.Context, query string, params map[string]interface{}) (*dbgateway.Result, error) {
	return f.Query(ctx, query, params)
}

func (f *fakeGateway) Ping(ctx context.Context) error { return nil }
func (f *fakeGateway) Close() error                   { return nil }

// memStore is an in-process authsvc.Store for handler tests.
type memStore struct {
	mu      sync.Mutex
	tokens  map[string]*authsvc.StoredToken
	refresh map[string]*authsvc.StoredToken
}

func newMemStore() *memStore {
	return &memStore{
		tokens:  make(map[string]*authsvc.StoredToken),
		refresh: make(map[string]*authsvc.StoredToken),
	}
}

func (m *memStore) Save(ctx context.Context, token, clientID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = &authsvc.StoredToken{ClientID: clientID, ExpiresAt: expiresAt}
	return nil
}

func (m *memStore) Get(ctx context.Context, token string) (*authsvc.StoredToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok {
		return nil, errNotFound
	}
	return t, nil
}

func (m *memStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func (m *memStore) SaveRefresh(ctx context.Context, token, clientID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[token] = &authsvc.StoredToken{ClientID: clientID, ExpiresAt: expiresAt}
	return nil
}

func (m *memStore) GetRefresh(ctx context.Context, token string) (*authsvc.StoredToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.refresh[token]
	if !ok {
		return nil, errNotFound
	}
	return t, nil
}

func (m *memStore) DeleteRefresh(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, token)
	return nil
}

func (m *memStore) Cleanup(ctx context.Context) error { return nil }

type notFoundErr struct{}

func (e *notFoundErr) Error() string { return "not found" }

var errNotFound = &notFoundErr{}

func newTestServer() (*Server, *memStore) {
	cfg := &config.Config{
		BaseURL:            "http://localhost:8080",
		CORSAllowedOrigins: []string{"*"},
		OAuthClientID:      "test-client",
		OAuthClientSecret:  "test-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    30 * 24 * time.Hour,
	}

	store := newMemStore()
	auth := authsvc.NewService(store, cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	audit, _ := auditbus.Connect("")
	gw := &fakeGateway{}
	driver := resource.NewDriver(gw, nil)

	return NewServer(cfg, gw, auth, audit, driver), store
}

func issueTestToken(s *Server) string {
	token, _ := s.auth.IssueClientCredentials(context.Background(), "test-client", "test-secret")
	return token.AccessToken
}

func doRequest(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}
