// internal/storetest/client.go
package storetest

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/session"
)

// AccessToken mints a valid access token for a seeded user, so tests can
// establish a session without going through the login endpoint.
func (s *Server) AccessToken(userID int) string {
	return s.issueToken(userID, "access", time.Hour)
}

// NewClient starts the fake API on an httptest server and returns an API
// client wired to it with an in-memory session store. The server is shut
// down when the test finishes.
func NewClient(t testing.TB, srv *Server) (*api.Client, session.Store) {
	t.Helper()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL:        ts.URL + "/api",
			RequestTimeout: 10 * time.Second,
			UserAgent:      "storefront-client/test",
		},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sessions := session.NewMemoryStore()
	return api.NewClient(cfg, sessions, logger), sessions
}

// LoginAs stores a session for a seeded user directly in the given store
func (s *Server) LoginAs(t testing.TB, sessions session.Store, userID int) {
	t.Helper()

	err := sessions.Save(&session.Session{
		AccessToken:  s.AccessToken(userID),
		RefreshToken: s.issueToken(userID, "refresh", 24*time.Hour),
		User:         []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("failed to store session: %v", err)
	}
}
