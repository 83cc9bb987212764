// internal/session/session.go
package session

import (
	"encoding/json"
	"errors"
)

// ErrNoSession is returned by Load when no session snapshot is persisted.
var ErrNoSession = errors.New("no session stored")

// Session is the client-held proof of authentication: both tokens plus a
// serialized snapshot of the logged-in user. The three fields are always
// written together on login/register and cleared together on logout.
type Session struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	User         json.RawMessage `json:"user"`
}

// IsAuthenticated reports whether the session carries an access token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AccessToken != ""
}

// UserSnapshot decodes the cached user snapshot into out.
func (s *Session) UserSnapshot(out interface{}) error {
	if s == nil || len(s.User) == 0 {
		return ErrNoSession
	}
	return json.Unmarshal(s.User, out)
}

// Store persists the session snapshot between process restarts. All
// implementations treat Save and Clear as atomic with respect to the
// three session fields.
type Store interface {
	// Load returns the current session, or ErrNoSession when none is stored.
	Load() (*Session, error)
	// Save replaces the stored session with the given snapshot.
	Save(sess *Session) error
	// Clear removes the stored session. Clearing an empty store is a no-op.
	Clear() error
}
