// Package client is a Go client for the inkwell API. It keeps at most one
// authenticated session, persisted on disk so it survives restarts.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"inkwell/internal/models"
)

// Session is the client-held {profile, token} pair. The token is opaque;
// the client never inspects it.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// LoggedIn reports whether the session holds a token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// SessionStore persists the session as JSON in a single file.
type SessionStore struct {
	path string
}

// NewSessionStore creates a store rooted at path. If path is empty the
// default location under the user config dir is used.
func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "inkwell", "session.json")
	}
	return &SessionStore{path: path}, nil
}

// Load reads the persisted session. A missing file means no session and
// returns (nil, nil).
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Save replaces any prior session wholesale.
func (s *SessionStore) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// The session file carries a credential; keep it owner-only.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is not
// an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
