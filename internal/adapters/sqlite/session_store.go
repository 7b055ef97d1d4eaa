// Package sqlite provides the durable client-local store. The only state
// kept across sessions is the auth token and role list; everything else the
// console shows is fetched fresh from the API.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/plumbops/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL,
	roles TEXT NOT NULL DEFAULT '[]',
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SessionStore implements session.Store on a local sqlite database.
type SessionStore struct {
	db *sql.DB
}

// DefaultPath returns the database location under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".plumbops", "plumbops.db"), nil
}

// NewSessionStore opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSessionStore(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}
	return &SessionStore{db: db}, nil
}

var _ session.Store = (*SessionStore)(nil)

// Load returns the persisted session, or an empty one when logged out.
func (s *SessionStore) Load() (session.Session, error) {
	var token, roles string
	err := s.db.QueryRow("SELECT token, roles FROM session WHERE id = 1").Scan(&token, &roles)
	if err == sql.ErrNoRows {
		return session.Session{}, nil
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	sess := session.Session{Token: token}
	if err := json.Unmarshal([]byte(roles), &sess.Roles); err != nil {
		// Unreadable roles are not worth failing login state over.
		sess.Roles = nil
	}
	return sess, nil
}

// Save persists the session, replacing any previous one.
func (s *SessionStore) Save(sess session.Session) error {
	roles, err := json.Marshal(sess.Roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO session (id, token, roles, updated_at) VALUES (1, ?, ?, CURRENT_TIMESTAMP) "+
			"ON CONFLICT(id) DO UPDATE SET token = excluded.token, roles = excluded.roles, updated_at = CURRENT_TIMESTAMP",
		sess.Token, string(roles),
	)
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
