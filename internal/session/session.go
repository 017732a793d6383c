// Package session owns the bearer credential for the current user.
//
// The credential lives in a single plain-text file under the user config
// dir; absence of the file means unauthenticated. The store is the only
// writer of that file, and every other component reads the token through
// it so a logout is visible everywhere immediately.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Store holds the current credential and the identity derived from it.
// Readers run on bubbletea command goroutines while Set and Clear run
// from the update loop, so the mutable fields are mutex-guarded.
type Store struct {
	path string

	mu       sync.Mutex
	token    string
	username string
}

// New creates a store persisting to tokenfile inside dir. The file is
// not touched until Set or Clear.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, "token")}
}

// Load reads a previously saved token, if any. A missing file is not an
// error; it just leaves the store unauthenticated.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: reading token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	s.mu.Lock()
	s.token = token
	s.username = usernameFromToken(token)
	s.mu.Unlock()
	return nil
}

// Set stores a new credential, persists it, and derives the identity
// from the token's claims. Claim decoding is best-effort: a token the
// client cannot read still authenticates, it just leaves Username empty.
func (s *Store) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: creating config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("session: writing token file: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.username = usernameFromToken(token)
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted credential and resets the identity.
// Safe to call when already logged out.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: removing token file: %w", err)
	}
	return nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Username returns the identity decoded from the token's sub claim,
// or "" when unknown.
func (s *Store) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// usernameFromToken extracts the sub claim without verifying the
// signature; verification is the server's job. Any failure yields "".
func usernameFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
