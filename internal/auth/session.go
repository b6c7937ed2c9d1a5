// internal/auth/session.go
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage
	KeyringService = "shelf-cli"
	// FallbackDir is the directory, relative to the home directory, for
	// file-based session storage when the keyring is unavailable
	FallbackDir = ".shelf/sessions"
	// DirEnv forces file-based storage in the named directory
	DirEnv = "SHELF_SESSION_DIR"

	manifestKey = "_manifest"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// SessionData is a saved set of storefront cookies, typically carrying the
// delivery location and language preferences that shape search results
type SessionData struct {
	Name      string            `json:"name"`
	URL       string            `json:"url"`
	Cookies   []Cookie          `json:"cookies"`
	Headers   map[string]string `json:"headers,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at,omitempty"`
}

// Expired reports whether the session's earliest cookie has lapsed
func (s *SessionData) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// store persists serialized sessions
type store interface {
	save(name string, data []byte) error
	load(name string) ([]byte, error)
	delete(name string) error
	list() ([]string, error)
}

var (
	keyringProbe     sync.Once
	keyringAvailable bool
)

// currentStore picks file storage when forced by DirEnv, in CI and
// Codespaces, or when the OS keyring cannot be written
func currentStore() (store, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return fileStore{dir: dir}, nil
	}

	keyringProbe.Do(func() {
		if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
			return
		}
		testKey := "_test_keyring_access_"
		if err := keyring.Set(KeyringService, testKey, "test"); err == nil {
			keyring.Delete(KeyringService, testKey)
			keyringAvailable = true
		}
	})
	if keyringAvailable {
		return keyringStore{}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return fileStore{dir: filepath.Join(home, FallbackDir)}, nil
}

// SaveSession stores a session in the OS keyring or the session directory
func SaveSession(session *SessionData) error {
	if session == nil || session.Name == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	if err := validName(session.Name); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	s, err := currentStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	return s.save(session.Name, data)
}

// LoadSession returns a saved session. Expired sessions are reported with ErrExpired.
func LoadSession(name string) (*SessionData, error) {
	session, err := readSession(name)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrExpired, name)
	}
	return session, nil
}

// InspectSession returns a saved session even when it has expired
func InspectSession(name string) (*SessionData, error) {
	return readSession(name)
}

func readSession(name string) (*SessionData, error) {
	if name == "" {
		return nil, fmt.Errorf("session name cannot be empty")
	}

	s, err := currentStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	data, err := s.load(name)
	if err != nil {
		return nil, err
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to deserialize session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a saved session
func DeleteSession(name string) error {
	if name == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	s, err := currentStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	return s.delete(name)
}

// ListSessions returns the names of all saved sessions in sorted order
func ListSessions() ([]string, error) {
	s, err := currentStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	names, err := s.list()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func validName(name string) error {
	if name == manifestKey || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid session name %q", name)
	}
	return nil
}

type fileStore struct {
	dir string
}

func (f fileStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f fileStore) save(name string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(f.path(name), data, 0600); err != nil {
		return fmt.Errorf("failed to save session file: %w", err)
	}
	return nil
}

func (f fileStore) load(name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session file: %w", err)
	}
	return data, nil
}

func (f fileStore) delete(name string) error {
	err := os.Remove(f.path(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

func (f fileStore) list() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	sessions := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			sessions = append(sessions, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	return sessions, nil
}

// keyringStore keeps each session under its own key plus a manifest of names,
// since keyrings cannot enumerate entries
type keyringStore struct{}

func (keyringStore) save(name string, data []byte) error {
	if err := keyring.Set(KeyringService, name, string(data)); err != nil {
		return fmt.Errorf("failed to save to keyring: %w", err)
	}
	return updateManifest(name, true)
}

func (keyringStore) load(name string) ([]byte, error) {
	data, err := keyring.Get(KeyringService, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load from keyring: %w", err)
	}
	return []byte(data), nil
}

func (keyringStore) delete(name string) error {
	err := keyring.Delete(KeyringService, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return updateManifest(name, false)
}

func (keyringStore) list() ([]string, error) {
	manifestData, err := keyring.Get(KeyringService, manifestKey)
	if err != nil {
		// No manifest exists yet
		return []string{}, nil
	}

	var sessions []string
	if err := json.Unmarshal([]byte(manifestData), &sessions); err != nil {
		return nil, fmt.Errorf("failed to deserialize manifest: %w", err)
	}
	return sessions, nil
}

// updateManifest adds or removes a session from the manifest
func updateManifest(sessionName string, add bool) error {
	sessions, _ := keyringStore{}.list()

	kept := make([]string, 0, len(sessions)+1)
	for _, s := range sessions {
		if s != sessionName {
			kept = append(kept, s)
		}
	}
	if add {
		kept = append(kept, sessionName)
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return keyring.Set(KeyringService, manifestKey, string(data))
}
