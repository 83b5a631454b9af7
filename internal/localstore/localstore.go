// Package localstore persists per-user client settings between runs:
// the configured sheet endpoint URL, the last-known company profile and
// the login session token. Everything lives as small JSON files under
// the user config directory, written atomically via a temp file rename.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kittipatv/shopdesk/internal/company"
)

const (
	settingsFile = "settings.json"
	profileFile  = "profile.json"
	sessionFile  = "session.json"
)

// ErrNotFound is returned when a requested record has never been saved.
var ErrNotFound = errors.New("localstore: not found")

type settings struct {
	EndpointURL string `json:"endpoint_url"`
}

type session struct {
	Token string `json:"token"`
}

type Store struct {
	dir string
}

// New opens (creating if needed) the store rooted at dir. An empty dir
// resolves to <user config dir>/shopdesk.
func New(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}

		dir = filepath.Join(base, "shopdesk")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return &Store{dir: dir}, nil
}

// EndpointURL returns the configured sheet endpoint, or "" when unset.
func (s *Store) EndpointURL() string {
	var cfg settings
	if err := s.read(settingsFile, &cfg); err != nil {
		return ""
	}

	return cfg.EndpointURL
}

func (s *Store) SaveEndpointURL(url string) error {
	return s.write(settingsFile, settings{EndpointURL: strings.TrimSpace(url)})
}

func (s *Store) Profile() (*company.Profile, error) {
	var p company.Profile
	if err := s.read(profileFile, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &p, nil
}

func (s *Store) SaveProfile(p company.Profile) error {
	return s.write(profileFile, p)
}

func (s *Store) SessionToken() string {
	var sess session
	if err := s.read(sessionFile, &sess); err != nil {
		return ""
	}

	return sess.Token
}

func (s *Store) SaveSessionToken(token string) error {
	return s.write(sessionFile, session{Token: token})
}

func (s *Store) ClearSession() error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}

	return nil
}

func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	return nil
}
