package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session holds the bearer token issued by the backend and the email it
// was issued for. Token presence implies authenticated; the token is never
// validated locally; a 401 from the backend clears it.
type Session struct {
	AccessToken string `json:"access_token,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Path returns the path to the session file (~/.leafdoctor/session.json).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".leafdoctor", "session.json"), nil
}

// Load reads the stored session. Returns an empty session if the file
// doesn't exist.
func Load() (*Session, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &s, nil
}

// Save writes the session with restricted permissions.
func Save(s *Session) error {
	path, err := Path()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Missing files are not an error.
func Clear() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Token returns the bearer token to use for authenticated requests.
// The LEAFDOCTOR_TOKEN environment variable wins over the stored session.
func Token() string {
	if t := os.Getenv("LEAFDOCTOR_TOKEN"); t != "" {
		return t
	}
	s, err := Load()
	if err != nil {
		return ""
	}
	return s.AccessToken
}

// LoggedIn reports whether the session carries a token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.AccessToken != ""
}
