// Package session owns every piece of client state that outlives a
// single command: the staff bearer token and user descriptor, the
// active participant UID carried across the payment-page round trip,
// and the spot-mode flag. Nothing else reads or writes the session
// file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SXPXL/eventflow/internal/dependencies/clock"
	"github.com/SXPXL/eventflow/internal/model"
)

// state is the on-disk shape of the session file
type state struct {
	Token     string           `json:"token,omitempty"`
	Staff     *model.StaffUser `json:"staff,omitempty"`
	ActiveUID model.UID        `json:"active_uid,omitempty"`
	SpotMode  bool             `json:"spot_mode,omitempty"`
}

// Store persists session state to a single JSON file
type Store struct {
	path  string
	clock clock.Clock
	state state
}

// Open loads the session file at path, creating an empty session if the
// file does not exist yet
func Open(path string, clk clock.Clock) (*Store, error) {
	s := &Store{path: path, clock: clk}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return s, nil
}

// DefaultPath returns the session file location under the user's home
// directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventflow/session.json"
	}
	return filepath.Join(home, ".eventflow", "session.json")
}

// Token returns the stored bearer token, or empty when logged out
func (s *Store) Token() string {
	return s.state.Token
}

// Staff returns the stored staff descriptor, or nil when logged out
func (s *Store) Staff() *model.StaffUser {
	return s.state.Staff
}

// SetStaff stores a staff login result
func (s *Store) SetStaff(token string, user model.StaffUser) error {
	s.state.Token = token
	s.state.Staff = &user
	return s.save()
}

// ClearStaff drops the token and staff descriptor. It is called on
// logout and by the portal client when any request comes back 401, so
// a rejected token never lingers.
func (s *Store) ClearStaff() error {
	s.state.Token = ""
	s.state.Staff = nil
	return s.save()
}

// ActiveUID returns the participant UID that should survive a
// payment-page round trip
func (s *Store) ActiveUID() model.UID {
	return s.state.ActiveUID
}

// SetActiveUID records the active participant
func (s *Store) SetActiveUID(uid model.UID) error {
	s.state.ActiveUID = uid
	return s.save()
}

// SpotMode reports whether on-site registration mode is enabled.
// Spot mode is what makes the cash payment path available at checkout.
func (s *Store) SpotMode() bool {
	return s.state.SpotMode
}

// SetSpotMode toggles on-site registration mode
func (s *Store) SetSpotMode(on bool) error {
	s.state.SpotMode = on
	return s.save()
}

// Reset clears the whole session
func (s *Store) Reset() error {
	s.state = state{}
	return s.save()
}

func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
