package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CorruptStateError marks a state file that exists but cannot be used.
// The CLI offers reset instead of fabricating a session.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt session state at %s: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

// Store persists the session record inside the repository's git directory,
// keeping it out of the working tree.
type Store struct {
	path   string
	logger *slog.Logger
}

const stateFileName = "mob-session.yaml"

func NewStore(gitDir string, logger *slog.Logger) *Store {
	return &Store{path: filepath.Join(gitDir, stateFileName), logger: logger}
}

// Path returns the location of the state file, for user-facing messages.
func (st *Store) Path() string { return st.path }

// Load reads the persisted session. A missing file is not an error and
// yields the NotStarted default.
func (st *Store) Load() (Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Session{}, &CorruptStateError{Path: st.path, Err: err}
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, &CorruptStateError{Path: st.path, Err: err}
	}
	if s.Version != formatVersion {
		return Session{}, &CorruptStateError{Path: st.path, Err: fmt.Errorf("unsupported state version %d", s.Version)}
	}
	if err := s.Validate(); err != nil {
		return Session{}, &CorruptStateError{Path: st.path, Err: err}
	}

	return s, nil
}

// Save persists the full record atomically (write temp file, then rename)
// so a crash mid-write never leaves a half-written file.
func (st *Store) Save(s Session) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid session: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename state file: %w", err)
	}

	st.logger.Debug("session saved", "path", st.path, "phase", s.Phase)
	return nil
}

// Reset removes the persisted state. Missing file is fine.
func (st *Store) Reset() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	st.logger.Debug("session state cleared", "path", st.path)
	return nil
}
