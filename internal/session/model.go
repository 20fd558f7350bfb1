package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Phase is the session's current activity state.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseDriving    Phase = "driving"
	PhaseBreak      Phase = "break"
	PhaseLunch      Phase = "lunch"
	PhaseDone       Phase = "done"
)

// Duration wraps time.Duration so the state file stays human-editable
// ("10m0s" instead of nanosecond integers).
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Session is the single record that survives between invocations.
// Everything else is recomputed on each run.
type Session struct {
	Version        int       `yaml:"version"`
	ID             string    `yaml:"id"`
	BaseBranch     string    `yaml:"base_branch"`
	WIPBranch      string    `yaml:"wip_branch"`
	Remote         string    `yaml:"remote"`
	Participants   []string  `yaml:"participants"`
	DriverIndex    int       `yaml:"driver_index"`
	Phase          Phase     `yaml:"phase"`
	PhaseStartedAt time.Time `yaml:"phase_started_at"`
	TurnDuration   Duration  `yaml:"turn_duration"`
	BreakDuration  Duration  `yaml:"break_duration"`
	LunchDuration  Duration  `yaml:"lunch_duration"`
	LunchEvery     int       `yaml:"lunch_every"`
	TurnsSinceLunch int      `yaml:"turns_since_lunch"`
	Turn           int       `yaml:"turn"`
}

const formatVersion = 1

// New creates a fresh session in the Driving phase with the first
// participant as driver.
func New(participants []string, baseBranch, wipBranch, remote string, now time.Time) Session {
	return Session{
		Version:        formatVersion,
		ID:             uuid.NewString(),
		BaseBranch:     baseBranch,
		WIPBranch:      wipBranch,
		Remote:         remote,
		Participants:   participants,
		DriverIndex:    0,
		Phase:          PhaseDriving,
		PhaseStartedAt: now.UTC().Truncate(time.Second),
	}
}

// Default returns the record representing "no session".
func Default() Session {
	return Session{Version: formatVersion, Phase: PhaseNotStarted}
}

// Active reports whether a session is in progress.
func (s Session) Active() bool {
	return s.Phase != PhaseNotStarted && s.Phase != PhaseDone
}

// Driver returns the current driver's name. Only meaningful while driving.
func (s Session) Driver() string {
	if s.DriverIndex < 0 || s.DriverIndex >= len(s.Participants) {
		return ""
	}
	return s.Participants[s.DriverIndex]
}

// Validate checks the structural invariants the rest of the tool relies on.
func (s Session) Validate() error {
	switch s.Phase {
	case PhaseNotStarted, PhaseDriving, PhaseBreak, PhaseLunch, PhaseDone:
	default:
		return fmt.Errorf("unknown phase %q", s.Phase)
	}
	if s.Phase == PhaseNotStarted {
		return nil
	}
	if len(s.Participants) == 0 {
		return fmt.Errorf("phase %s with empty roster", s.Phase)
	}
	if s.Phase == PhaseDriving && (s.DriverIndex < 0 || s.DriverIndex >= len(s.Participants)) {
		return fmt.Errorf("driver index %d out of range for %d participants", s.DriverIndex, len(s.Participants))
	}
	return nil
}
