// Package config resolves settings once per invocation from built-in
// defaults, the user file (~/.config/mob/config.yaml) and the repository
// file (.mob.yaml), later layers winning field by field.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Error marks an unusable configuration value; it maps to its own exit code.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Config struct {
	TurnDuration  time.Duration `yaml:"-"`
	BreakDuration time.Duration `yaml:"-"`
	LunchDuration time.Duration `yaml:"-"`
	RawTurn       string        `yaml:"turn_duration"`
	RawBreak      string        `yaml:"break_duration"`
	RawLunch      string        `yaml:"lunch_duration"`

	// LunchEvery is parsed from a pointer so an explicit 0 (lunches
	// disabled) survives defaulting.
	LunchEvery    int  `yaml:"-"`
	RawLunchEvery *int `yaml:"lunch_every"`

	Name            string    `yaml:"name"`
	BaseBranch      string    `yaml:"base_branch"`
	WIPBranchPrefix string    `yaml:"wip_branch_prefix"`
	Remote          string    `yaml:"remote"`
	Strict          bool      `yaml:"strict"`
	LogFile         string    `yaml:"log_file"`
	Log             LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// UserConfigPath returns the user-level defaults file location.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mob", "config.yaml")
}

const repoConfigName = ".mob.yaml"

// Load resolves the effective configuration for a repository. Missing
// files are fine; unreadable or invalid ones are not.
func Load(repoRoot string) (*Config, error) {
	var cfg Config

	paths := []string{UserConfigPath()}
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, repoConfigName))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, &Error{Path: path, Err: err}
		}
		// Unmarshalling into the same struct overlays only the keys
		// present in this file, which is exactly the precedence we want.
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &Error{Path: path, Err: err}
		}
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() error {
	if c.RawTurn == "" {
		c.RawTurn = "10m"
	}
	if c.RawBreak == "" {
		c.RawBreak = "5m"
	}
	if c.RawLunch == "" {
		c.RawLunch = "1h"
	}

	var err error
	if c.TurnDuration, err = time.ParseDuration(c.RawTurn); err != nil {
		return &Error{Err: fmt.Errorf("parse turn_duration %q: %w", c.RawTurn, err)}
	}
	if c.BreakDuration, err = time.ParseDuration(c.RawBreak); err != nil {
		return &Error{Err: fmt.Errorf("parse break_duration %q: %w", c.RawBreak, err)}
	}
	if c.LunchDuration, err = time.ParseDuration(c.RawLunch); err != nil {
		return &Error{Err: fmt.Errorf("parse lunch_duration %q: %w", c.RawLunch, err)}
	}

	if c.RawLunchEvery == nil {
		c.LunchEvery = 6
	} else {
		c.LunchEvery = *c.RawLunchEvery
	}
	if c.BaseBranch == "" {
		c.BaseBranch = "main"
	}
	if c.WIPBranchPrefix == "" {
		c.WIPBranchPrefix = "mob/"
	}
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.LogFile == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			cache = os.TempDir()
		}
		c.LogFile = filepath.Join(cache, "mob", "mob.log")
	}
	return nil
}

func (c *Config) validate() error {
	if c.TurnDuration <= 0 {
		return &Error{Err: fmt.Errorf("turn_duration must be positive, got %s", c.RawTurn)}
	}
	if c.BreakDuration <= 0 {
		return &Error{Err: fmt.Errorf("break_duration must be positive, got %s", c.RawBreak)}
	}
	if c.LunchDuration <= 0 {
		return &Error{Err: fmt.Errorf("lunch_duration must be positive, got %s", c.RawLunch)}
	}
	if c.LunchEvery < 0 {
		return &Error{Err: fmt.Errorf("lunch_every must be non-negative, got %d", c.LunchEvery)}
	}
	return nil
}

// WIPBranch derives the handoff branch name for a base branch.
func (c *Config) WIPBranch(baseBranch string) string {
	return c.WIPBranchPrefix + baseBranch
}
