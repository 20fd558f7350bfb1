package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TurnDuration != 10*time.Minute {
		t.Errorf("TurnDuration = %s, want 10m", cfg.TurnDuration)
	}
	if cfg.BreakDuration != 5*time.Minute {
		t.Errorf("BreakDuration = %s, want 5m", cfg.BreakDuration)
	}
	if cfg.LunchDuration != time.Hour {
		t.Errorf("LunchDuration = %s, want 1h", cfg.LunchDuration)
	}
	if cfg.LunchEvery != 6 {
		t.Errorf("LunchEvery = %d, want 6", cfg.LunchEvery)
	}
	if cfg.BaseBranch != "main" || cfg.Remote != "origin" {
		t.Errorf("branch/remote defaults = %s/%s", cfg.BaseBranch, cfg.Remote)
	}
	if got := cfg.WIPBranch("main"); got != "mob/main" {
		t.Errorf("WIPBranch = %s, want mob/main", got)
	}
}

func TestLoadUserFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	writeFile(t, filepath.Join(configHome, "mob", "config.yaml"),
		"turn_duration: 15m\nbase_branch: trunk\n")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TurnDuration != 15*time.Minute {
		t.Errorf("TurnDuration = %s, want 15m", cfg.TurnDuration)
	}
	if cfg.BaseBranch != "trunk" {
		t.Errorf("BaseBranch = %s, want trunk", cfg.BaseBranch)
	}
}

func TestRepoFileOverridesUserFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	writeFile(t, filepath.Join(configHome, "mob", "config.yaml"),
		"turn_duration: 15m\nremote: upstream\nstrict: true\n")

	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".mob.yaml"), "turn_duration: 7m\n")

	cfg, err := Load(repo)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TurnDuration != 7*time.Minute {
		t.Errorf("TurnDuration = %s, want repo override 7m", cfg.TurnDuration)
	}
	// Keys absent from the repo file keep the user-level values.
	if cfg.Remote != "upstream" {
		t.Errorf("Remote = %s, want upstream", cfg.Remote)
	}
	if !cfg.Strict {
		t.Error("Strict = false, want user-level true")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".mob.yaml"), "turn_duration: soon\n")

	_, err := Load(repo)
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want config Error", err)
	}
}

func TestLoadNegativeDuration(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".mob.yaml"), "break_duration: -5m\n")

	var cfgErr *Error
	if _, err := Load(repo); !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want config Error", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".mob.yaml"), "turn_duration: [\n")

	var cfgErr *Error
	if _, err := Load(repo); !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want config Error", err)
	}
}

func TestLoadName(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	writeFile(t, filepath.Join(configHome, "mob", "config.yaml"), "name: carol\n")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "carol" {
		t.Errorf("Name = %q, want carol", cfg.Name)
	}
}

func TestLunchEveryZeroDisables(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".mob.yaml"), "lunch_every: 0\n")

	cfg, err := Load(repo)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// An explicit 0 means no lunches, distinct from the absent-key default.
	if cfg.LunchEvery != 0 {
		t.Errorf("LunchEvery = %d, want 0", cfg.LunchEvery)
	}
}

func TestLoadNegativeLunchEvery(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".mob.yaml"), "lunch_every: -2\n")

	var cfgErr *Error
	if _, err := Load(repo); !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want config Error", err)
	}
}
