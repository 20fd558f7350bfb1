package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/config"
	"github.com/parow/mob/internal/git"
	"github.com/parow/mob/internal/handoff"
	"github.com/parow/mob/internal/logging"
	"github.com/parow/mob/internal/prompt"
	"github.com/parow/mob/internal/rotation"
	"github.com/parow/mob/internal/session"
)

var (
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "mob",
	Short: "Turn-based mob programming coordinator",
	Long: `Mob coordinates remote mob programming sessions: it keeps the shared
state on a WIP branch, hands work between drivers with plain git
commits, and tells you when the turn is over.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Log to file only, keep stderr clean")
}

// ExecuteContext runs the root command. The context cancels in-flight git
// operations on SIGINT/SIGTERM.
func ExecuteContext(ctx context.Context) error {
	rootCmd.Version = version
	return rootCmd.ExecuteContext(ctx)
}

// Exit codes, stable for scripting.
const (
	exitOK           = 0
	exitGeneric      = 1
	exitGitSync      = 2
	exitCorruptState = 3
	exitEmptyRoster  = 4
	exitConfig       = 5
	exitCancelled    = 6
)

// ExitCode maps an error from Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var (
		syncErr    *handoff.SyncError
		corruptErr *session.CorruptStateError
		rosterErr  rotation.EmptyRosterError
		configErr  *config.Error
	)
	switch {
	case errors.As(err, &syncErr):
		return exitGitSync
	case errors.As(err, &corruptErr):
		return exitCorruptState
	case errors.As(err, &rosterErr):
		return exitEmptyRoster
	case errors.As(err, &configErr):
		return exitConfig
	case errors.Is(err, prompt.ErrCancelled):
		return exitCancelled
	}
	return exitGeneric
}

// app bundles the pieces every command needs. Each invocation builds a
// fresh one; nothing is shared between runs except the state file.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	git     *git.Client
	store   *session.Store
	proto   *handoff.Protocol
	confirm prompt.Confirmer
}

func newApp(ctx context.Context) (*app, error) {
	// Bootstrap git with the default logger just to locate the repo;
	// the real logger needs the config, which needs the repo root.
	probe := git.NewClient(".", "", slog.Default())
	repoRoot, err := probe.TopLevel(ctx)
	if err != nil {
		return nil, err
	}
	gitDir, err := probe.GitDir(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	logger, err := logging.Setup(cfg.LogFile, cfg.Log.Level, quietMode)
	if err != nil {
		return nil, err
	}

	client := git.NewClient(repoRoot, cfg.Remote, logger)
	return &app{
		cfg:     cfg,
		logger:  logger,
		git:     client,
		store:   session.NewStore(gitDir, logger),
		proto:   handoff.New(client, logger),
		confirm: prompt.Terminal{},
	}, nil
}

// loadActive loads the session and fails if none is in progress.
func (a *app) loadActive() (session.Session, error) {
	s, err := a.store.Load()
	if err != nil {
		return s, err
	}
	if !s.Active() {
		return s, errors.New("no active session, run 'mob start'")
	}
	return s, nil
}
