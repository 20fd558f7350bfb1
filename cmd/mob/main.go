package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/parow/mob/internal/cli"
	"github.com/parow/mob/internal/logging"
	"github.com/parow/mob/internal/prompt"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, prompt.ErrCancelled) {
		fmt.Fprintf(os.Stderr, "mob: %v\n", err)
	}

	_ = logging.CloseFile()
	stop()
	os.Exit(cli.ExitCode(err))
}
