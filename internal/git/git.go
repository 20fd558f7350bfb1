// Package git shells out to the git binary. It implements the capability
// surface the handoff protocol consumes; no custom wire protocol, the
// repository's configured remote and transport do all the work.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/parow/mob/internal/handoff"
)

type Client struct {
	dir     string
	remote  string
	timeout time.Duration
	logger  *slog.Logger
}

const defaultTimeout = 60 * time.Second

func NewClient(dir, remote string, logger *slog.Logger) *Client {
	return &Client{dir: dir, remote: remote, timeout: defaultTimeout, logger: logger}
}

// GitDir resolves the repository's .git directory, where session state lives.
func (c *Client) GitDir(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("not a git repository (or git missing): %w", err)
	}
	return strings.TrimSpace(out), nil
}

// TopLevel resolves the working tree root, where the repo config lives.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository (or git missing): %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) IsClean(ctx context.Context) (bool, error) {
	out, err := c.output(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}

func (c *Client) HasConflicts(ctx context.Context) (bool, error) {
	out, err := c.output(ctx, "ls-files", "--unmerged")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

func (c *Client) Fetch(ctx context.Context) error {
	return c.run(ctx, "fetch", c.remote, "--prune")
}

func (c *Client) BranchExists(ctx context.Context, name string) (bool, error) {
	err := c.run(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

func (c *Client) RemoteBranchExists(ctx context.Context, name string) (bool, error) {
	out, err := c.output(ctx, "ls-remote", "--heads", c.remote, name)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

func (c *Client) CreateBranch(ctx context.Context, name, from string) error {
	return c.run(ctx, "branch", name, from)
}

func (c *Client) Checkout(ctx context.Context, name string) error {
	return c.run(ctx, "checkout", name)
}

func (c *Client) Pull(ctx context.Context, branch string) error {
	return c.run(ctx, "pull", "--no-rebase", c.remote, branch)
}

// CommitAll stages everything, untracked files included, and commits with
// hooks disabled so the handoff is never blocked by a local pre-commit.
func (c *Client) CommitAll(ctx context.Context, message string) error {
	if err := c.run(ctx, "add", "--all"); err != nil {
		return err
	}
	return c.run(ctx, "commit", "--message", message, "--no-verify")
}

func (c *Client) Push(ctx context.Context, branch string) error {
	err := c.run(ctx, "push", "--no-verify", "--set-upstream", c.remote, branch)
	if err == nil {
		return nil
	}
	if isRejectedPush(err.Error()) {
		return handoff.NewSyncError(handoff.KindPushRejected, branch, err)
	}
	return err
}

// Divergence returns how many commits the local branch is ahead of and
// behind its remote counterpart, as of the last fetch.
func (c *Client) Divergence(ctx context.Context, branch string) (int, int, error) {
	revRange := fmt.Sprintf("%s...%s/%s", branch, c.remote, branch)
	out, err := c.output(ctx, "rev-list", "--left-right", "--count", revRange)
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", out)
	}
	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse rev-list output %q: %w", out, err)
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse rev-list output %q: %w", out, err)
	}
	return ahead, behind, nil
}

func (c *Client) SquashMerge(ctx context.Context, source, message string) error {
	if err := c.run(ctx, "merge", "--squash", source); err != nil {
		if isMergeConflict(err.Error()) {
			return handoff.NewSyncError(handoff.KindMergeConflict, source, err)
		}
		return err
	}
	return c.run(ctx, "commit", "--message", message, "--no-verify")
}

func (c *Client) AbortMerge(ctx context.Context) error {
	return c.run(ctx, "reset", "--merge")
}

func (c *Client) DeleteBranch(ctx context.Context, name string) error {
	return c.run(ctx, "branch", "--delete", "--force", name)
}

func (c *Client) DeleteRemoteBranch(ctx context.Context, name string) error {
	return c.run(ctx, "push", "--no-verify", c.remote, "--delete", name)
}

func (c *Client) run(ctx context.Context, args ...string) error {
	_, err := c.output(ctx, args...)
	return err
}

func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("exec", "cmd", "git "+strings.Join(args, " "), "dir", c.dir)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", handoff.NewSyncError(handoff.KindTimeout, "",
				fmt.Errorf("git %s timed out after %s", strings.Join(args, " "), c.timeout))
		}
		return "", fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, string(out))
	}
	return string(out), nil
}

// Rejection phrasing varies across git versions and remote setups.
func isRejectedPush(msg string) bool {
	for _, marker := range []string{"[rejected]", "non-fast-forward", "fetch first", "failed to push some refs"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isMergeConflict(msg string) bool {
	return strings.Contains(msg, "CONFLICT") || strings.Contains(msg, "Automatic merge failed")
}
