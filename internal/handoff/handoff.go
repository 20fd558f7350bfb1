// Package handoff implements the git-based handoff protocol: a dedicated
// WIP branch carries work between drivers' machines, so every handoff is an
// ordinary push/pull over whatever transport the remote already uses.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/parow/mob/internal/session"
)

// Git is the full git interaction surface the protocol needs. The real
// implementation shells out to git; tests use an in-memory fake.
type Git interface {
	CurrentBranch(ctx context.Context) (string, error)
	IsClean(ctx context.Context) (bool, error)
	HasConflicts(ctx context.Context) (bool, error)
	Fetch(ctx context.Context) error
	BranchExists(ctx context.Context, name string) (bool, error)
	RemoteBranchExists(ctx context.Context, name string) (bool, error)
	CreateBranch(ctx context.Context, name, from string) error
	Checkout(ctx context.Context, name string) error
	Pull(ctx context.Context, branch string) error
	CommitAll(ctx context.Context, message string) error
	Push(ctx context.Context, branch string) error
	Divergence(ctx context.Context, branch string) (ahead, behind int, err error)
	SquashMerge(ctx context.Context, source, message string) error
	AbortMerge(ctx context.Context) error
	DeleteBranch(ctx context.Context, name string) error
	DeleteRemoteBranch(ctx context.Context, name string) error
}

// Protocol drives the WIP branch lifecycle for one repository.
type Protocol struct {
	git    Git
	logger *slog.Logger
}

func New(git Git, logger *slog.Logger) *Protocol {
	return &Protocol{git: git, logger: logger}
}

// CommitMessage encodes the driver and turn number in the WIP commit so
// every handoff doubles as an audit trail entry.
func CommitMessage(driver string, turn int) string {
	return fmt.Sprintf("mob: %s turn %d [ci-skip]", driver, turn)
}

// StartTurn ensures the WIP branch exists, synchronizes it with the remote
// and checks it out. It never discards local work: an unmergeable working
// tree fails with a dirty-tree error the user must resolve first.
func (p *Protocol) StartTurn(ctx context.Context, s session.Session) error {
	conflicted, err := p.git.HasConflicts(ctx)
	if err != nil {
		return fmt.Errorf("inspect working tree: %w", err)
	}
	if conflicted {
		return NewSyncError(KindDirtyWorkingTree, s.WIPBranch,
			errors.New("working tree has unmerged conflicts, resolve them before starting a turn"))
	}

	current, err := p.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("current branch: %w", err)
	}

	if current != s.WIPBranch {
		clean, err := p.git.IsClean(ctx)
		if err != nil {
			return fmt.Errorf("inspect working tree: %w", err)
		}
		if !clean {
			return NewSyncError(KindDirtyWorkingTree, current,
				errors.New("uncommitted changes would be clobbered by checkout, commit or stash them first"))
		}
	}

	if err := p.git.Fetch(ctx); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	localExists, err := p.git.BranchExists(ctx, s.WIPBranch)
	if err != nil {
		return fmt.Errorf("check branch %s: %w", s.WIPBranch, err)
	}
	remoteExists, err := p.git.RemoteBranchExists(ctx, s.WIPBranch)
	if err != nil {
		return fmt.Errorf("check remote branch %s: %w", s.WIPBranch, err)
	}

	if !localExists {
		from := s.BaseBranch
		if remoteExists {
			from = s.Remote + "/" + s.WIPBranch
		}
		p.logger.Info("creating wip branch", "branch", s.WIPBranch, "from", from)
		if err := p.git.CreateBranch(ctx, s.WIPBranch, from); err != nil {
			return fmt.Errorf("create branch %s: %w", s.WIPBranch, err)
		}
	}

	if current != s.WIPBranch {
		if err := p.git.Checkout(ctx, s.WIPBranch); err != nil {
			return fmt.Errorf("checkout %s: %w", s.WIPBranch, err)
		}
	}

	if localExists && remoteExists {
		if err := p.git.Pull(ctx, s.WIPBranch); err != nil {
			return fmt.Errorf("pull %s: %w", s.WIPBranch, err)
		}
	}

	return nil
}

// Handoff commits everything (untracked included, the point is to move all
// work to the next driver) and pushes the WIP branch. On a rejected push it
// fetches once and retries only when the rejection was a stale local ref;
// true divergence is surfaced, never force-pushed over.
func (p *Protocol) Handoff(ctx context.Context, s session.Session) error {
	clean, err := p.git.IsClean(ctx)
	if err != nil {
		return fmt.Errorf("inspect working tree: %w", err)
	}

	if clean {
		p.logger.Info("nothing changed, nothing to commit")
	} else {
		msg := CommitMessage(s.Driver(), s.Turn+1)
		if err := p.git.CommitAll(ctx, msg); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		p.logger.Info("committed turn", "driver", s.Driver(), "turn", s.Turn+1)
	}

	err = p.git.Push(ctx, s.WIPBranch)
	if err == nil {
		return nil
	}

	var syncErr *SyncError
	if !errors.As(err, &syncErr) || syncErr.Kind != KindPushRejected {
		return fmt.Errorf("push %s: %w", s.WIPBranch, err)
	}

	// One fetch-and-compare to tell a stale ref from a real race.
	p.logger.Warn("push rejected, checking for divergence", "branch", s.WIPBranch)
	if err := p.git.Fetch(ctx); err != nil {
		return fmt.Errorf("fetch after rejected push: %w", err)
	}
	_, behind, err := p.git.Divergence(ctx, s.WIPBranch)
	if err != nil {
		return fmt.Errorf("compare %s with remote: %w", s.WIPBranch, err)
	}
	if behind > 0 {
		return NewSyncError(KindPushRejected, s.WIPBranch,
			fmt.Errorf("remote has %d commits you do not: another driver pushed first, pull and retry", behind))
	}
	return p.git.Push(ctx, s.WIPBranch)
}

// FinishSession squashes the WIP branch into base, pushes base and removes
// the WIP branch on both ends. A conflicting squash leaves the WIP branch
// untouched so no commits are lost.
func (p *Protocol) FinishSession(ctx context.Context, s session.Session) error {
	if err := p.git.Fetch(ctx); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if err := p.git.Checkout(ctx, s.BaseBranch); err != nil {
		return fmt.Errorf("checkout %s: %w", s.BaseBranch, err)
	}
	if exists, err := p.git.RemoteBranchExists(ctx, s.BaseBranch); err == nil && exists {
		if err := p.git.Pull(ctx, s.BaseBranch); err != nil {
			return fmt.Errorf("pull %s: %w", s.BaseBranch, err)
		}
	}

	msg := fmt.Sprintf("mob: squash %s (%d turns)", s.WIPBranch, s.Turn)
	if err := p.git.SquashMerge(ctx, s.WIPBranch, msg); err != nil {
		var syncErr *SyncError
		if errors.As(err, &syncErr) && syncErr.Kind == KindMergeConflict {
			if abortErr := p.git.AbortMerge(ctx); abortErr != nil {
				p.logger.Error("could not restore working tree after failed squash", "err", abortErr)
			}
		}
		return fmt.Errorf("squash %s into %s: %w", s.WIPBranch, s.BaseBranch, err)
	}

	if err := p.git.Push(ctx, s.BaseBranch); err != nil {
		return fmt.Errorf("push %s: %w", s.BaseBranch, err)
	}

	if err := p.git.DeleteBranch(ctx, s.WIPBranch); err != nil {
		return fmt.Errorf("delete branch %s: %w", s.WIPBranch, err)
	}
	if exists, err := p.git.RemoteBranchExists(ctx, s.WIPBranch); err == nil && exists {
		if err := p.git.DeleteRemoteBranch(ctx, s.WIPBranch); err != nil {
			return fmt.Errorf("delete remote branch %s: %w", s.WIPBranch, err)
		}
	}

	p.logger.Info("session merged", "base", s.BaseBranch, "wip", s.WIPBranch, "turns", s.Turn)
	return nil
}

// Abort discards the WIP branch without merging. Destructive: the caller
// must have confirmed with the user first.
func (p *Protocol) Abort(ctx context.Context, s session.Session) error {
	current, err := p.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("current branch: %w", err)
	}
	if current == s.WIPBranch {
		if err := p.git.Checkout(ctx, s.BaseBranch); err != nil {
			return fmt.Errorf("checkout %s: %w", s.BaseBranch, err)
		}
	}

	if exists, err := p.git.BranchExists(ctx, s.WIPBranch); err == nil && exists {
		if err := p.git.DeleteBranch(ctx, s.WIPBranch); err != nil {
			return fmt.Errorf("delete branch %s: %w", s.WIPBranch, err)
		}
	}
	if exists, err := p.git.RemoteBranchExists(ctx, s.WIPBranch); err == nil && exists {
		if err := p.git.DeleteRemoteBranch(ctx, s.WIPBranch); err != nil {
			return fmt.Errorf("delete remote branch %s: %w", s.WIPBranch, err)
		}
	}

	p.logger.Info("wip branch discarded", "branch", s.WIPBranch)
	return nil
}
