package handoff

import "fmt"

// Kind classifies git synchronization failures. Each kind maps to a
// distinct exit code at the CLI boundary.
type Kind int

const (
	KindPushRejected Kind = iota
	KindMergeConflict
	KindTimeout
	KindDirtyWorkingTree
)

func (k Kind) String() string {
	switch k {
	case KindPushRejected:
		return "push rejected"
	case KindMergeConflict:
		return "merge conflict"
	case KindTimeout:
		return "timeout"
	case KindDirtyWorkingTree:
		return "dirty working tree"
	default:
		return "unknown"
	}
}

// SyncError is surfaced to the user unmodified; the protocol never retries
// on its own beyond the single fetch-and-compare after a rejected push.
type SyncError struct {
	Kind   Kind
	Branch string
	Err    error
}

func (e *SyncError) Error() string {
	if e.Branch != "" {
		return fmt.Sprintf("git sync failed on %s: %s: %v", e.Branch, e.Kind, e.Err)
	}
	return fmt.Sprintf("git sync failed: %s: %v", e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// NewSyncError is used by git backends to classify failures at the point
// they are observed.
func NewSyncError(kind Kind, branch string, err error) *SyncError {
	return &SyncError{Kind: kind, Branch: branch, Err: err}
}
