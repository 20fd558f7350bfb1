// Package notify sends cross-platform desktop notifications for phase-due
// alerts. The notifier is swappable so core logic stays testable without
// touching the OS notification service.
package notify

import "github.com/gen2brain/beeep"

type notifyFunc func(title, message string) error

var notifier notifyFunc = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Send delivers a desktop notification. Failures are the caller's to log;
// a missing notification daemon should never fail a mob command.
func Send(title, message string) error {
	return notifier(title, message)
}

// PhaseDue announces that the current phase's time is up.
func PhaseDue(phase, next string) error {
	return Send("mob: "+phase+" over", next)
}

// SetNotifier replaces the delivery mechanism, for tests.
func SetNotifier(fn func(title, message string) error) {
	notifier = fn
}

// ResetNotifier restores desktop delivery.
func ResetNotifier() {
	notifier = func(title, message string) error {
		return beeep.Notify(title, message, "")
	}
}
