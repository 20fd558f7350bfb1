// Package prompt is the confirmation capability injected into commands.
// Destructive operations go through Confirm and never default to yes.
package prompt

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrCancelled reports that the user backed out of a confirmation. It maps
// to its own exit code.
var ErrCancelled = errors.New("cancelled by user")

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// Terminal prompts on the controlling terminal.
type Terminal struct{}

func (Terminal) Confirm(question string, def bool) (bool, error) {
	confirmed := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, err
	}
	return confirmed, nil
}

// Func adapts a function to the Confirmer interface, for tests.
type Func func(question string, def bool) (bool, error)

func (f Func) Confirm(question string, def bool) (bool, error) {
	return f(question, def)
}
