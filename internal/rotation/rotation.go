// Package rotation decides who drives next. Insertion order is rotation
// order; joins append, leaves preserve the relative order of everyone else.
package rotation

import "fmt"

// EmptyRosterError is fatal to the session and forces a reset.
type EmptyRosterError struct{}

func (EmptyRosterError) Error() string { return "participant roster is empty" }

// Next returns the index of the driver after current.
func Next(participants []string, current int) (int, error) {
	if len(participants) == 0 {
		return 0, EmptyRosterError{}
	}
	if current < 0 || current >= len(participants) {
		return 0, fmt.Errorf("driver index %d out of range for %d participants", current, len(participants))
	}
	return (current + 1) % len(participants), nil
}

// Add appends name to the rotation unless already present.
func Add(participants []string, name string) []string {
	for _, p := range participants {
		if p == name {
			return participants
		}
	}
	return append(participants, name)
}

// Remove drops name from the roster and returns the adjusted roster and
// driver index. Removing the current driver hands the wheel to the next
// still-present participant in original relative order.
func Remove(participants []string, name string, current int) ([]string, int, error) {
	idx := -1
	for i, p := range participants {
		if p == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, 0, fmt.Errorf("participant %q not in roster", name)
	}

	out := make([]string, 0, len(participants)-1)
	out = append(out, participants[:idx]...)
	out = append(out, participants[idx+1:]...)
	if len(out) == 0 {
		return nil, 0, EmptyRosterError{}
	}

	switch {
	case idx < current:
		current--
	case idx == current:
		// The slot now holds the participant that was next in order.
		current = current % len(out)
	}
	return out, current, nil
}
