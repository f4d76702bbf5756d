package submission

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a trigger is not permitted in the
// current state.
var ErrInvalidTransition = errors.New("invalid state transition")

// Restaging from FileStaged is permitted: a second upload simply replaces
// the staged receipt. Submitting from AwaitingFile is also permitted; the
// resulting payload carries empty file references.
var transitions = map[State]map[Trigger]State{
	StateAwaitingFile: {
		TriggerStageFile: StateFileStaged,
		TriggerSubmit:    StateSubmitted,
	},
	StateFileStaged: {
		TriggerStageFile: StateFileStaged,
		TriggerSubmit:    StateSubmitted,
	},
}

// Machine tracks the current state of one new-bill session and validates
// transitions. It is not safe for concurrent use; each session owns one.
type Machine struct {
	current State
}

// NewMachine creates a machine in the AwaitingFile state.
func NewMachine() *Machine {
	return &Machine{current: StateAwaitingFile}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.current
}

// CanFire returns true if the trigger is permitted in the current state.
func (m *Machine) CanFire(trigger Trigger) bool {
	_, ok := transitions[m.current][trigger]
	return ok
}

// Fire executes the trigger, transitioning to the new state if allowed.
func (m *Machine) Fire(trigger Trigger) error {
	next, ok := transitions[m.current][trigger]
	if !ok {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.current)
	}
	m.current = next
	return nil
}

// PermittedTriggers returns all triggers that can be fired in the current
// state.
func (m *Machine) PermittedTriggers() []Trigger {
	perms := transitions[m.current]
	triggers := make([]Trigger, 0, len(perms))
	for trigger := range perms {
		triggers = append(triggers, trigger)
	}
	return triggers
}
