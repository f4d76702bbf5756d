// Package submission models the lifecycle of a new-bill session: a receipt
// file is staged first, then the assembled bill is submitted.
package submission

// State is a stage in the new-bill lifecycle.
type State string

const (
	StateAwaitingFile State = "AWAITING_FILE"
	StateFileStaged   State = "FILE_STAGED"
	StateSubmitted    State = "SUBMITTED"
)

// IsTerminal returns true when no further transitions are allowed.
func (s State) IsTerminal() bool {
	return s == StateSubmitted
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Trigger is an event that can cause a state transition.
type Trigger string

const (
	TriggerStageFile Trigger = "STAGE_FILE"
	TriggerSubmit    Trigger = "SUBMIT"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}
