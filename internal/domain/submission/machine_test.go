package submission

import (
	"errors"
	"testing"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateAwaitingFile, false},
		{StateFileStaged, false},
		{StateSubmitted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMachine_Fire(t *testing.T) {
	tests := []struct {
		name      string
		triggers  []Trigger
		wantState State
		wantErr   bool
	}{
		{"stage then submit", []Trigger{TriggerStageFile, TriggerSubmit}, StateSubmitted, false},
		{"submit without staging", []Trigger{TriggerSubmit}, StateSubmitted, false},
		{"restage replaces receipt", []Trigger{TriggerStageFile, TriggerStageFile}, StateFileStaged, false},
		{"stage after submit rejected", []Trigger{TriggerSubmit, TriggerStageFile}, StateSubmitted, true},
		{"submit after submit rejected", []Trigger{TriggerSubmit, TriggerSubmit}, StateSubmitted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()

			var lastErr error
			for _, trigger := range tt.triggers {
				lastErr = m.Fire(trigger)
			}

			if (lastErr != nil) != tt.wantErr {
				t.Errorf("Fire() error = %v, wantErr %v", lastErr, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(lastErr, ErrInvalidTransition) {
				t.Errorf("Fire() error = %v, want ErrInvalidTransition", lastErr)
			}
			if got := m.State(); got != tt.wantState {
				t.Errorf("State() = %v, want %v", got, tt.wantState)
			}
		})
	}
}

func TestMachine_CanFire(t *testing.T) {
	m := NewMachine()

	if !m.CanFire(TriggerStageFile) {
		t.Error("CanFire(StageFile) = false in AwaitingFile, want true")
	}
	if !m.CanFire(TriggerSubmit) {
		t.Error("CanFire(Submit) = false in AwaitingFile, want true")
	}

	if err := m.Fire(TriggerSubmit); err != nil {
		t.Fatalf("Fire(Submit) error = %v", err)
	}

	if m.CanFire(TriggerStageFile) || m.CanFire(TriggerSubmit) {
		t.Error("CanFire() = true in Submitted, want false")
	}
	if got := len(m.PermittedTriggers()); got != 0 {
		t.Errorf("PermittedTriggers() length = %d, want 0", got)
	}
}
