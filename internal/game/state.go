package game

// State is the coarse session state. Pause and OfflineCalc suspend the
// simulation tick.
type State string

const (
	StateBoot        State = "boot"
	StateTutorial    State = "tutorial"
	StateMainLoop    State = "main_loop"
	StatePause       State = "pause"
	StateOfflineCalc State = "offline_calc"
)

// StateChangedFunc is notified after every transition.
type StateChangedFunc func(previous, next State)

// Machine is the session state machine. Transitions to the current state
// are no-ops.
type Machine struct {
	state     State
	onChanged StateChangedFunc
}

func NewMachine() *Machine {
	return &Machine{state: StateBoot}
}

func (m *Machine) SetStateChangedFunc(fn StateChangedFunc) { m.onChanged = fn }

func (m *Machine) State() State { return m.state }

// TransitionTo moves to the next state and fires the change notification.
func (m *Machine) TransitionTo(next State) {
	if next == m.state {
		return
	}
	previous := m.state
	m.state = next
	if m.onChanged != nil {
		m.onChanged(previous, next)
	}
}

// Suspended reports whether the simulation tick should be skipped.
func (m *Machine) Suspended() bool {
	return m.state == StatePause || m.state == StateOfflineCalc
}
