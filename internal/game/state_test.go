package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachine_Transitions(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateBoot, m.State())

	var from, to []State
	m.SetStateChangedFunc(func(prev, next State) {
		from = append(from, prev)
		to = append(to, next)
	})

	m.TransitionTo(StateTutorial)
	m.TransitionTo(StateTutorial) // no-op
	m.TransitionTo(StateMainLoop)

	assert.Equal(t, []State{StateBoot, StateTutorial}, from)
	assert.Equal(t, []State{StateTutorial, StateMainLoop}, to)
}

func TestMachine_Suspended(t *testing.T) {
	m := NewMachine()
	assert.False(t, m.Suspended())

	m.TransitionTo(StatePause)
	assert.True(t, m.Suspended())

	m.TransitionTo(StateOfflineCalc)
	assert.True(t, m.Suspended())

	m.TransitionTo(StateMainLoop)
	assert.False(t, m.Suspended())
}
