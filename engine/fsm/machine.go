package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:         make(map[StateID]*Node[T]),
		activeStateID: StateNone,
	}
}

// Init enters the initial state, running its OnEnter actions
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	for from, n := range m.nodes {
		for _, trans := range n.Transitions {
			if _, ok := m.nodes[trans.TargetID]; !ok {
				return fmt.Errorf("state %d transitions to unknown state %d", from, trans.TargetID)
			}
		}
	}

	m.activeStateID = initialID
	m.timeInState = 0
	m.initialized = true
	for _, action := range node.OnEnter {
		action(ctx)
	}
	return nil
}

// Update advances the FSM by dt, running OnUpdate then the first passing tick transition
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if !m.initialized {
		return
	}

	m.timeInState += dt

	node := m.nodes[m.activeStateID]
	for _, action := range node.OnUpdate {
		action(ctx)
	}

	// OnUpdate may have forced a transition
	node = m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event != EventTick {
			continue
		}
		if trans.Guard == nil || trans.Guard(ctx) {
			m.transition(ctx, trans.TargetID)
			return
		}
	}
}

// HandleEvent routes an external event, returns true if a transition fired
func (m *Machine[T]) HandleEvent(ctx T, ev EventType) bool {
	if !m.initialized || ev == EventTick {
		return false
	}

	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event != ev {
			continue
		}
		if trans.Guard == nil || trans.Guard(ctx) {
			m.transition(ctx, trans.TargetID)
			return true
		}
	}
	return false
}

// ForceTransition moves to target regardless of declared transitions
func (m *Machine[T]) ForceTransition(ctx T, targetID StateID) {
	if !m.initialized {
		return
	}
	m.transition(ctx, targetID)
}

// transition performs the state change, self transitions are ignored
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	from := m.activeStateID
	for _, action := range m.nodes[from].OnExit {
		action(ctx)
	}

	m.activeStateID = targetID
	m.timeInState = 0

	for _, action := range targetNode.OnEnter {
		action(ctx)
	}

	if m.OnTransition != nil {
		m.OnTransition(from, targetID)
	}
}

// Current returns the active StateID
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// CurrentName returns the active state's name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time accumulated by Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}
