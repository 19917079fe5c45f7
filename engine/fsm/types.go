package fsm

import "time"

// StateID is a unique identifier for a node
type StateID int

const StateNone StateID = -1

// EventType identifies an external trigger, EventTick (0) marks automatic transitions
type EventType int

const EventTick EventType = 0

// Machine is the generic finite state machine runtime
// T is the context type passed to actions and guards
type Machine[T any] struct {
	nodes map[StateID]*Node[T]

	// Runtime State
	activeStateID StateID
	timeInState   time.Duration
	initialized   bool

	// OnTransition observes every state change, after enter actions
	OnTransition func(from, to StateID)
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    EventType    // EventTick = evaluated on Update
	Guard    GuardFunc[T] // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
