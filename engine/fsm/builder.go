package fsm

// AddState adds a node to the machine and returns it for chained configuration
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[T], 0, 4),
	}
	m.nodes[id] = node
	return node
}

// Enter appends an OnEnter action
func (n *Node[T]) Enter(fn ActionFunc[T]) *Node[T] {
	n.OnEnter = append(n.OnEnter, fn)
	return n
}

// Update appends an OnUpdate action
func (n *Node[T]) Update(fn ActionFunc[T]) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, fn)
	return n
}

// Exit appends an OnExit action
func (n *Node[T]) Exit(fn ActionFunc[T]) *Node[T] {
	n.OnExit = append(n.OnExit, fn)
	return n
}

// On adds an event-triggered transition
func (n *Node[T]) On(ev EventType, target StateID, guard GuardFunc[T]) *Node[T] {
	n.Transitions = append(n.Transitions, Transition[T]{TargetID: target, Event: ev, Guard: guard})
	return n
}

// When adds an automatic transition evaluated on every Update
func (n *Node[T]) When(guard GuardFunc[T], target StateID) *Node[T] {
	return n.On(EventTick, target, guard)
}
