package nodewire

import "errors"

var (
	// ErrCycle is returned when a connection would close a directed cycle,
	// including a node connected to itself. The graph is left unchanged.
	ErrCycle = errors.New("nodewire: connection would create a cycle")

	// ErrUnknownNode is returned when an id does not resolve to a live node.
	ErrUnknownNode = errors.New("nodewire: unknown node")

	// ErrPinOutOfRange is returned when a pin index is outside the node's
	// pin count for that direction.
	ErrPinOutOfRange = errors.New("nodewire: pin index out of range")

	// ErrUnknownKind is returned by the interpreter for a kind it has no
	// behavior for. Reaching it means a new kind was not wired in.
	ErrUnknownKind = errors.New("nodewire: unrecognized node kind")
)
