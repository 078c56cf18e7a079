package nodewire

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Rejection describes a connection request the Editor refused.
type Rejection struct {
	From OutPinID
	To   InPinID
	Err  error // wraps ErrCycle, ErrUnknownNode or ErrPinOutOfRange
}

// Editor is the only path through which user-initiated connections are made.
// It keeps the graph acyclic and reports every refusal through OnReject so a
// UI can play a cue.
type Editor struct {
	graph    *Graph
	log      hclog.Logger
	debug    bool
	rejected registry[Rejection]
}

// NewEditor wraps g. A nil logger discards diagnostics.
func NewEditor(g *Graph, logger hclog.Logger) *Editor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Editor{graph: g, log: logger.Named("editor")}
}

// Graph returns the edited graph.
func (e *Editor) Graph() *Graph { return e.graph }

// OnReject registers fn to be called for every refused connection.
func (e *Editor) OnReject(fn func(Rejection)) CallbackHandle {
	return e.rejected.add(fn)
}

// Connect wires from to to. If to already has a connection it is replaced.
//
// The request is refused, leaving the graph untouched, when either pin does
// not exist or when from's node is reachable from to's node over existing
// connections, which would close a cycle. Connecting a node to itself is
// refused by the same check. A cycle refusal returns an error wrapping
// ErrCycle; it is an expected outcome of interactive editing.
func (e *Editor) Connect(from OutPinID, to InPinID) error {
	if err := e.checkPins(from, to); err != nil {
		return e.reject(from, to, err)
	}
	if e.Reachable(to.Node, from.Node) {
		return e.reject(from, to, ErrCycle)
	}
	e.graph.DropInputs(to)
	e.graph.Connect(from, to)
	if e.debug {
		debugCheckGraph(e.graph, "Connect")
	}
	e.log.Debug("connected", "from", from.String(), "to", to.String())
	return nil
}

// Disconnect removes the connection into to, if any.
func (e *Editor) Disconnect(to InPinID) {
	e.graph.DropInputs(to)
}

// Reachable reports whether to can be reached from from by following
// connections, counting a node as reachable from itself. Stale ids met on the
// way are logged and skipped.
func (e *Editor) Reachable(from, to NodeID) bool {
	stack := []NodeID{from}
	seen := make(map[NodeID]struct{})
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		n, ok := e.graph.Node(id)
		if !ok {
			e.log.Warn("node not found during reachability check", "node", id.String())
			continue
		}
		stack = e.graph.successors(stack, n)
	}
	return false
}

func (e *Editor) checkPins(from OutPinID, to InPinID) error {
	var result *multierror.Error
	result = multierror.Append(result, e.graph.checkOutPin(from), e.graph.checkInPin(to))
	return result.ErrorOrNil()
}

func (e *Editor) reject(from OutPinID, to InPinID, cause error) error {
	err := fmt.Errorf("connect %s -> %s: %w", from, to, cause)
	e.log.Debug("connection refused", "from", from.String(), "to", to.String(), "error", cause)
	e.rejected.emit(Rejection{From: from, To: to, Err: err})
	return err
}
