package nodewire

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// slot is one arena cell. gen is the generation handed out to the node that
// currently lives here, or to the next one if the slot is free.
type slot struct {
	node  Node
	gen   uint32
	alive bool
}

// Graph stores nodes and the pin connections between them. It enforces only
// the single-incoming-edge rule; acyclicity is the Editor's job.
//
// Graph is not safe for concurrent use. The engine drives it from one
// goroutine and only the Editor mutates connections.
type Graph struct {
	slots []slot
	free  []uint32
	count int

	incoming map[InPinID]OutPinID
	outgoing map[OutPinID][]InPinID // remotes in connection order
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		incoming: make(map[InPinID]OutPinID),
		outgoing: make(map[OutPinID][]InPinID),
	}
}

// --- Nodes ---

// InsertNode stores a new node of the given kind and returns its id.
func (g *Graph) InsertNode(kind Kind, pos Vec2) NodeID {
	return g.InsertNodeWithConfig(kind, pos, NodeConfig{})
}

// InsertNodeWithConfig stores a new node with kind-specific configuration.
func (g *Graph) InsertNodeWithConfig(kind Kind, pos Vec2, cfg NodeConfig) NodeID {
	var index uint32
	if n := len(g.free); n > 0 {
		index = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		index = uint32(len(g.slots))
		g.slots = append(g.slots, slot{gen: 1})
	}
	s := &g.slots[index]
	id := NodeID{index: index, gen: s.gen}
	s.node = Node{ID: id, Kind: kind, Pos: pos, Config: cfg}
	s.alive = true
	g.count++
	return id
}

// Node returns the node with the given id. The second result is false for an
// invalid, unknown or removed id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	s := g.lookup(id)
	if s == nil {
		return nil, false
	}
	return &s.node, true
}

// Contains reports whether id refers to a live node.
func (g *Graph) Contains(id NodeID) bool {
	return g.lookup(id) != nil
}

func (g *Graph) lookup(id NodeID) *slot {
	if !id.IsValid() || int(id.index) >= len(g.slots) {
		return nil
	}
	s := &g.slots[id.index]
	if !s.alive || s.gen != id.gen {
		return nil
	}
	return s
}

// RemoveNode deletes the node and every connection touching it. Its id stays
// stale for the rest of the graph's life. Returns false if id was not live.
func (g *Graph) RemoveNode(id NodeID) bool {
	s := g.lookup(id)
	if s == nil {
		return false
	}
	kind := s.node.Kind
	for i := 0; i < kind.Inputs(); i++ {
		g.DropInputs(InPinID{Node: id, Input: i})
	}
	for i := 0; i < kind.Outputs(); i++ {
		g.DropOutputs(OutPinID{Node: id, Output: i})
	}
	s.node = Node{}
	s.alive = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	g.free = append(g.free, id.index)
	g.count--
	return true
}

// Len returns the number of live nodes.
func (g *Graph) Len() int { return g.count }

// Nodes returns the ids of all live nodes in slot order.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, 0, g.count)
	for i := range g.slots {
		if g.slots[i].alive {
			ids = append(ids, g.slots[i].node.ID)
		}
	}
	return ids
}

// --- Connections ---

// Connect records an edge from out to in, first dropping whatever was
// connected to in. It performs no validation; use Editor.Connect for edits
// that must keep the graph acyclic.
func (g *Graph) Connect(out OutPinID, in InPinID) {
	g.DropInputs(in)
	g.incoming[in] = out
	g.outgoing[out] = append(g.outgoing[out], in)
}

// DropInputs removes the connection whose destination is in, if any.
func (g *Graph) DropInputs(in InPinID) {
	out, ok := g.incoming[in]
	if !ok {
		return
	}
	delete(g.incoming, in)
	remotes := g.outgoing[out]
	if i := slices.Index(remotes, in); i >= 0 {
		remotes = slices.Delete(remotes, i, i+1)
	}
	if len(remotes) == 0 {
		delete(g.outgoing, out)
	} else {
		g.outgoing[out] = remotes
	}
}

// DropOutputs removes every connection leaving out.
func (g *Graph) DropOutputs(out OutPinID) {
	for _, in := range g.outgoing[out] {
		delete(g.incoming, in)
	}
	delete(g.outgoing, out)
}

// OutPin returns the input pins connected to out, in the order they were
// connected. The result is a copy and may be retained by the caller.
func (g *Graph) OutPin(out OutPinID) []InPinID {
	return slices.Clone(g.outgoing[out])
}

// InPin returns the output pin connected to in.
func (g *Graph) InPin(in InPinID) (OutPinID, bool) {
	out, ok := g.incoming[in]
	return out, ok
}

// Connections returns every edge, ordered by source pin and then by
// connection order.
func (g *Graph) Connections() []Connection {
	outs := make([]OutPinID, 0, len(g.outgoing))
	for out := range g.outgoing {
		outs = append(outs, out)
	}
	slices.SortFunc(outs, func(a, b OutPinID) int {
		switch {
		case a.Node.less(b.Node):
			return -1
		case b.Node.less(a.Node):
			return 1
		default:
			return a.Output - b.Output
		}
	})
	var conns []Connection
	for _, out := range outs {
		for _, in := range g.outgoing[out] {
			conns = append(conns, Connection{From: out, To: in})
		}
	}
	return conns
}

// successors appends to dst the nodes reachable over one edge from id.
func (g *Graph) successors(dst []NodeID, n *Node) []NodeID {
	for i := 0; i < n.Outputs(); i++ {
		for _, in := range g.outgoing[OutPinID{Node: n.ID, Output: i}] {
			dst = append(dst, in.Node)
		}
	}
	return dst
}

// --- Validation ---

// Validate checks the graph invariants and reports every violation found:
// connections to missing nodes or out-of-range pins, an incoming index that
// disagrees with the outgoing lists, and directed cycles.
func (g *Graph) Validate() error {
	var result *multierror.Error

	for in, out := range g.incoming {
		if err := g.checkOutPin(out); err != nil {
			result = multierror.Append(result, fmt.Errorf("connection %s -> %s: %w", out, in, err))
		}
		if err := g.checkInPin(in); err != nil {
			result = multierror.Append(result, fmt.Errorf("connection %s -> %s: %w", out, in, err))
		}
		if !slices.Contains(g.outgoing[out], in) {
			result = multierror.Append(result, fmt.Errorf("connection %s -> %s missing from fan-out list", out, in))
		}
	}
	for out, remotes := range g.outgoing {
		for _, in := range remotes {
			if got, ok := g.incoming[in]; !ok || got != out {
				result = multierror.Append(result, fmt.Errorf("fan-out %s -> %s has no matching incoming entry", out, in))
			}
		}
	}
	if cyc := g.findCycle(); cyc.IsValid() {
		result = multierror.Append(result, fmt.Errorf("%s: %w", cyc, ErrCycle))
	}
	return result.ErrorOrNil()
}

func (g *Graph) checkOutPin(out OutPinID) error {
	n, ok := g.Node(out.Node)
	if !ok {
		return fmt.Errorf("%s: %w", out.Node, ErrUnknownNode)
	}
	if out.Output < 0 || out.Output >= n.Outputs() {
		return fmt.Errorf("%s: %w", out, ErrPinOutOfRange)
	}
	return nil
}

func (g *Graph) checkInPin(in InPinID) error {
	n, ok := g.Node(in.Node)
	if !ok {
		return fmt.Errorf("%s: %w", in.Node, ErrUnknownNode)
	}
	if in.Input < 0 || in.Input >= n.Inputs() {
		return fmt.Errorf("%s: %w", in, ErrPinOutOfRange)
	}
	return nil
}

// findCycle returns a node that lies on a directed cycle, or InvalidNodeID.
func (g *Graph) findCycle() NodeID {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[NodeID]uint8, g.count)

	var visit func(id NodeID) NodeID
	visit = func(id NodeID) NodeID {
		state[id] = onStack
		n, ok := g.Node(id)
		if ok {
			for _, next := range g.successors(nil, n) {
				switch state[next] {
				case onStack:
					return next
				case unvisited:
					if cyc := visit(next); cyc.IsValid() {
						return cyc
					}
				}
			}
		}
		state[id] = done
		return InvalidNodeID
	}

	for _, id := range g.Nodes() {
		if state[id] == unvisited {
			if cyc := visit(id); cyc.IsValid() {
				return cyc
			}
		}
	}
	return InvalidNodeID
}
