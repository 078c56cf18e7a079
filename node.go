package nodewire

import "fmt"

// --- Identity ---

// NodeID is an opaque handle into a Graph's node arena. The generation is bumped
// whenever a slot is freed, so an id held past RemoveNode never resolves to the
// node that later reuses the slot. The zero value is never a valid id.
type NodeID struct {
	index uint32
	gen   uint32
}

// InvalidNodeID is the zero NodeID. No live node ever has it.
var InvalidNodeID NodeID

// IsValid reports whether id could refer to a node (it may still be stale).
func (id NodeID) IsValid() bool { return id.gen != 0 }

func (id NodeID) String() string {
	if !id.IsValid() {
		return "node(invalid)"
	}
	return fmt.Sprintf("node(%d#%d)", id.index, id.gen)
}

// less orders ids by slot, then generation.
func (id NodeID) less(o NodeID) bool {
	if id.index != o.index {
		return id.index < o.index
	}
	return id.gen < o.gen
}

// --- Pins ---

// OutPinID addresses output pin Output of Node.
type OutPinID struct {
	Node   NodeID
	Output int
}

func (p OutPinID) String() string { return fmt.Sprintf("%s.out[%d]", p.Node, p.Output) }

// InPinID addresses input pin Input of Node.
type InPinID struct {
	Node  NodeID
	Input int
}

func (p InPinID) String() string { return fmt.Sprintf("%s.in[%d]", p.Node, p.Input) }

// Connection is a directed edge from one output pin to one input pin.
type Connection struct {
	From OutPinID
	To   InPinID
}

// --- Node ---

// NodeConfig holds kind-specific settings. Fields that do not apply to a node's
// kind are ignored. Configuration is fixed at insertion.
type NodeConfig struct {
	// SpreadAngle is the angle in radians by which KindSpread rotates the
	// direction on its left (negative) and right (positive) outputs. Zero
	// re-fires the payload unchanged on both.
	SpreadAngle float64

	// RepeatCount is how many times KindRepeat re-fires its output.
	// Zero means defaultRepeatCount.
	RepeatCount int

	// FilterRequire lists the payload fields KindFilter requires to pass.
	FilterRequire Field
}

const defaultRepeatCount = 2

// Node is a graph vertex. Nodes carry no runtime state; everything transient
// lives in the occurrences flowing between them.
type Node struct {
	ID     NodeID
	Kind   Kind
	Pos    Vec2 // editor position hint
	Config NodeConfig
}

// Inputs returns the node's input pin count.
func (n *Node) Inputs() int { return n.Kind.Inputs() }

// Outputs returns the node's output pin count.
func (n *Node) Outputs() int { return n.Kind.Outputs() }

// Title returns the node's display name.
func (n *Node) Title() string { return n.Kind.Title() }

func (n *Node) repeatCount() int {
	if n.Config.RepeatCount <= 0 {
		return defaultRepeatCount
	}
	return n.Config.RepeatCount
}
