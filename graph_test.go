package nodewire

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func outPin(n NodeID, i int) OutPinID { return OutPinID{Node: n, Output: i} }
func inPin(n NodeID, i int) InPinID { return InPinID{Node: n, Input: i} }

// --- Nodes ---

func TestGraphInsertAndLookup(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode(KindOnShoot, Vec2{1, 2})
	b := g.InsertNodeWithConfig(KindRepeat, Vec2{3, 4}, NodeConfig{RepeatCount: 5})

	if a == b {
		t.Fatal("InsertNode returned duplicate ids")
	}
	if !a.IsValid() || !b.IsValid() {
		t.Fatal("InsertNode returned an invalid id")
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}

	n, ok := g.Node(b)
	if !ok {
		t.Fatal("Node(b) not found")
	}
	if n.ID != b || n.Kind != KindRepeat || n.Pos != (Vec2{3, 4}) {
		t.Errorf("Node(b) = %+v", n)
	}
	if n.Config.RepeatCount != 5 {
		t.Errorf("RepeatCount = %d, want 5", n.Config.RepeatCount)
	}
	if diff := cmp.Diff([]NodeID{a, b}, g.Nodes(), cmp.AllowUnexported(NodeID{})); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestGraphZeroIDNeverResolves(t *testing.T) {
	g := NewGraph()
	g.InsertNode(KindOnShoot, Vec2{})
	if _, ok := g.Node(InvalidNodeID); ok {
		t.Error("zero NodeID resolved to a node")
	}
	if g.Contains(InvalidNodeID) {
		t.Error("Contains(InvalidNodeID) = true")
	}
}

func TestGraphRemoveNodeLeavesStaleID(t *testing.T) {
	g := NewGraph()
	shoot := g.InsertNode(KindOnShoot, Vec2{})
	bullet := g.InsertNode(KindSpawnBullet, Vec2{})
	dmg := g.InsertNode(KindDealDamage, Vec2{})
	g.Connect(outPin(shoot, 0), inPin(bullet, 0))
	g.Connect(outPin(bullet, 0), inPin(dmg, 0))

	if !g.RemoveNode(bullet) {
		t.Fatal("RemoveNode returned false for a live node")
	}
	if g.RemoveNode(bullet) {
		t.Error("second RemoveNode returned true")
	}
	if g.Contains(bullet) {
		t.Error("removed node still resolves")
	}
	if got := g.OutPin(outPin(shoot, 0)); len(got) != 0 {
		t.Errorf("OutPin(shoot) = %v, want empty", got)
	}
	if _, ok := g.InPin(inPin(dmg, 0)); ok {
		t.Error("dmg input still connected after upstream removal")
	}

	// The slot is reused but the old id stays stale.
	reused := g.InsertNode(KindExplosion, Vec2{})
	if reused == bullet {
		t.Fatal("reused slot handed out the stale id")
	}
	if _, ok := g.Node(bullet); ok {
		t.Error("stale id resolved to the node that reused its slot")
	}
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
}

// --- Connections ---

func TestGraphSingleIncomingEdge(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode(KindOnShoot, Vec2{})
	b := g.InsertNode(KindOnShoot, Vec2{})
	c := g.InsertNode(KindSpawnBullet, Vec2{})

	g.Connect(outPin(a, 0), inPin(c, 0))
	g.Connect(outPin(b, 0), inPin(c, 0))

	got, ok := g.InPin(inPin(c, 0))
	if !ok || got != outPin(b, 0) {
		t.Errorf("InPin(c) = %v, %v; want %v", got, ok, outPin(b, 0))
	}
	if remotes := g.OutPin(outPin(a, 0)); len(remotes) != 0 {
		t.Errorf("old source still lists %v", remotes)
	}
	if n := len(g.Connections()); n != 1 {
		t.Errorf("len(Connections) = %d, want 1", n)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestGraphOutPinKeepsConnectionOrder(t *testing.T) {
	g := NewGraph()
	src := g.InsertNode(KindOnShoot, Vec2{})
	var want []InPinID
	for range 4 {
		dst := g.InsertNode(KindDealDamage, Vec2{})
		g.Connect(outPin(src, 0), inPin(dst, 0))
		want = append(want, inPin(dst, 0))
	}

	got := g.OutPin(outPin(src, 0))
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(NodeID{})); diff != "" {
		t.Errorf("OutPin mismatch (-want +got):\n%s", diff)
	}

	// The returned slice is a copy.
	got[0] = InPinID{}
	if g.OutPin(outPin(src, 0))[0] != want[0] {
		t.Error("mutating OutPin result changed the graph")
	}
}

func TestGraphDropInputsAndOutputs(t *testing.T) {
	g := NewGraph()
	src := g.InsertNode(KindSpread, Vec2{})
	x := g.InsertNode(KindDealDamage, Vec2{})
	y := g.InsertNode(KindDealDamage, Vec2{})
	z := g.InsertNode(KindDealDamage, Vec2{})
	g.Connect(outPin(src, 0), inPin(x, 0))
	g.Connect(outPin(src, 0), inPin(y, 0))
	g.Connect(outPin(src, 1), inPin(z, 0))

	g.DropInputs(inPin(x, 0))
	if diff := cmp.Diff([]InPinID{inPin(y, 0)}, g.OutPin(outPin(src, 0)), cmp.AllowUnexported(NodeID{})); diff != "" {
		t.Errorf("after DropInputs (-want +got):\n%s", diff)
	}
	g.DropInputs(inPin(x, 0)) // no-op

	g.DropOutputs(outPin(src, 0))
	if _, ok := g.InPin(inPin(y, 0)); ok {
		t.Error("y still connected after DropOutputs")
	}
	if _, ok := g.InPin(inPin(z, 0)); !ok {
		t.Error("DropOutputs touched a different output pin")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestGraphConnectionsSorted(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode(KindSpread, Vec2{})
	b := g.InsertNode(KindDealDamage, Vec2{})
	c := g.InsertNode(KindDealDamage, Vec2{})
	g.Connect(outPin(a, 1), inPin(c, 0))
	g.Connect(outPin(a, 0), inPin(b, 0))

	want := []Connection{
		{From: outPin(a, 0), To: inPin(b, 0)},
		{From: outPin(a, 1), To: inPin(c, 0)},
	}
	if diff := cmp.Diff(want, g.Connections(), cmp.AllowUnexported(NodeID{})); diff != "" {
		t.Errorf("Connections mismatch (-want +got):\n%s", diff)
	}
}

// --- Validation ---

func TestGraphValidateDetectsCycle(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode(KindRepeat, Vec2{})
	b := g.InsertNode(KindRepeat, Vec2{})
	g.Connect(outPin(a, 0), inPin(b, 0))
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate on acyclic graph: %v", err)
	}

	// Graph.Connect is unchecked, so a cycle can be injected directly.
	g.Connect(outPin(b, 0), inPin(a, 0))
	err := g.Validate()
	if !errors.Is(err, ErrCycle) {
		t.Errorf("Validate = %v, want ErrCycle", err)
	}
}

func TestGraphValidateReportsBadPins(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode(KindOnShoot, Vec2{})
	b := g.InsertNode(KindDealDamage, Vec2{})
	g.Connect(outPin(a, 3), inPin(b, 0))
	g.Connect(outPin(a, 0), inPin(NodeID{index: 9, gen: 1}, 0))

	err := g.Validate()
	if !errors.Is(err, ErrPinOutOfRange) {
		t.Errorf("Validate = %v, want ErrPinOutOfRange", err)
	}
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Validate = %v, want ErrUnknownNode", err)
	}
}
