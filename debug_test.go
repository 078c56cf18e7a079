package nodewire

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugCheckFanOut(t *testing.T) {
	var buf bytes.Buffer
	log := bufferLogger(&buf)
	pin := OutPinID{Node: NodeID{index: 0, gen: 1}, Output: 0}

	debugCheckFanOut(log, pin, debugMaxFanOut)
	if buf.Len() != 0 {
		t.Errorf("warned at threshold: %q", buf.String())
	}
	debugCheckFanOut(log, pin, debugMaxFanOut+1)
	if !strings.Contains(buf.String(), "fan-out exceeds threshold") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestDebugCheckGraphPanics(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode(KindRepeat, Vec2{})
	g.Connect(outPin(a, 0), inPin(a, 0))

	defer func() {
		r := recover()
		msg, _ := r.(string)
		if !strings.HasPrefix(msg, "nodewire debug: test") {
			t.Errorf("panic = %v", r)
		}
	}()
	debugCheckGraph(g, "test")
}

func TestDebugTickLogsStats(t *testing.T) {
	var buf bytes.Buffer
	cfg := quietConfig()
	cfg.Debug = true
	cfg.Logger = bufferLogger(&buf)
	e := NewEngine(NewGraph(), cfg)

	e.Tick()
	if !strings.Contains(buf.String(), "tick") || !strings.Contains(buf.String(), "took") {
		t.Errorf("log = %q", buf.String())
	}
}
