package nodewire

import (
	"errors"
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"
)

// EffectSink receives world effects. The ecs package provides one backed by
// a Donburi world.
type EffectSink interface {
	EmitEffect(effect Effect)
}

// EffectSinkFunc adapts a function to EffectSink.
type EffectSinkFunc func(Effect)

// EmitEffect calls f(effect).
func (f EffectSinkFunc) EmitEffect(effect Effect) { f(effect) }

// TickStats summarizes one call to Engine.Tick.
type TickStats struct {
	Tick       uint64
	Fired      int // output firings fanned out this tick
	Activated  int // activations interpreted this tick
	Effects    int // world effects emitted
	Queued     int // occurrences waiting for the next tick
	OverBudget bool
	Duration   time.Duration // only measured in debug mode
}

// Engine drives propagation through a graph.
//
// A firing queued before a call to Tick, whether by Fire or re-fired by an
// activation interpreted in the previous Tick, is fanned out into activations
// by that Tick. Those activations are interpreted by the next Tick. One hop
// through a router therefore costs two ticks. Within a tick occurrences are
// handled in the order they were queued. A cycle that somehow bypassed the Editor therefore
// shows up as work growing tick over tick, never as a hang inside one tick.
//
// Engine is single-threaded. Call Fire, Tick and the Editor from the same
// goroutine, typically the game's Update.
type Engine struct {
	graph  *Graph
	editor *Editor
	interp *Interpreter
	sink   EffectSink
	log    hclog.Logger
	debug  bool
	budget int

	fires       queue[OutputFired]
	activations queue[NodeActivated]
	tick        uint64

	shootTrigger NodeID

	onActivate registry[NodeActivated]
	onEffect   registry[Effect]
}

// NewEngine creates an engine that propagates through g.
func NewEngine(g *Graph, cfg Config) *Engine {
	logger := cfg.logger()
	editor := NewEditor(g, logger)
	editor.debug = cfg.Debug
	return &Engine{
		graph:  g,
		editor: editor,
		interp: NewInterpreter(cfg),
		log:    logger.Named("engine"),
		debug:  cfg.Debug,
		budget: cfg.ActivationBudget,
	}
}

// Graph returns the engine's graph. Callers may read it freely; connection
// edits should go through Editor.
func (e *Engine) Graph() *Graph { return e.graph }

// Editor returns the connection editor bound to the engine's graph.
func (e *Engine) Editor() *Editor { return e.editor }

// SetEffectSink sets where world effects are delivered. A nil sink drops
// them (OnEffect callbacks still fire).
func (e *Engine) SetEffectSink(sink EffectSink) { e.sink = sink }

// SetShootTrigger records the well-known trigger node stimulus producers fire.
func (e *Engine) SetShootTrigger(id NodeID) { e.shootTrigger = id }

// ShootTrigger returns the node set by SetShootTrigger.
func (e *Engine) ShootTrigger() NodeID { return e.shootTrigger }

// CurrentTick returns the number of completed ticks.
func (e *Engine) CurrentTick() uint64 { return e.tick }

// OnActivate registers fn to be called for every activation as it is
// interpreted.
func (e *Engine) OnActivate(fn func(NodeActivated)) CallbackHandle {
	return e.onActivate.add(fn)
}

// OnEffect registers fn to be called for every emitted world effect, after
// the sink.
func (e *Engine) OnEffect(fn func(Effect)) CallbackHandle {
	return e.onEffect.add(fn)
}

// Fire queues output pin output of node with payload. The firing is fanned
// out on the next Tick. Firing an unconnected output does nothing.
func (e *Engine) Fire(node NodeID, output int, payload Payload) {
	e.fires.push(OutputFired{Node: node, Output: output, Payload: payload})
}

// PendingFires returns a copy of the firings the next Tick will fan out.
func (e *Engine) PendingFires() []OutputFired {
	return slices.Clone(e.fires.peek())
}

// PendingActivations returns a copy of the activations the next Tick will
// interpret.
func (e *Engine) PendingActivations() []NodeActivated {
	return slices.Clone(e.activations.peek())
}

// Idle reports whether nothing is queued.
func (e *Engine) Idle() bool {
	return e.fires.len() == 0 && e.activations.len() == 0
}

// Tick runs one scheduling step.
func (e *Engine) Tick() TickStats {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.tick++
	stats := TickStats{Tick: e.tick}

	// Both batches are detached before any work so that everything queued
	// while processing them lands in the next tick.
	acts := e.activations.take()
	fires := e.fires.take()

	for _, f := range fires {
		e.fanOut(f)
	}
	stats.Fired = len(fires)

	if e.budget > 0 && len(acts) > e.budget {
		stats.OverBudget = true
		e.log.Warn("activation budget exceeded; graph may contain a cycle",
			"tick", e.tick, "activations", len(acts), "budget", e.budget)
	}
	for _, act := range acts {
		stats.Effects += e.activate(act)
	}
	stats.Activated = len(acts)
	stats.Queued = e.fires.len() + e.activations.len()

	if e.debug {
		stats.Duration = time.Since(t0)
		e.debugLog(stats)
	}
	return stats
}

// fanOut turns one firing into an activation per connected input.
func (e *Engine) fanOut(f OutputFired) {
	n, ok := e.graph.Node(f.Node)
	if !ok {
		e.log.Warn("fired output on missing node; skipping", "node", f.Node.String(), "output", f.Output)
		return
	}
	if f.Output < 0 || f.Output >= n.Outputs() {
		e.log.Warn("fired output out of range; skipping", "pin", f.Pin().String(), "outputs", n.Outputs())
		return
	}
	remotes := e.graph.OutPin(f.Pin())
	if e.debug {
		debugCheckFanOut(e.log, f.Pin(), len(remotes))
	}
	for _, in := range remotes {
		e.activations.push(NodeActivated{Node: in.Node, Input: in.Input, Payload: f.Payload})
	}
}

// activate interprets one activation and returns the number of effects.
func (e *Engine) activate(act NodeActivated) int {
	e.onActivate.emit(act)
	out, err := e.interp.Interpret(e.graph, act)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			e.log.Error("activation reached unhandled kind", "node", act.Node.String(), "error", err)
		} else {
			e.log.Warn("activation skipped", "node", act.Node.String(), "error", err)
		}
		return 0
	}
	for _, eff := range out.Effects {
		if e.sink != nil {
			e.sink.EmitEffect(eff)
		}
		e.onEffect.emit(eff)
	}
	for _, f := range out.Fires {
		e.fires.push(f)
	}
	return len(out.Effects)
}
