// Package nodewire is a node-graph event engine for gameplay behavior built on
// [Ebitengine].
//
// Behavior is composed from nodes (trigger sources, effects, routers) wired
// output pin to input pin. At runtime, payloads propagate through the wiring
// one graph layer per tick, and effect nodes turn them into world effects the
// game consumes.
//
// # Quick start
//
// The simplest setup is [NewSeededEngine], which builds the starting graph
// and records its shoot trigger:
//
//	engine, _ := nodewire.NewSeededEngine(nodewire.DefaultConfig())
//	engine.SetEffectSink(sink)
//
// Then, from the game's Update:
//
//	if shootPressed {
//		engine.Fire(engine.ShootTrigger(), 0, nodewire.Payload{}.WithLoc(player).WithDir(aim))
//	}
//	engine.Tick()
//
// # Graph
//
// A [Graph] owns [Node] values addressed by opaque [NodeID] handles and the
// connections between their pins. Pin counts are fixed by the node's [Kind].
// An input pin accepts one connection; connecting a second replaces the first.
// An output pin may fan out to any number of inputs.
//
// # Editing
//
// User edits go through the [Editor], which refuses any connection that
// would close a cycle (including a node wired to itself) and reports the
// refusal through [Editor.OnReject]. [Graph.Connect] is the unchecked
// primitive underneath.
//
// # Propagation
//
// [Engine.Fire] queues an output firing. Each [Engine.Tick] fans the firings
// queued before it out into one activation per connected input, and
// interprets the activations queued by the previous tick. Interpretation
// either emits an [Effect] to the [EffectSink] or re-fires the node's own
// outputs, which the next tick fans out. A firing thus reaches its
// destinations' behavior one tick after it is fanned out, and each router on
// the path adds two ticks. Nothing inside one tick sees work queued during
// that tick, so propagation is deterministic and a cycle can never hang a
// frame.
//
// When a consumer finishes an effect (a bullet despawns, a target dies), it
// fires [Effect.CompletionPin] to let the graph react.
//
// # ECS
//
// The ecs subpackage publishes effects as [Donburi] events and provides the
// bullet and damage systems used by the example game.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package nodewire
