// Package ecs connects nodewire to a [Donburi] world.
//
// [NewDonburiSink] publishes every world effect the engine emits as an
// [EffectEventType] event. Events are queued and delivered when the world's
// events are processed, so the graph never calls into gameplay code directly.
//
// [Gameplay] is the set of systems the example game runs on top of that
// stream: bullets travel along a tween and report back to the graph when they
// hit something or despawn, and damage effects wear down targets.
//
// Usage:
//
//	world := donburi.NewWorld()
//	engine.SetEffectSink(ecs.NewDonburiSink(world))
//	game := ecs.NewGameplay(world, engine, ecs.DefaultGameplayConfig())
//
//	// each frame
//	engine.Tick()
//	game.Update(dt)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
