package ecs

import (
	"github.com/phanxgames/nodewire"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EffectEventType is the Donburi event type for nodewire world effects.
// Subscribe to it in your ECS systems to consume effects.
var EffectEventType = events.NewEventType[nodewire.Effect]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EffectSink backed by a Donburi world. Effects are
// published to EffectEventType and delivered by EffectEventType.ProcessEvents
// or events.ProcessAllEvents.
func NewDonburiSink(world donburi.World) nodewire.EffectSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEffect(effect nodewire.Effect) {
	EffectEventType.Publish(s.world, effect)
}

// EntityRef converts a Donburi entity into a payload target.
func EntityRef(e donburi.Entity) nodewire.Entity {
	return nodewire.Entity(e)
}

// EntityOf converts a payload target back into a Donburi entity.
func EntityOf(ref nodewire.Entity) donburi.Entity {
	return donburi.Entity(ref)
}
