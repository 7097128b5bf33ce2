package ecs

import (
	"github.com/phanxgames/texmorph"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MorphEventType is the Donburi event type for texmorph lifecycle events.
var MorphEventType = events.NewEventType[texmorph.MorphEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are queued on MorphEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) texmorph.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitMorphEvent(event texmorph.MorphEvent) {
	MorphEventType.Publish(s.world, event)
}
