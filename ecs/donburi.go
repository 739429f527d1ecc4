// Package ecs provides ECS adapters for flipbook.
package ecs

import (
	"github.com/phanxgames/flipbook"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FlipEventType is the Donburi event type for page-turn outcomes, both
// committed flips and canceled turns (see FlipEvent.Committed).
var FlipEventType = events.NewEventType[flipbook.FlipEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to FlipEventType and delivered by events.ProcessAllEvents or
// FlipEventType.ProcessEvents.
func NewDonburiSink(world donburi.World) flipbook.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitFlip(event flipbook.FlipEvent) {
	FlipEventType.Publish(s.world, event)
}
