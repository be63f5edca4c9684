package ecs

import (
	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PageEventType is the Donburi event type for motion page events.
// Subscribe to this in your ECS systems to receive viewport, scroll and
// resize events.
var PageEventType = events.NewEventType[motion.Event]()

type donburiSink struct {
	world donburi.World
	types map[motion.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Page events
// are published to PageEventType and can be consumed with events.Subscribe
// and ProcessEvents. When types are given, only those event types are
// forwarded; scroll events arrive every frame while scrolling and are often
// not needed.
func NewDonburiSink(world donburi.World, types ...motion.EventType) motion.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.types = make(map[motion.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event motion.Event) {
	if s.types != nil && !s.types[event.Type] {
		return
	}
	PageEventType.Publish(s.world, event)
}
