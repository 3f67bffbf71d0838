package ecs

import (
	"github.com/phanxgames/gui"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for gui scene events.
var SceneEventType = events.NewEventType[gui.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) gui.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event gui.Event) {
	SceneEventType.Publish(s.world, event)
}
