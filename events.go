package gui

// EventType identifies a scene event.
type EventType uint8

const (
	// EventNodeDeleted is emitted once for every node removed by DeleteNode
	// or ClearNodes, children included.
	EventNodeDeleted EventType = iota
	// EventAnimationComplete is emitted when an animation with a completion
	// callback runs to its end, right before the callback.
	EventAnimationComplete
	// EventAnimationCancelled is emitted when an animation with a completion
	// callback is cancelled, right before the callback.
	EventAnimationCancelled
)

// Event describes something that happened in a scene.
type Event struct {
	Type     EventType
	Node     HNode
	Property Property // animation events only

	// Opaque values passed to AnimateNode.
	UserData1 any
	UserData2 any
}

// EventStore receives scene events, typically to forward them into an ECS
// world. Events are delivered synchronously from the operation that caused
// them.
type EventStore interface {
	EmitEvent(event Event)
}
