// Package ecs provides ECS adapters for gui scene events.
//
// The primary adapter is [NewDonburiStore], which bridges scene events (node
// deletion, animation completion and cancellation) into a [Donburi] world as
// typed events. Subscribe to [SceneEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
