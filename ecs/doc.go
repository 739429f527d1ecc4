// Package ecs provides ECS adapters for flipbook's page-turn events.
//
// [NewDonburiSink] bridges flip and cancel outcomes into a [Donburi] world
// as typed events. Subscribe to [FlipEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	book.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
