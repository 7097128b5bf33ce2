// Package ecs provides ECS adapters for texmorph's morph lifecycle events.
//
// The primary adapter is [NewDonburiSink], which forwards morph events
// (started, finished, disposed, failed) into a [Donburi] world as typed
// events. Subscribe to [MorphEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
