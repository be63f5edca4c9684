// Package ecs provides ECS adapters for motion's page events.
//
// The primary adapter is [NewDonburiSink], which bridges page events (viewport
// enter/leave, scroll, resize) into a [Donburi] world as typed events.
// Subscribe to [PageEventType] in your ECS systems to receive them, for
// example to start a sprite animation when its section scrolls into view.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	page.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
