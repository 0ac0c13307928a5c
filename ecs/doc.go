// Package ecs bridges gallery selection events into a [Donburi] world.
//
// [NewDonburiSink] publishes every picked balloon as a typed event on
// [SelectionEventType]; [TrackSelection] keeps the latest one on an entity
// for systems that prefer querying state over subscribing.
//
// Usage:
//
//	world := donburi.NewWorld()
//	game := gallery.New(gallery.Options{Sink: ecs.NewDonburiSink(world)})
//	// in your systems, once per tick:
//	ecs.SelectionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
