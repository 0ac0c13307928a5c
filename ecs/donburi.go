package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/balloons"
)

// SelectionEventType is the Donburi event type for gallery selections.
// Subscribe to it in your ECS systems to react when a balloon is picked.
var SelectionEventType = events.NewEventType[balloons.SelectionEvent]()

// Selection holds the most recent selection on the entity created by
// TrackSelection.
var Selection = donburi.NewComponentType[balloons.SelectionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Selections
// are queued on SelectionEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) balloons.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSelection(event balloons.SelectionEvent) {
	SelectionEventType.Publish(s.world, event)
}

// TrackSelection creates an entity carrying a Selection component and keeps
// it updated with every processed selection event. It returns the entity.
func TrackSelection(world donburi.World) donburi.Entity {
	entity := world.Create(Selection)
	SelectionEventType.Subscribe(world, func(w donburi.World, e balloons.SelectionEvent) {
		if !w.Valid(entity) {
			return
		}
		Selection.SetValue(w.Entry(entity), e)
	})
	return entity
}

// LastSelection returns the selection stored on an entity created by
// TrackSelection. ok is false until the first selection is processed.
func LastSelection(world donburi.World, entity donburi.Entity) (balloons.SelectionEvent, bool) {
	if !world.Valid(entity) {
		return balloons.SelectionEvent{}, false
	}
	e := Selection.GetValue(world.Entry(entity))
	return e, e.ID != ""
}
