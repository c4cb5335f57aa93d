// Package ecs provides ECS adapters for quadtree.
package ecs

import (
	"github.com/phanxgames/quadtree"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CollisionEvent is published once per overlapping pair found by
// Tree.DetectCollisions.
type CollisionEvent struct {
	A, B *quadtree.Item
}

// MoveEvent is published when an item moved with Tree.UpdateItem is flushed
// by Tree.Update.
type MoveEvent struct {
	Item   *quadtree.Item
	CX, CY float64
}

// CollisionEventType is the Donburi event type for item collisions.
// Subscribe to this in your ECS systems to receive overlapping pairs.
var CollisionEventType = events.NewEventType[CollisionEvent]()

// MoveEventType is the Donburi event type for item moves.
var MoveEventType = events.NewEventType[MoveEvent]()

type donburiCollisions struct {
	world  donburi.World
	filter quadtree.ItemFilter
}

// NewDonburiCollisions creates a CollisionHandler that publishes every pair to
// CollisionEventType. A nil filter lets every item take part.
//
// Events are queued; consume them with events.Subscribe and ProcessEvents
// after DetectCollisions returns.
func NewDonburiCollisions(world donburi.World, filter quadtree.ItemFilter) quadtree.CollisionHandler {
	return &donburiCollisions{world: world, filter: filter}
}

func (h *donburiCollisions) CollisionFilter(it *quadtree.Item) bool {
	return h.filter == nil || h.filter(it)
}

func (h *donburiCollisions) OnCollision(a, b *quadtree.Item) {
	CollisionEventType.Publish(h.world, CollisionEvent{A: a, B: b})
}

// PublishMoves returns an OnPositionChanged callback that publishes a
// MoveEvent to world.
//
//	item.OnPositionChanged = ecs.PublishMoves(world)
func PublishMoves(world donburi.World) func(*quadtree.Item) {
	return func(it *quadtree.Item) {
		MoveEventType.Publish(world, MoveEvent{Item: it, CX: it.Bounds.CX, CY: it.Bounds.CY})
	}
}

// EntityOf returns the Donburi entity stored in the item's UserData.
func EntityOf(it *quadtree.Item) (donburi.Entity, bool) {
	e, ok := it.UserData.(donburi.Entity)
	return e, ok
}
