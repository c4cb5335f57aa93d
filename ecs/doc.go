// Package ecs provides ECS adapters for quadtree's callbacks.
//
// [NewDonburiCollisions] turns collision passes into [Donburi] events, and
// [PublishMoves] does the same for position-change notifications. Subscribe to
// [CollisionEventType] and [MoveEventType] in your ECS systems to receive them.
//
// Usage:
//
//	handler := ecs.NewDonburiCollisions(world, nil)
//	item.UserData = entity
//	item.OnPositionChanged = ecs.PublishMoves(world)
//
//	tree.Update()
//	tree.DetectCollisions(handler, false)
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
