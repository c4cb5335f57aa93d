package ecs

import (
	"testing"

	"github.com/phanxgames/quadtree"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

var tag = donburi.NewComponentType[struct{}]()

func newTree() *quadtree.Tree {
	return quadtree.NewTree(quadtree.Config{Bounds: quadtree.NewRect(-100, -100, 100, 100), Capacity: 4})
}

func TestNewDonburiCollisions(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiCollisions(world, nil) == nil {
		t.Fatal("NewDonburiCollisions returned nil")
	}
}

func TestDonburiCollisions_PublishesPairs(t *testing.T) {
	world := donburi.NewWorld()
	tree := newTree()
	a := quadtree.NewItem("A", quadtree.NewRect(0, 0, 10, 10), 0)
	b := quadtree.NewItem("B", quadtree.NewRect(5, 5, 15, 15), 0)
	c := quadtree.NewItem("C", quadtree.NewRect(50, 50, 60, 60), 0)
	tree.AddItem(a)
	tree.AddItem(b)
	tree.AddItem(c)

	var received []CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e CollisionEvent) {
		received = append(received, e)
	})

	if n := tree.DetectCollisions(NewDonburiCollisions(world, nil), false); n != 1 {
		t.Fatalf("DetectCollisions = %d, want 1", n)
	}
	if len(received) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}

	// Events are queued; process them.
	CollisionEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	e := received[0]
	if !(e.A == a && e.B == b) && !(e.A == b && e.B == a) {
		t.Errorf("event pair = (%s, %s), want A and B", e.A.Name, e.B.Name)
	}
}

func TestDonburiCollisions_Filter(t *testing.T) {
	world := donburi.NewWorld()
	tree := newTree()
	a := quadtree.NewItem("A", quadtree.NewRect(0, 0, 10, 10), 0)
	b := quadtree.NewItem("B", quadtree.NewRect(5, 5, 15, 15), 0)
	tree.AddItem(a)
	tree.AddItem(b)

	count := 0
	CollisionEventType.Subscribe(world, func(w donburi.World, e CollisionEvent) {
		count++
	})

	h := NewDonburiCollisions(world, func(it *quadtree.Item) bool { return it != b })
	tree.DetectCollisions(h, true)
	events.ProcessAllEvents(world)

	if count != 0 {
		t.Errorf("filtered pair published %d times", count)
	}
}

func TestPublishMoves(t *testing.T) {
	world := donburi.NewWorld()
	tree := newTree()
	it := quadtree.NewItem("mover", quadtree.NewRect(0, 0, 10, 10), 0)
	it.OnPositionChanged = PublishMoves(world)
	tree.AddItem(it)

	var received []MoveEvent
	MoveEventType.Subscribe(world, func(w donburi.World, e MoveEvent) {
		received = append(received, e)
	})

	it.MoveTo(40, 30)
	tree.UpdateItem(it)
	tree.Update()
	events.ProcessAllEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Item != it || received[0].CX != 40 || received[0].CY != 30 {
		t.Errorf("event = %+v", received[0])
	}
}

func TestEntityOf(t *testing.T) {
	world := donburi.NewWorld()
	entity := world.Create(tag)

	it := quadtree.NewItem("e", quadtree.NewRect(0, 0, 1, 1), 0)
	if _, ok := EntityOf(it); ok {
		t.Error("EntityOf reported an entity for empty UserData")
	}
	it.UserData = entity
	got, ok := EntityOf(it)
	if !ok || got != entity {
		t.Errorf("EntityOf = %v, %v, want %v", got, ok, entity)
	}
}
