package quadtree

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"
)

// --- AddItem / RemoveItem ---

func TestAddItemAttaches(t *testing.T) {
	tree := newTestTree(4)
	it := NewItem("a", NewRect(0, 0, 10, 10), 0)
	if !tree.AddItem(it) {
		t.Fatal("AddItem = false")
	}
	if !it.Attached() {
		t.Error("item not flagged attached")
	}
	if tree.Len() != 1 || len(tree.Attached()) != 1 {
		t.Errorf("Len = %d, Attached = %d, want 1", tree.Len(), len(tree.Attached()))
	}
	if tree.order.head != it || tree.order.tail != it {
		t.Error("item not in draw order")
	}
}

func TestAddItemOutsideFails(t *testing.T) {
	tree := newTestTree(4)
	it := NewItem("far", NewRect(150, 150, 160, 160), 0)
	if tree.AddItem(it) {
		t.Fatal("AddItem outside the world = true")
	}
	if it.Attached() || it.node != nil || it.prev != nil || it.next != nil {
		t.Error("failed AddItem touched the item")
	}
	if tree.Len() != 0 {
		t.Errorf("Len = %d, want 0", tree.Len())
	}
}

func TestAddItemNaNFails(t *testing.T) {
	tree := newTestTree(4)
	it := NewItem("nan", NewRect(0, 0, math.NaN(), 10), 0)
	if tree.AddItem(it) {
		t.Error("AddItem with NaN bounds = true")
	}
}

func TestAddItemTwice(t *testing.T) {
	tree := newTestTree(4)
	it := NewItem("a", NewRect(0, 0, 10, 10), 0)
	mustAdd(t, tree, it)
	if tree.AddItem(it) {
		t.Error("second AddItem = true")
	}
	if tree.Len() != 1 {
		t.Errorf("Len = %d, want 1", tree.Len())
	}
}

func TestAddItemNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on nil item")
		}
	}()
	newTestTree(4).AddItem(nil)
}

func TestRemoveItemIdempotent(t *testing.T) {
	tree := newTestTree(4)
	a := NewItem("a", NewRect(0, 0, 10, 10), 0)
	b := NewItem("b", NewRect(20, 20, 30, 30), 0)
	mustAdd(t, tree, a, b)

	if !tree.RemoveItem(a) {
		t.Fatal("first RemoveItem = false")
	}
	if tree.RemoveItem(a) {
		t.Error("second RemoveItem = true")
	}
	if a.Attached() || a.node != nil {
		t.Error("removed item still attached")
	}
	if tree.Len() != 1 || tree.order.head != b || tree.order.tail != b {
		t.Error("second RemoveItem touched the draw order")
	}
	if tree.RemoveItem(nil) {
		t.Error("RemoveItem(nil) = true")
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAddRemoveKeepsListsInSync(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := newTestTree(3)
	var live []*Item
	for step := 0; step < 500; step++ {
		if len(live) == 0 || rng.Intn(3) != 0 {
			x := rng.Float64()*190 - 95
			y := rng.Float64()*190 - 95
			w := 1 + rng.Float64()*4
			it := NewItem(fmt.Sprintf("i%d", step), NewRect(x, y, x+w, y+w), rng.Intn(4))
			if tree.AddItem(it) {
				live = append(live, it)
			}
		} else {
			i := rng.Intn(len(live))
			if !tree.RemoveItem(live[i]) {
				t.Fatalf("step %d: RemoveItem(%q) = false", step, live[i].Name)
			}
			live = append(live[:i], live[i+1:]...)
		}
		if tree.Len() != tree.order.len {
			t.Fatalf("step %d: attached %d, ordered %d", step, tree.Len(), tree.order.len)
		}
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if tree.Len() != len(live) {
		t.Errorf("Len = %d, want %d", tree.Len(), len(live))
	}
	for _, it := range live {
		if !it.Attached() {
			t.Errorf("live item %q not attached", it.Name)
		}
	}
}

func TestClear(t *testing.T) {
	tree := newTestTree(1)
	items := []*Item{
		NewItem("a", NewRect(-90, -90, -80, -80), 0),
		NewItem("b", NewRect(80, 80, 90, 90), 0),
	}
	mustAdd(t, tree, items...)
	tree.Clear()
	if tree.Len() != 0 || tree.order.head != nil {
		t.Error("Clear left items behind")
	}
	if !tree.root.isLeaf() {
		t.Error("Clear kept the subdivided nodes")
	}
	for _, it := range items {
		if it.Attached() || it.node != nil {
			t.Errorf("item %q still attached after Clear", it.Name)
		}
	}
	mustAdd(t, tree, items...)
}

// --- UpdateItem / Update ---

func TestUpdateItemMovesBetweenQuadrants(t *testing.T) {
	tree := newTestTree(1)
	a := NewItem("a", NewRect(-90, -90, -80, -80), 0)
	b := NewItem("b", NewRect(80, 80, 90, 90), 0)
	mustAdd(t, tree, a, b)
	if a.node != &tree.root.children[0] {
		t.Fatal("a should start in the NW child")
	}

	a.MoveTo(60, -60)
	tree.UpdateItem(a)
	if a.node == nil || !a.node.bounds.ContainsRect(a.Bounds) {
		t.Fatal("a not re-placed in a containing node")
	}
	if a.node == &tree.root.children[0] {
		t.Error("a still in the NW child after moving to the NE quadrant")
	}
	if !a.Queued() {
		t.Error("updated item not queued")
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestUpdateItemKeepsDrawOrder(t *testing.T) {
	tree := newTestTree(4)
	a := at("a", 0, -10, 0)
	b := at("b", 0, 10, 0)
	mustAdd(t, tree, a, b)

	a.MoveTo(0, 20)
	tree.UpdateItem(a)
	if got := drawOrder(tree); !equalStrings(got, []string{"b", "a"}) {
		t.Errorf("order after move = %v, want [b a]", got)
	}
}

func TestUpdateBatchesNotifications(t *testing.T) {
	tree := newTestTree(4)
	calls := map[string]int{}
	var order []string
	notify := func(it *Item) {
		calls[it.Name]++
		order = append(order, it.Name)
	}
	a := NewItem("a", NewRect(0, 0, 10, 10), 0)
	b := NewItem("b", NewRect(20, 20, 30, 30), 0)
	a.OnPositionChanged = notify
	b.OnPositionChanged = notify
	mustAdd(t, tree, a, b)

	b.MoveBy(1, 1)
	tree.UpdateItem(b)
	a.MoveBy(1, 1)
	tree.UpdateItem(a)
	b.MoveBy(1, 1)
	tree.UpdateItem(b)

	if len(calls) != 0 {
		t.Fatal("OnPositionChanged fired before Update")
	}
	if tree.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", tree.Pending())
	}

	tree.Update()
	if calls["a"] != 1 || calls["b"] != 1 {
		t.Errorf("calls = %v, want one each", calls)
	}
	if !equalStrings(order, []string{"b", "a"}) {
		t.Errorf("notification order = %v, want FIFO [b a]", order)
	}
	if a.Queued() || b.Queued() || tree.Pending() != 0 {
		t.Error("queue not drained")
	}

	tree.Update()
	if calls["a"] != 1 || calls["b"] != 1 {
		t.Error("second Update re-notified")
	}
}

func TestUpdateDefersRequeueFromCallback(t *testing.T) {
	tree := newTestTree(4)
	it := NewItem("bouncer", NewRect(0, 0, 10, 10), 0)
	calls := 0
	it.OnPositionChanged = func(it *Item) {
		calls++
		it.MoveBy(1, 0)
		tree.UpdateItem(it)
	}
	mustAdd(t, tree, it)
	tree.UpdateItem(it)

	tree.Update()
	if calls != 1 {
		t.Fatalf("calls = %d after first Update, want 1", calls)
	}
	if !it.Queued() || tree.Pending() != 1 {
		t.Error("item re-queued by its callback should wait for the next Update")
	}
	tree.Update()
	if calls != 2 {
		t.Errorf("calls = %d after second Update, want 2", calls)
	}
}

func TestUpdateItemOutsidePanics(t *testing.T) {
	tree := newTestTree(4)
	it := NewItem("runaway", NewRect(0, 0, 10, 10), 0)
	mustAdd(t, tree, it)

	it.MoveBy(500, 0)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic when UpdateItem cannot reinsert")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "runaway") {
			t.Errorf("panic message should name the item, got: %s", msg)
		}
	}()
	tree.UpdateItem(it)
}

func TestUpdateItemAttachesDetachedItem(t *testing.T) {
	tree := newTestTree(4)
	it := NewItem("late", NewRect(0, 0, 10, 10), 0)
	tree.UpdateItem(it)
	if !it.Attached() || !it.Queued() {
		t.Error("UpdateItem on a detached item should attach and queue it")
	}
}

// --- Item helpers ---

func TestItemMoveAndResize(t *testing.T) {
	it := NewItem("box", NewRect(0, 0, 10, 20), 0)
	it.MoveTo(50, 50)
	if it.Bounds.X1 != 45 || it.Bounds.Y1 != 40 || it.Bounds.X2 != 55 || it.Bounds.Y2 != 60 {
		t.Errorf("MoveTo bounds = %+v", it.Bounds)
	}
	it.Resize(4, 4)
	if !approxEqual(it.Bounds.Width(), 4, 1e-9) || !approxEqual(it.Bounds.CX, 50, 1e-9) {
		t.Errorf("Resize bounds = %+v", it.Bounds)
	}
	if it.Ordinal() != -1 {
		t.Errorf("Ordinal of a fresh item = %d, want -1", it.Ordinal())
	}
	if it.ID() == 0 {
		t.Error("NewItem did not assign an ID")
	}
}

func TestNewItemIDsUniqueAcrossGoroutines(t *testing.T) {
	const workers, perWorker = 8, 500
	ids := make([][]uint32, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids[w] = append(ids[w], NewItem("g", Rect{}, 0).ID())
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uint32]bool, workers*perWorker)
	for _, batch := range ids {
		for _, id := range batch {
			if seen[id] {
				t.Fatalf("duplicate item ID %d", id)
			}
			seen[id] = true
		}
	}
}
