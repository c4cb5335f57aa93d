package quadtree

import (
	"fmt"
	"iter"
)

// Tree is the spatial index. It owns the quadrant hierarchy and keeps every
// attached item in two places: an unsorted attachment list and the draw order
// produced by the active Comparator.
//
// A Tree is not safe for concurrent use. Call Update, the selection methods
// and DetectCollisions from the frame loop that owns the tree.
type Tree struct {
	root     node
	capacity int
	maxDepth int

	attached []*Item
	order    orderedList
	pending  []*Item

	comparator Comparator
	axes       axes
	orderStale bool // comparator or axes changed since the last ReorderItems

	sel selection

	// version changes whenever placement changes; the collision pass compares
	// it against pairsVersion to decide if the cached pair list still holds.
	version      uint64
	pairs        []itemPair
	pairsVersion uint64
	pairsValid   bool

	debug bool
}

// NewTree creates an empty tree covering cfg.Bounds.
func NewTree(cfg Config) *Tree {
	cfg = cfg.withDefaults()
	return &Tree{
		root:       newNode(cfg.Bounds, 0),
		capacity:   cfg.Capacity,
		maxDepth:   cfg.MaxDepth,
		comparator: cfg.Comparator,
		axes:       axes{x: cfg.InvertX, y: cfg.InvertY, z: cfg.InvertZ},
	}
}

// Bounds returns the world extent covered by the tree.
func (t *Tree) Bounds() Rect {
	return t.root.bounds
}

// Capacity returns the number of items a leaf holds before it subdivides.
func (t *Tree) Capacity() int {
	return t.capacity
}

// Len returns the number of attached items.
func (t *Tree) Len() int {
	return len(t.attached)
}

// Attached returns every attached item in no particular order. The returned
// slice MUST NOT be mutated by the caller and is invalidated by the next
// AddItem, RemoveItem or UpdateItem.
func (t *Tree) Attached() []*Item {
	return t.attached
}

// Items iterates over the attached items in draw order.
func (t *Tree) Items() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for it := t.order.head; it != nil; it = it.next {
			if !yield(it) {
				return
			}
		}
	}
}

// before is the ordering predicate for the current comparator and axes.
func (t *Tree) before(p, q *Item) bool {
	return isBefore(t.comparator, t.axes, p, q)
}

// --- Attachment ---

// AddItem attaches it to the tree and inserts it into the draw order.
// It returns false, leaving the item untouched, when the item's bounds are
// not fully inside the tree or the item is already attached.
// Panics if it is nil.
func (t *Tree) AddItem(it *Item) bool {
	if it == nil {
		panic("quadtree: cannot add nil item")
	}
	if it.flags&flagAttached != 0 {
		return false
	}
	if !t.root.insert(it, t.capacity, t.maxDepth) {
		return false
	}
	t.link(it)
	if t.debug {
		debugCheckDepth(it, t.maxDepth)
		t.debugValidate("AddItem")
	}
	return true
}

// RemoveItem detaches it from its node and the draw order. Removing an item
// that is not attached is a no-op and returns false.
func (t *Tree) RemoveItem(it *Item) bool {
	if it == nil || it.flags&flagAttached == 0 {
		return false
	}
	t.unlink(it)
	if t.debug {
		t.debugValidate("RemoveItem")
	}
	return true
}

// UpdateItem re-places it after the caller changed its bounds and queues it for
// the next Update, which fires OnPositionChanged. An item moved several times
// between two Update calls is notified once.
//
// If the item was selected by a live selection it drops out of it.
// Panics if the item cannot be re-inserted, e.g. its bounds left the tree or
// became NaN.
func (t *Tree) UpdateItem(it *Item) {
	if it == nil {
		panic("quadtree: cannot update nil item")
	}
	if it.flags&flagAttached != 0 {
		t.unlink(it)
	}
	if !t.root.insert(it, t.capacity, t.maxDepth) {
		panic(fmt.Sprintf("quadtree: UpdateItem cannot reinsert item %q (ID %d) with bounds %+v",
			it.Name, it.id, it.Bounds))
	}
	t.link(it)
	if it.flags&flagQueued == 0 {
		it.flags |= flagQueued
		t.pending = append(t.pending, it)
	}
	if t.debug {
		debugCheckDepth(it, t.maxDepth)
		t.debugValidate("UpdateItem")
	}
}

// Update drains the pending-update queue in FIFO order, clearing each item's
// queued state and calling its OnPositionChanged callback. Items queued by the
// callbacks themselves wait for the next Update.
func (t *Tree) Update() {
	n := len(t.pending)
	for i := 0; i < n; i++ {
		it := t.pending[i]
		t.pending[i] = nil
		it.flags &^= flagQueued
		if it.OnPositionChanged != nil {
			it.OnPositionChanged(it)
		}
	}
	rest := copy(t.pending, t.pending[n:])
	clear(t.pending[rest:])
	t.pending = t.pending[:rest]
}

// Pending returns the number of items waiting for the next Update.
func (t *Tree) Pending() int {
	return len(t.pending)
}

// Clear detaches every item. Queued notifications are kept.
func (t *Tree) Clear() {
	for _, it := range t.attached {
		it.flags &^= flagAttached | flagSelected
		it.node = nil
		it.nodeIndex = 0
		it.attachedIndex = 0
	}
	clear(t.attached)
	t.attached = t.attached[:0]
	t.order.detachAll()
	t.root = newNode(t.root.bounds, 0)
	t.sel = selection{}
	t.version++
}

// Compact collapses subtrees left empty by removals. Nodes are otherwise never
// merged, so long-running scenes with moving items may call this from time to
// time to release memory.
func (t *Tree) Compact() {
	t.root.compact(t.capacity)
	t.version++
}

func (t *Tree) link(it *Item) {
	t.order.insertSorted(it, t.before)
	it.attachedIndex = len(t.attached)
	t.attached = append(t.attached, it)
	it.flags |= flagAttached
	t.version++
}

func (t *Tree) unlink(it *Item) {
	if t.sel.cursor == it {
		t.sel.advance()
	}
	if it.flags&flagSelected != 0 {
		it.flags &^= flagSelected
		t.sel.remaining--
	}
	detachFromNode(it)
	t.order.remove(it)

	i := it.attachedIndex
	last := len(t.attached) - 1
	if i != last {
		t.attached[i] = t.attached[last]
		t.attached[i].attachedIndex = i
	}
	t.attached[last] = nil
	t.attached = t.attached[:last]
	it.attachedIndex = 0

	it.flags &^= flagAttached
	t.version++
}

// --- Ordering ---

// Comparator returns the active draw-order comparator.
func (t *Tree) Comparator() Comparator {
	return t.comparator
}

// SetComparator switches the draw-order comparator. It returns false if c is
// already active. The existing order is not rebuilt; call ReorderItems.
func (t *Tree) SetComparator(c Comparator) bool {
	if t.comparator == c {
		return false
	}
	t.comparator = c
	t.orderStale = true
	return true
}

// InvertX reports whether the X axis of the draw order is flipped.
func (t *Tree) InvertX() bool { return t.axes.x }

// InvertY reports whether the Y axis of the draw order is flipped.
func (t *Tree) InvertY() bool { return t.axes.y }

// InvertZ reports whether higher Z layers are drawn first.
func (t *Tree) InvertZ() bool { return t.axes.z }

// SetInvertX flips the X axis of the draw order. Returns false if unchanged.
// Call ReorderItems afterwards.
func (t *Tree) SetInvertX(v bool) bool {
	if t.axes.x == v {
		return false
	}
	t.axes.x = v
	t.orderStale = true
	return true
}

// SetInvertY flips the Y axis of the draw order. Returns false if unchanged.
// Call ReorderItems afterwards.
func (t *Tree) SetInvertY(v bool) bool {
	if t.axes.y == v {
		return false
	}
	t.axes.y = v
	t.orderStale = true
	return true
}

// SetInvertZ flips the Z layer order. Returns false if unchanged.
// Call ReorderItems afterwards.
func (t *Tree) SetInvertZ(v bool) bool {
	if t.axes.z == v {
		return false
	}
	t.axes.z = v
	t.orderStale = true
	return true
}

// ReorderItems rebuilds the draw order under the current comparator and axes.
// Items are re-inserted one by one in their previous order, which is O(n²) in
// the worst case and O(n) when the order did not change.
func (t *Tree) ReorderItems() {
	for _, it := range t.order.detachAll() {
		t.order.insertSorted(it, t.before)
	}
	t.orderStale = false
	if t.sel.remaining > 0 {
		t.sel.restart(&t.order)
	}
	if t.debug {
		t.debugValidate("ReorderItems")
	}
}
