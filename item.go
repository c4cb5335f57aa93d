package quadtree

import "sync/atomic"

// itemFlags is the per-item state bitset.
type itemFlags uint8

const (
	flagAttached itemFlags = 1 << iota // linked into a node and the draw order
	flagSelected                       // marked by the live selection
	flagQueued                         // waiting in the pending-update queue
)

// itemIDCounter is shared by every tree, and trees may live on separate
// goroutines.
var itemIDCounter atomic.Uint32

func nextItemID() uint32 {
	return itemIDCounter.Add(1)
}

// Item is a positioned entity stored in a Tree. Items are owned by the caller;
// the tree only keeps non-owning references while the item is attached.
// An item must be removed from its tree before it is discarded.
type Item struct {
	// Identity
	id   uint32
	Name string

	// Bounds is the item's world-space box. Change it while detached, or
	// change it and then call Tree.UpdateItem.
	Bounds Rect
	// ZIndex is the virtual layer used as the primary draw-order key.
	ZIndex int

	// Metadata
	UserData any

	// OnPositionChanged is invoked by Tree.Update for every item moved with
	// UpdateItem since the previous Update. Nil by default.
	OnPositionChanged func(*Item)

	flags itemFlags

	// Placement in the node tree.
	node      *node
	nodeIndex int

	// Slot in the tree's unsorted attachment list.
	attachedIndex int

	// Slot in the draw order.
	prev, next *Item

	ordinal int

	// Collision pass cache.
	collidePass uint32
	collideOK   bool
}

// NewItem creates an item with the given bounds and Z layer.
func NewItem(name string, bounds Rect, z int) *Item {
	return &Item{
		id:      nextItemID(),
		Name:    name,
		Bounds:  bounds,
		ZIndex:  z,
		ordinal: -1,
	}
}

// ID returns the item's sequential identifier. Items built as struct literals
// report 0.
func (it *Item) ID() uint32 {
	return it.id
}

// Attached reports whether the item is currently linked into a tree.
func (it *Item) Attached() bool {
	return it.flags&flagAttached != 0
}

// Selected reports whether the item is marked by a live selection and has not
// been returned by NextSelected yet.
func (it *Item) Selected() bool {
	return it.flags&flagSelected != 0
}

// Queued reports whether the item waits for the next Tree.Update.
func (it *Item) Queued() bool {
	return it.flags&flagQueued != 0
}

// Ordinal returns the position at which the item was returned by the most
// recent selection pass, or -1 if it has never been returned.
func (it *Item) Ordinal() int {
	return it.ordinal
}

// SetBounds replaces the item's bounds.
func (it *Item) SetBounds(r Rect) {
	it.Bounds = r
}

// MoveTo recenters the item on (cx, cy), keeping its size.
func (it *Item) MoveTo(cx, cy float64) {
	it.Bounds = it.Bounds.Translate(cx-it.Bounds.CX, cy-it.Bounds.CY)
}

// MoveBy shifts the item by (dx, dy).
func (it *Item) MoveBy(dx, dy float64) {
	it.Bounds = it.Bounds.Translate(dx, dy)
}

// Resize changes the item's size, keeping its center.
func (it *Item) Resize(w, h float64) {
	cx, cy := it.Bounds.CX, it.Bounds.CY
	it.Bounds = NewRect(cx-w/2, cy-h/2, cx+w/2, cy+h/2)
}
