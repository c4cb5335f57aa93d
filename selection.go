package quadtree

import (
	"fmt"
	"iter"
	"time"
)

// selection is the tree's single live query cursor. It walks the full draw
// order and stops only on items marked selected, so a query needs no result
// buffer. Only one selection can be live per tree.
type selection struct {
	cursor    *Item
	remaining int
	reverse   bool
	ordinal   int
}

// advance moves the cursor one step in the selection direction.
func (s *selection) advance() {
	if s.cursor == nil {
		return
	}
	if s.reverse {
		s.cursor = s.cursor.prev
	} else {
		s.cursor = s.cursor.next
	}
}

// restart puts the cursor back at the starting end of l.
func (s *selection) restart(l *orderedList) {
	if s.reverse {
		s.cursor = l.tail
	} else {
		s.cursor = l.head
	}
}

// SelectItems marks every attached item whose bounds intersect region and that
// passes filter, then positions the cursor at the head of the draw order (or
// the tail when reverse is set). A nil region selects the whole world and a
// nil filter accepts every item. Returns the number of items selected.
//
// Drain the selection with NextSelected or discard it with ReleaseSelected
// before starting another one. A selection that is still live is released
// here; in debug mode this panics instead.
func (t *Tree) SelectItems(region *Rect, filter ItemFilter, reverse bool) int {
	if t.sel.remaining > 0 {
		if t.debug {
			panic(fmt.Sprintf("quadtree: SelectItems while a selection is live (%d items undrained)", t.sel.remaining))
		}
		t.ReleaseSelected()
	}

	var t0 time.Time
	if t.debug {
		t0 = time.Now()
	}

	visited := 0
	count := t.root.selectInRegion(region, filter, &visited)
	t.sel = selection{remaining: count, reverse: reverse}
	if count > 0 {
		t.sel.restart(&t.order)
	}

	if t.debug {
		t.debugLogSelect(selectStats{
			elapsed:  time.Since(t0),
			visited:  visited,
			selected: count,
			total:    len(t.attached),
		})
	}
	return count
}

// NextSelected returns the next selected item in draw order, clears its
// selected state and assigns it the next ordinal. Returns nil once the
// selection is drained.
func (t *Tree) NextSelected() *Item {
	for t.sel.remaining > 0 && t.sel.cursor != nil {
		it := t.sel.cursor
		t.sel.advance()
		if it.flags&flagSelected == 0 {
			continue
		}
		it.flags &^= flagSelected
		it.ordinal = t.sel.ordinal
		t.sel.ordinal++
		t.sel.remaining--
		if t.sel.remaining == 0 {
			t.sel.cursor = nil
		}
		return it
	}
	return nil
}

// Remaining returns the number of selected items not yet returned by
// NextSelected.
func (t *Tree) Remaining() int {
	return t.sel.remaining
}

// Selected iterates over the live selection, draining it through NextSelected.
// Breaking out of the loop leaves the rest of the selection live; call
// ReleaseSelected to discard it.
func (t *Tree) Selected() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for it := t.NextSelected(); it != nil; it = t.NextSelected() {
			if !yield(it) {
				return
			}
		}
	}
}

// ReleaseSelected clears the selected state of every item still in the live
// selection without returning them.
func (t *Tree) ReleaseSelected() {
	for t.sel.remaining > 0 && t.sel.cursor != nil {
		it := t.sel.cursor
		t.sel.advance()
		if it.flags&flagSelected != 0 {
			it.flags &^= flagSelected
			t.sel.remaining--
		}
	}
	if t.sel.remaining > 0 {
		// Cursor ran off the list; sweep everything.
		for _, it := range t.attached {
			it.flags &^= flagSelected
		}
	}
	t.sel = selection{}
}

// CountItems returns how many attached items intersect region and pass
// filter. It runs a full selection and releases it, so no item is left
// selected afterwards.
func (t *Tree) CountItems(region *Rect, filter ItemFilter) int {
	n := t.SelectItems(region, filter, false)
	t.ReleaseSelected()
	return n
}
