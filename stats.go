package quadtree

import "fmt"

// Stats describes the shape of a Tree.
type Stats struct {
	Nodes    int // all nodes, including the root
	Leaves   int
	Depth    int // deepest node, the root being depth 0
	Items    int
	Overflow int // items held by internal nodes because they straddle a split line
}

// Stats walks the node hierarchy and returns its shape.
func (t *Tree) Stats() Stats {
	var s Stats
	t.root.walk(func(n *node) {
		s.Nodes++
		s.Items += len(n.items)
		if n.depth > s.Depth {
			s.Depth = n.depth
		}
		if n.isLeaf() {
			s.Leaves++
		} else {
			s.Overflow += len(n.items)
		}
	})
	return s
}

// Validate checks the tree's structural invariants and returns the first
// violation found:
//   - the attachment list and the draw order hold the same items, once each;
//   - every attached item sits on exactly one node that contains its bounds;
//   - leaves above the depth limit hold at most Capacity items;
//   - items on internal nodes do not fit in any single child;
//   - the draw order has no adjacent pair out of order, unless the comparator
//     or an axis changed since the last ReorderItems;
//   - the number of selected items matches the live selection.
func (t *Tree) Validate() error {
	if len(t.attached) != t.order.len {
		return fmt.Errorf("attached list has %d items, draw order has %d", len(t.attached), t.order.len)
	}
	for i, it := range t.attached {
		if it.flags&flagAttached == 0 {
			return fmt.Errorf("item %q in attached list is not flagged attached", it.Name)
		}
		if it.attachedIndex != i {
			return fmt.Errorf("item %q has attached index %d, stored at %d", it.Name, it.attachedIndex, i)
		}
	}

	seen := make(map[*Item]bool, len(t.attached))
	selected := 0
	var prev *Item
	for it := t.order.head; it != nil; it = it.next {
		if seen[it] {
			return fmt.Errorf("item %q appears twice in draw order", it.Name)
		}
		seen[it] = true
		if it.prev != prev {
			return fmt.Errorf("item %q has a broken back link", it.Name)
		}
		if it.flags&flagAttached == 0 {
			return fmt.Errorf("item %q in draw order is not attached", it.Name)
		}
		if prev != nil && !t.orderStale && t.before(it, prev) {
			return fmt.Errorf("items %q and %q are out of order", prev.Name, it.Name)
		}
		if it.flags&flagSelected != 0 {
			selected++
		}
		prev = it
	}
	if prev != t.order.tail {
		return fmt.Errorf("draw order tail does not match its last item")
	}
	if len(seen) != len(t.attached) {
		return fmt.Errorf("draw order has %d distinct items, attached list has %d", len(seen), len(t.attached))
	}
	if selected != t.sel.remaining {
		return fmt.Errorf("%d items flagged selected, live selection expects %d", selected, t.sel.remaining)
	}

	placed := 0
	var err error
	t.root.walk(func(n *node) {
		if err != nil {
			return
		}
		if n.isLeaf() && n.depth < t.maxDepth && len(n.items) > t.capacity {
			err = fmt.Errorf("leaf at depth %d holds %d items, capacity %d", n.depth, len(n.items), t.capacity)
			return
		}
		for i, it := range n.items {
			placed++
			switch {
			case it.node != n || it.nodeIndex != i:
				err = fmt.Errorf("item %q has a stale node reference", it.Name)
			case !seen[it]:
				err = fmt.Errorf("item %q is on a node but not attached", it.Name)
			case !n.bounds.ContainsRect(it.Bounds):
				err = fmt.Errorf("item %q lies outside its node", it.Name)
			case !n.isLeaf() && n.childFor(it.Bounds) != nil:
				err = fmt.Errorf("item %q is held by an internal node but fits a child", it.Name)
			}
			if err != nil {
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if placed != len(t.attached) {
		return fmt.Errorf("%d items placed on nodes, %d attached", placed, len(t.attached))
	}
	return nil
}
