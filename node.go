package quadtree

// node is a quadrant of world space. A leaf owns up to capacity items. Once a
// leaf overflows it splits into four equal children and hands each item to the
// child that fully contains it; items that straddle a split line stay on the
// internal node.
//
// Nodes are never merged back on removal. Tree.Compact collapses empty
// subtrees on request.
type node struct {
	bounds   Rect
	depth    int
	items    []*Item
	children []node // nil for leaves, otherwise NW, NE, SW, SE
}

func newNode(bounds Rect, depth int) node {
	return node{bounds: bounds, depth: depth}
}

// isLeaf reports whether n has not been subdivided.
func (n *node) isLeaf() bool {
	return n.children == nil
}

// insert places it in the subtree rooted at n. It fails when the item's bounds
// are not fully contained in n.
func (n *node) insert(it *Item, capacity, maxDepth int) bool {
	if !n.bounds.ContainsRect(it.Bounds) {
		return false
	}
	n.place(it, capacity, maxDepth)
	return true
}

// place assumes n contains it.
func (n *node) place(it *Item, capacity, maxDepth int) {
	if !n.isLeaf() {
		if c := n.childFor(it.Bounds); c != nil {
			c.place(it, capacity, maxDepth)
			return
		}
		// Straddles a split line: keep it here.
		n.attach(it)
		return
	}
	if len(n.items) < capacity || n.depth >= maxDepth {
		n.attach(it)
		return
	}

	n.split()
	old := n.items
	n.items = nil
	for _, moved := range old {
		moved.node = nil
		n.place(moved, capacity, maxDepth)
	}
	n.place(it, capacity, maxDepth)
}

// childFor returns the first child that fully contains r, or nil.
func (n *node) childFor(r Rect) *node {
	for i := range n.children {
		if n.children[i].bounds.ContainsRect(r) {
			return &n.children[i]
		}
	}
	return nil
}

func (n *node) split() {
	q := n.bounds.quadrants()
	n.children = make([]node, 4)
	for i := range q {
		n.children[i] = newNode(q[i], n.depth+1)
	}
}

func (n *node) attach(it *Item) {
	it.node = n
	it.nodeIndex = len(n.items)
	n.items = append(n.items, it)
}

// detachFromNode unlinks it from whichever node holds it in O(1). The node's
// item order is not preserved.
func detachFromNode(it *Item) bool {
	n := it.node
	if n == nil {
		return false
	}
	i := it.nodeIndex
	last := len(n.items) - 1
	if i < 0 || i > last || n.items[i] != it {
		return false
	}
	if i != last {
		n.items[i] = n.items[last]
		n.items[i].nodeIndex = i
	}
	n.items[last] = nil
	n.items = n.items[:last]
	it.node = nil
	it.nodeIndex = 0
	return true
}

// selectInRegion marks every unselected item in the subtree whose bounds
// intersect region and that passes filter. A nil region matches everything.
// Children that do not intersect region are skipped. Returns the number of
// items marked.
func (n *node) selectInRegion(region *Rect, filter ItemFilter, visited *int) int {
	*visited++
	count := 0
	for _, it := range n.items {
		if it.flags&flagSelected != 0 {
			continue
		}
		if region != nil && !it.Bounds.Intersects(*region) {
			continue
		}
		if filter != nil && !filter(it) {
			continue
		}
		it.flags |= flagSelected
		count++
	}
	for i := range n.children {
		c := &n.children[i]
		if region == nil || c.bounds.Intersects(*region) {
			count += c.selectInRegion(region, filter, visited)
		}
	}
	return count
}

// detectCollisions tests every pair of items held by n, then every item of n
// against the items of descendants whose quadrant touches it. Items held by
// sibling subtrees lie in disjoint quadrants and cannot overlap, so each
// overlapping pair is found exactly once.
func (n *node) detectCollisions(p *collisionPass) {
	for i, a := range n.items {
		for _, b := range n.items[i+1:] {
			p.test(a, b)
		}
		for j := range n.children {
			n.children[j].collideDescendants(a, p)
		}
	}
	for j := range n.children {
		n.children[j].detectCollisions(p)
	}
}

func (n *node) collideDescendants(a *Item, p *collisionPass) {
	if !n.bounds.Intersects(a.Bounds) {
		return
	}
	for _, b := range n.items {
		p.test(a, b)
	}
	for j := range n.children {
		n.children[j].collideDescendants(a, p)
	}
}

// compact collapses internal nodes whose children are all empty leaves, as
// long as the overflow items left on the node fit within capacity. Returns
// true if n ends up as an empty leaf.
func (n *node) compact(capacity int) bool {
	if n.isLeaf() {
		return len(n.items) == 0
	}
	empty := true
	for i := range n.children {
		if !n.children[i].compact(capacity) {
			empty = false
		}
	}
	if empty && len(n.items) <= capacity {
		n.children = nil
		return len(n.items) == 0
	}
	return false
}

// walk calls fn for n and every descendant, parents first.
func (n *node) walk(fn func(*node)) {
	fn(n)
	for i := range n.children {
		n.children[i].walk(fn)
	}
}
