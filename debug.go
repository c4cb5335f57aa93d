package quadtree

import (
	"fmt"
	"os"
	"time"
)

// SetDebugMode enables or disables debug mode. When enabled, every structural
// change is followed by a full Validate (panicking on violation), starting a
// selection while another is live panics, items placed at the depth limit are
// reported, and per-pass selection and collision stats are logged to stderr.
func (t *Tree) SetDebugMode(enabled bool) {
	t.debug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (t *Tree) DebugMode() bool {
	return t.debug
}

// selectStats holds the metrics of one SelectItems call.
type selectStats struct {
	elapsed  time.Duration
	visited  int
	selected int
	total    int
}

// collideStats holds the metrics of one DetectCollisions call.
type collideStats struct {
	elapsed  time.Duration
	tests    int
	reported int
	cached   bool
}

func (t *Tree) debugLogSelect(stats selectStats) {
	if !t.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[quadtree] select: %v | nodes visited: %d | selected: %d/%d\n",
		stats.elapsed, stats.visited, stats.selected, stats.total)
}

func (t *Tree) debugLogCollide(stats collideStats) {
	if !t.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[quadtree] collide: %v | pair tests: %d | collisions: %d | cached: %t\n",
		stats.elapsed, stats.tests, stats.reported, stats.cached)
}

// debugValidate panics with the operation name when the tree is inconsistent.
func (t *Tree) debugValidate(op string) {
	if err := t.Validate(); err != nil {
		panic(fmt.Sprintf("quadtree debug: %s left the tree inconsistent: %v", op, err))
	}
}

// debugCheckDepth warns on stderr when an item lands on a node at the depth
// limit. Such nodes never subdivide, so many items there degrade queries to a
// linear scan.
func debugCheckDepth(it *Item, maxDepth int) {
	if it.node != nil && it.node.depth >= maxDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[quadtree] warning: item %q placed at depth limit %d (%d items on node)\n",
			it.Name, maxDepth, len(it.node.items))
	}
}
