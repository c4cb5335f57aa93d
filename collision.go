package quadtree

import (
	"sync/atomic"
	"time"
)

// CollisionHandler receives the results of Tree.DetectCollisions.
type CollisionHandler interface {
	// CollisionFilter reports whether item takes part in the pass. It is
	// called at most once per item per pass, and only for items that overlap
	// another item.
	CollisionFilter(item *Item) bool
	// OnCollision is called once per unordered pair of overlapping items.
	OnCollision(a, b *Item)
}

// CollisionFuncs adapts plain functions to CollisionHandler. A nil Filter
// accepts every item; a nil Collide ignores collisions.
type CollisionFuncs struct {
	Filter  func(item *Item) bool
	Collide func(a, b *Item)
}

// CollisionFilter calls f.Filter.
func (f CollisionFuncs) CollisionFilter(item *Item) bool {
	if f.Filter == nil {
		return true
	}
	return f.Filter(item)
}

// OnCollision calls f.Collide.
func (f CollisionFuncs) OnCollision(a, b *Item) {
	if f.Collide != nil {
		f.Collide(a, b)
	}
}

type itemPair struct {
	a, b *Item
}

// collideStamp numbers collision passes across all trees, so a stamp left on
// an item by one tree never matches a pass of another.
var collideStamp atomic.Uint32

func nextCollideStamp() uint32 {
	s := collideStamp.Add(1)
	for s == 0 {
		s = collideStamp.Add(1)
	}
	return s
}

// collisionPass carries the state of one DetectCollisions call. The node walk
// only collects geometric overlaps; the handler's filter runs at dispatch.
type collisionPass struct {
	handler CollisionHandler
	stamp   uint32
	pairs   []itemPair
	tests   int
}

// accept runs the handler's filter once per item per pass.
func (p *collisionPass) accept(it *Item) bool {
	if it.collidePass != p.stamp {
		it.collidePass = p.stamp
		it.collideOK = p.handler.CollisionFilter(it)
	}
	return it.collideOK
}

func (p *collisionPass) test(a, b *Item) {
	p.tests++
	if a.Bounds.Overlaps(b.Bounds) {
		p.pairs = append(p.pairs, itemPair{a, b})
	}
}

// DetectCollisions reports every pair of attached items whose bounds overlap
// (share positive area) to h, and returns the number of pairs reported.
//
// The overlapping pairs are cached independently of any handler. When nothing
// was added, removed or updated since the previous pass, they are reused and
// only filtered through h. Pass forced to re-test every pair regardless.
//
// Handlers may add, remove or update items; pairs involving an item detached
// during the pass are skipped. DetectCollisions must not be called from
// within a handler.
func (t *Tree) DetectCollisions(h CollisionHandler, forced bool) int {
	if h == nil {
		panic("quadtree: nil collision handler")
	}

	var t0 time.Time
	if t.debug {
		t0 = time.Now()
	}

	p := collisionPass{handler: h, stamp: nextCollideStamp()}

	cached := !forced && t.pairsValid && t.pairsVersion == t.version
	if !cached {
		p.pairs = t.pairs[:0]
		t.root.detectCollisions(&p)
		t.pairs = p.pairs
		t.pairsVersion = t.version
		t.pairsValid = true
	}

	reported := 0
	for _, pr := range t.pairs {
		if pr.a.flags&flagAttached == 0 || pr.b.flags&flagAttached == 0 {
			continue
		}
		if !p.accept(pr.a) || !p.accept(pr.b) {
			continue
		}
		h.OnCollision(pr.a, pr.b)
		reported++
	}

	if t.debug {
		t.debugLogCollide(collideStats{
			elapsed:  time.Since(t0),
			tests:    p.tests,
			reported: reported,
			cached:   cached,
		})
	}
	return reported
}
