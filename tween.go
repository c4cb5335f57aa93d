package quadtree

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type tweenKind uint8

const (
	tweenPosition tweenKind = iota
	tweenSize
)

// TweenGroup animates an attached item's center or size. Create one with
// TweenPosition or TweenSize and call Update(dt) each frame. Every step
// re-places the item with Tree.UpdateItem, so the item's OnPositionChanged
// fires on the following Tree.Update. If the item is removed from the tree
// the group stops immediately.
//
// There is no global animation manager; callers run Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	kind   tweenKind
	tree   *Tree
	target *Item
	Done   bool
}

// Update advances the tweens by dt seconds and moves the item.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.target.Attached() {
		g.Done = true
		return
	}

	a, doneA := g.tweens[0].Update(dt)
	b, doneB := g.tweens[1].Update(dt)
	switch g.kind {
	case tweenPosition:
		g.target.MoveTo(float64(a), float64(b))
		g.target.Bounds = fitInside(g.tree.Bounds(), g.target.Bounds)
	case tweenSize:
		g.target.Resize(float64(a), float64(b))
	}
	g.Done = doneA && doneB
	g.tree.UpdateItem(g.target)
}

// TweenPosition creates a TweenGroup that moves item's center to (toX, toY)
// over duration seconds using the easing function. The destination is clamped
// so the item stays inside the tree.
func TweenPosition(tree *Tree, item *Item, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	toX, toY = clampCenter(tree.Bounds(), item.Bounds, toX, toY)
	g := &TweenGroup{kind: tweenPosition, tree: tree, target: item}
	g.tweens[0] = gween.New(float32(item.Bounds.CX), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(item.Bounds.CY), float32(toY), duration, fn)
	return g
}

// TweenSize creates a TweenGroup that resizes item around its center to
// (toW, toH) over duration seconds using the easing function. The caller must
// keep the final size inside the tree.
func TweenSize(tree *Tree, item *Item, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{kind: tweenSize, tree: tree, target: item}
	g.tweens[0] = gween.New(float32(item.Bounds.Width()), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(item.Bounds.Height()), float32(toH), duration, fn)
	return g
}

// clampCenter keeps a box shaped like r, centered on (cx, cy), inside world.
func clampCenter(world, r Rect, cx, cy float64) (float64, float64) {
	halfW, halfH := r.Width()/2, r.Height()/2
	cx = math.Max(world.X1+halfW, math.Min(cx, world.X2-halfW))
	cy = math.Max(world.Y1+halfH, math.Min(cy, world.Y2-halfH))
	return cx, cy
}

// fitInside shifts r so it lies inside world, setting clamped corners exactly
// so float rounding cannot leave an edge outside. r keeps its size unless it is
// larger than world.
func fitInside(world, r Rect) Rect {
	x1, x2 := fitSpan(world.X1, world.X2, r.X1, r.X2)
	y1, y2 := fitSpan(world.Y1, world.Y2, r.Y1, r.Y2)
	return NewRect(x1, y1, x2, y2)
}

func fitSpan(lo, hi, a, b float64) (float64, float64) {
	w := b - a
	if b > hi {
		b = hi
		a = math.Max(lo, hi-w)
	}
	if a < lo {
		a = lo
		b = math.Min(hi, lo+w)
	}
	return a, b
}
