package quadtree

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DebugDrawOptions controls Tree.DebugDraw.
type DebugDrawOptions struct {
	// OffsetX and OffsetY translate world coordinates before drawing.
	OffsetX, OffsetY float64
	// Scale multiplies world coordinates after the offset. Zero means 1.
	Scale float64

	// NodeColor outlines node quadrants. Nil uses a dim gray.
	NodeColor color.Color
	// ItemColor outlines items. Nil uses green.
	ItemColor color.Color
	// OverflowColor outlines items held by internal nodes. Nil uses orange.
	OverflowColor color.Color

	// SkipItems draws only the node quadrants.
	SkipItems bool
}

var (
	debugNodeColor     = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	debugItemColor     = color.RGBA{R: 60, G: 200, B: 90, A: 255}
	debugOverflowColor = color.RGBA{R: 240, G: 150, B: 40, A: 255}
)

// DebugDraw outlines every node quadrant and every attached item on dst.
func (t *Tree) DebugDraw(dst *ebiten.Image, opts DebugDrawOptions) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	nodeClr := colorOr(opts.NodeColor, debugNodeColor)
	itemClr := colorOr(opts.ItemColor, debugItemColor)
	overflowClr := colorOr(opts.OverflowColor, debugOverflowColor)

	t.root.walk(func(n *node) {
		strokeWorldRect(dst, n.bounds, &opts, nodeClr)
		if opts.SkipItems {
			return
		}
		clr := itemClr
		if !n.isLeaf() {
			clr = overflowClr
		}
		for _, it := range n.items {
			strokeWorldRect(dst, it.Bounds, &opts, clr)
		}
	})
}

func strokeWorldRect(dst *ebiten.Image, r Rect, opts *DebugDrawOptions, clr color.Color) {
	x := (r.X1 + opts.OffsetX) * opts.Scale
	y := (r.Y1 + opts.OffsetY) * opts.Scale
	vector.StrokeRect(dst, float32(x), float32(y),
		float32(r.Width()*opts.Scale), float32(r.Height()*opts.Scale), 1, clr, false)
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
