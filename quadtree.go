package quadtree

import "math"

// Rect is an axis-aligned rectangle stored by its corners and center. The
// coordinate system has its origin at the top-left, with Y increasing downward.
// Build one with NewRect or RectXYWH so the center stays consistent with the
// corners.
type Rect struct {
	X1, Y1 float64 // top-left corner
	X2, Y2 float64 // bottom-right corner
	CX, CY float64 // center
}

// NewRect returns the rectangle spanning the two corners. Corner order does not
// matter; the result is normalized so X1 <= X2 and Y1 <= Y2.
func NewRect(x1, y1, x2, y2 float64) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{
		X1: x1, Y1: y1,
		X2: x2, Y2: y2,
		CX: (x1 + x2) / 2,
		CY: (y1 + y2) / 2,
	}
}

// RectXYWH returns the rectangle with top-left corner (x, y) and size (w, h).
func RectXYWH(x, y, w, h float64) Rect {
	return NewRect(x, y, x+w, y+h)
}

// Width returns X2 - X1.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// ContainsRect reports whether other lies entirely inside r. Shared edges
// count as inside.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X1 >= r.X1 && other.X2 <= r.X2 &&
		other.Y1 >= r.Y1 && other.Y2 <= r.Y2
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Overlaps reports whether r and other share a region of positive area.
// Unlike Intersects, rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X1 < other.X2 && r.X2 > other.X1 &&
		r.Y1 < other.Y2 && r.Y2 > other.Y1
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		X1: r.X1 + dx, Y1: r.Y1 + dy,
		X2: r.X2 + dx, Y2: r.Y2 + dy,
		CX: r.CX + dx, CY: r.CY + dy,
	}
}

// IsValid reports whether r has no NaN coordinates and its corners are
// ordered.
func (r Rect) IsValid() bool {
	for _, v := range [...]float64{r.X1, r.Y1, r.X2, r.Y2, r.CX, r.CY} {
		if math.IsNaN(v) {
			return false
		}
	}
	return r.X1 <= r.X2 && r.Y1 <= r.Y2
}

// quadrants splits r at its center into NW, NE, SW, SE.
func (r Rect) quadrants() [4]Rect {
	return [4]Rect{
		NewRect(r.X1, r.Y1, r.CX, r.CY),
		NewRect(r.CX, r.Y1, r.X2, r.CY),
		NewRect(r.X1, r.CY, r.CX, r.Y2),
		NewRect(r.CX, r.CY, r.X2, r.Y2),
	}
}

// ItemFilter decides whether an item takes part in a selection. A nil
// ItemFilter accepts every item.
type ItemFilter func(item *Item) bool

// Config holds the construction parameters for a Tree. Zero values select the
// defaults.
type Config struct {
	// Bounds is the world extent. Items outside it cannot be added.
	Bounds Rect
	// Capacity is the number of items a leaf holds before it subdivides.
	// Defaults to 8.
	Capacity int
	// MaxDepth limits subdivision. Nodes at this depth hold any number of
	// items. Defaults to 16.
	MaxDepth int

	// Comparator selects the initial draw order. Defaults to CompareYX.
	Comparator Comparator
	// InvertX, InvertY and InvertZ flip the corresponding axis of the order.
	InvertX, InvertY, InvertZ bool
}

const (
	defaultCapacity = 8
	defaultMaxDepth = 16
)

func (c Config) withDefaults() Config {
	if c.Capacity <= 0 {
		c.Capacity = defaultCapacity
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	return c
}
