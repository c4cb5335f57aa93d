package quadtree

// Comparator selects how attached items are ordered for drawing. Every
// variant reads the tree's axis inversion flags, so the whole order can be
// mirrored (for example when the camera rotates) without touching item data.
type Comparator uint8

const (
	CompareYX        Comparator = iota // Z layer, then center Y, then center X
	CompareXY                          // Z layer, then center X, then center Y
	CompareManhattan                   // Z layer, then center X + center Y
	CompareY                           // center Y offset by Z, as one key
	CompareX                           // center X offset by Z, as one key
)

// String returns the comparator's name.
func (c Comparator) String() string {
	switch c {
	case CompareYX:
		return "yx"
	case CompareXY:
		return "xy"
	case CompareManhattan:
		return "manhattan"
	case CompareY:
		return "y"
	case CompareX:
		return "x"
	default:
		return "unknown"
	}
}

// ParseComparator maps a name returned by String back to its Comparator.
func ParseComparator(name string) (Comparator, bool) {
	for c := CompareYX; c <= CompareX; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return CompareYX, false
}

// axes carries the inversion flags read by the comparators.
type axes struct {
	x, y, z bool
}

// lessKey reports whether a sorts before b on one axis, flipped when inv is
// set. Equal keys never sort before each other.
func lessKey(a, b float64, inv bool) bool {
	if inv {
		return a > b
	}
	return a < b
}

func signed(v float64, inv bool) float64 {
	if inv {
		return -v
	}
	return v
}

// isBefore reports whether p is drawn before q under comparator c.
func isBefore(c Comparator, ax axes, p, q *Item) bool {
	pb, qb := &p.Bounds, &q.Bounds
	switch c {
	case CompareY:
		return signed(pb.CY, ax.y)+signed(float64(p.ZIndex), ax.z) <
			signed(qb.CY, ax.y)+signed(float64(q.ZIndex), ax.z)
	case CompareX:
		return signed(pb.CX, ax.x)+signed(float64(p.ZIndex), ax.z) <
			signed(qb.CX, ax.x)+signed(float64(q.ZIndex), ax.z)
	}

	if p.ZIndex != q.ZIndex {
		return lessKey(float64(p.ZIndex), float64(q.ZIndex), ax.z)
	}
	switch c {
	case CompareXY:
		if pb.CX != qb.CX {
			return lessKey(pb.CX, qb.CX, ax.x)
		}
		return lessKey(pb.CY, qb.CY, ax.y)
	case CompareManhattan:
		return signed(pb.CX, ax.x)+signed(pb.CY, ax.y) <
			signed(qb.CX, ax.x)+signed(qb.CY, ax.y)
	default: // CompareYX
		if pb.CY != qb.CY {
			return lessKey(pb.CY, qb.CY, ax.y)
		}
		return lessKey(pb.CX, qb.CX, ax.x)
	}
}
