package quadtree

import (
	"encoding/json"
	"fmt"
)

// fixtureItem is a single item in a fixture file.
type fixtureItem struct {
	Name string  `json:"name"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	Z    int     `json:"z,omitempty"`
}

// fixture is the top-level JSON structure for a fixture file.
type fixture struct {
	Bounds     [4]float64    `json:"bounds"`
	Capacity   int           `json:"capacity,omitempty"`
	MaxDepth   int           `json:"maxDepth,omitempty"`
	Comparator string        `json:"comparator,omitempty"`
	InvertX    bool          `json:"invertX,omitempty"`
	InvertY    bool          `json:"invertY,omitempty"`
	InvertZ    bool          `json:"invertZ,omitempty"`
	Items      []fixtureItem `json:"items"`
}

// LoadFixture parses a JSON scene description, builds the tree it describes
// and adds its items in file order. Items are returned in the same order.
//
//	{
//	  "bounds": [-100, -100, 100, 100],
//	  "capacity": 4,
//	  "comparator": "yx",
//	  "items": [{"name": "a", "x1": 0, "y1": 0, "x2": 10, "y2": 10, "z": 1}]
//	}
func LoadFixture(jsonData []byte) (*Tree, []*Item, error) {
	var fx fixture
	if err := json.Unmarshal(jsonData, &fx); err != nil {
		return nil, nil, fmt.Errorf("parse fixture: %w", err)
	}
	bounds := NewRect(fx.Bounds[0], fx.Bounds[1], fx.Bounds[2], fx.Bounds[3])
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return nil, nil, fmt.Errorf("parse fixture: empty bounds %v", fx.Bounds)
	}
	cfg := Config{
		Bounds:   bounds,
		Capacity: fx.Capacity,
		MaxDepth: fx.MaxDepth,
		InvertX:  fx.InvertX,
		InvertY:  fx.InvertY,
		InvertZ:  fx.InvertZ,
	}
	if fx.Comparator != "" {
		c, ok := ParseComparator(fx.Comparator)
		if !ok {
			return nil, nil, fmt.Errorf("parse fixture: unknown comparator %q", fx.Comparator)
		}
		cfg.Comparator = c
	}

	tree := NewTree(cfg)
	items := make([]*Item, 0, len(fx.Items))
	for _, fi := range fx.Items {
		it := NewItem(fi.Name, NewRect(fi.X1, fi.Y1, fi.X2, fi.Y2), fi.Z)
		if !tree.AddItem(it) {
			return nil, nil, fmt.Errorf("load fixture: item %q lies outside the tree bounds", fi.Name)
		}
		items = append(items, it)
	}
	return tree, items, nil
}
