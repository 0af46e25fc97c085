package component

import (
	"cmp"
	"math"
	"slices"
)

// Type identifies the kind of a component. Types are open-ended strings so
// host applications can register their own, but the core ships rules for the
// builtin set below.
type Type string

// Builtin component types understood by the default rule table.
const (
	TypePage      Type = "page"      // top-level document container
	TypeContainer Type = "container" // generic block container
	TypeRow       Type = "row"       // 12-unit grid row, columns only
	TypeCol       Type = "col"       // grid column inside a row
	TypeText      Type = "text"      // leaf text block
	TypeButton    Type = "button"    // leaf button
	TypeImage     Type = "image"     // leaf image
	TypeInput     Type = "input"     // leaf form input
	TypeForm      Type = "form"      // form container
)

// GridUnits is the number of span units in a row grid. Column spans and
// offsets are expressed in these units.
const GridUnits = 12

// Props is an opaque property payload owned by the property-editor
// collaborator. The core only ever counts entries.
type Props map[string]any

// Style is an opaque style payload owned by the rendering collaborator.
// The core only ever counts entries.
type Style map[string]any

// Record is a single component in the flat page map.
//
// ParentID is empty for root components. Order is the zero-based position
// among the parent's direct children and must stay contiguous and gap-free
// after every committed mutation.
type Record struct {
	ID       string `json:"id"`
	Type     Type   `json:"type"`
	ParentID string `json:"parentId,omitempty"`
	Order    int    `json:"order"`
	ZIndex   int    `json:"zIndex"`
	Props    Props  `json:"props,omitempty"`
	Style    Style  `json:"style,omitempty"`
}

// IsRoot reports whether the record has no parent.
func (r Record) IsRoot() bool { return r.ParentID == "" }

// Span returns the grid span for column components, defaulting to GridUnits
// when the prop is absent. The second result is false if the prop is present
// but not numeric.
func (r Record) Span() (int, bool) { return intProp(r.Props, "span", GridUnits) }

// Offset returns the grid offset for column components, defaulting to 0.
// The second result is false if the prop is present but not numeric.
func (r Record) Offset() (int, bool) { return intProp(r.Props, "offset", 0) }

// intProp reads an integer prop, tolerating the numeric types JSON decoding
// and host applications produce. Non-integral floats are rejected.
func intProp(p Props, key string, def int) (int, bool) {
	v, ok := p[key]
	if !ok {
		return def, true
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Map is a flat page snapshot keyed by component ID.
type Map map[string]Record

// CloneMap returns a shallow copy of the snapshot. Record values are copied;
// Props and Style maps are shared, which is safe under the package's
// read-only convention for opaque payloads.
func CloneMap(m Map) Map {
	out := make(Map, len(m))
	for id, rec := range m {
		out[id] = rec
	}
	return out
}

// ChildrenOf returns the direct children of parentID sorted by Order.
// Ties are broken by ID so the result is deterministic even on corrupt input.
func ChildrenOf(m Map, parentID string) []Record {
	var kids []Record
	for _, rec := range m {
		if rec.ParentID == parentID {
			kids = append(kids, rec)
		}
	}
	sortRecords(kids)
	return kids
}

// Roots returns all parentless records sorted by Order.
func Roots(m Map) []Record {
	var roots []Record
	for _, rec := range m {
		if rec.IsRoot() {
			roots = append(roots, rec)
		}
	}
	sortRecords(roots)
	return roots
}

func sortRecords(recs []Record) {
	slices.SortFunc(recs, func(a, b Record) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Rect is a screen-space rectangle supplied by the layout collaborator.
// The core uses it only to build drop zones; it never computes layout.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the geometric center of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Inset returns the rectangle shrunk by d on every side. Rectangles smaller
// than 2d collapse to a zero-size rect at their center.
func (r Rect) Inset(d float64) Rect {
	if r.Width <= 2*d || r.Height <= 2*d {
		cx, cy := r.Center()
		return Rect{X: cx, Y: cy}
	}
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Geometry maps component IDs to their on-screen rectangles. It is produced
// by the rendering collaborator and consumed by drop-zone computation.
type Geometry map[string]Rect
