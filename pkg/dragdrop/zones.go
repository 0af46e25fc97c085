package dragdrop

import (
	"fmt"
	"math"
	"slices"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/rules"
)

// Point is a pointer position in screen coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snap rounds the point to the given grid pitch. A pitch of zero or less
// disables snapping.
func (p Point) Snap(grid float64) Point {
	if grid <= 0 {
		return p
	}
	return Point{
		X: math.Round(p.X/grid) * grid,
		Y: math.Round(p.Y/grid) * grid,
	}
}

// ZoneKind classifies a drop zone.
type ZoneKind string

// Drop zone kinds.
const (
	ZoneCanvas  ZoneKind = "canvas"           // page background, roots only
	ZoneInside  ZoneKind = "inside-component" // interior of a layout component
	ZoneBetween ZoneKind = "between-siblings" // gap between two children
)

// DropZone is a candidate rectangular region a drag may resolve into.
// Zones are computed fresh on every pointer move and never persisted;
// IsLegal is decided at construction time.
type DropZone struct {
	ID          string         `json:"id"`
	Kind        ZoneKind       `json:"kind"`
	OwnerID     string         `json:"ownerComponentId,omitempty"`
	Geometry    component.Rect `json:"geometry"`
	InsertIndex int            `json:"insertIndex"`
	IsLegal     bool           `json:"isLegal"`
}

// zoneParams bundles the inputs of a zone computation pass.
type zoneParams struct {
	engine  *rules.Engine
	items   component.Map
	geo     component.Geometry
	dragged component.Record // candidate shape of the dragged item
	moving  bool             // true when dragging an existing component
	canvas  component.Rect
	margin  float64
	gap     float64
}

// computeZones builds the full candidate zone list for one pointer move:
// one canvas zone, one inside zone per layout-capable component with known
// geometry, and one between zone per child gap. The function is pure - it
// returns a fresh slice and mutates nothing it was handed.
func computeZones(p zoneParams) []DropZone {
	zones := []DropZone{canvasZone(p)}

	for _, id := range sortedKeys(p.items) {
		rec := p.items[id]
		if !p.engine.Table().IsLayout(rec.Type) {
			continue
		}
		rect, ok := p.geo[id]
		if !ok {
			continue
		}
		// Dropping into the dragged subtree would orphan it.
		if p.moving && withinSubtree(p.items, id, p.dragged.ID) {
			continue
		}

		children := component.ChildrenOf(p.items, id)
		zones = append(zones, insideZone(p, rec, rect, children))
		zones = append(zones, betweenZones(p, rec, children)...)
	}

	return zones
}

// canvasZone is the root drop target. Only layout types may become roots, so
// legality requires the dragged type to be layout-capable.
func canvasZone(p zoneParams) DropZone {
	rootCount := len(component.Roots(p.items))
	return DropZone{
		ID:          "canvas",
		Kind:        ZoneCanvas,
		Geometry:    p.canvas,
		InsertIndex: rootCount,
		IsLegal:     p.engine.Table().IsLayout(p.dragged.Type),
	}
}

// insideZone targets the interior of a layout component, shrunk by the
// configured margin, appending at the end of its children.
func insideZone(p zoneParams, owner component.Record, rect component.Rect, children []component.Record) DropZone {
	return DropZone{
		ID:          fmt.Sprintf("inside-%s", owner.ID),
		Kind:        ZoneInside,
		OwnerID:     owner.ID,
		Geometry:    rect.Inset(p.margin),
		InsertIndex: len(children),
		IsLegal:     placementLegal(p, owner, children),
	}
}

// betweenZones builds one thin zone per gap between consecutive children,
// including the leading and trailing edges. Children without geometry
// produce no gap zone.
func betweenZones(p zoneParams, owner component.Record, children []component.Record) []DropZone {
	var zones []DropZone
	for i := 0; i <= len(children); i++ {
		rect, ok := gapRect(p, children, i)
		if !ok {
			continue
		}
		zones = append(zones, DropZone{
			ID:          fmt.Sprintf("between-%s-%d", owner.ID, i),
			Kind:        ZoneBetween,
			OwnerID:     owner.ID,
			Geometry:    rect,
			InsertIndex: i,
			IsLegal:     placementLegal(p, owner, children),
		})
	}
	return zones
}

// gapRect returns the strip before child i (or after the last child for
// i == len(children)), derived from the neighboring child rectangles.
func gapRect(p zoneParams, children []component.Record, i int) (component.Rect, bool) {
	half := p.gap / 2
	switch {
	case len(children) == 0:
		return component.Rect{}, false
	case i == 0:
		r, ok := p.geo[children[0].ID]
		if !ok {
			return component.Rect{}, false
		}
		return component.Rect{X: r.X, Y: r.Y - p.gap, Width: r.Width, Height: p.gap}, true
	case i == len(children):
		r, ok := p.geo[children[i-1].ID]
		if !ok {
			return component.Rect{}, false
		}
		return component.Rect{X: r.X, Y: r.Y + r.Height, Width: r.Width, Height: p.gap}, true
	default:
		above, okA := p.geo[children[i-1].ID]
		below, okB := p.geo[children[i].ID]
		if !okA || !okB {
			return component.Rect{}, false
		}
		top := above.Y + above.Height
		return component.Rect{
			X:      math.Min(above.X, below.X),
			Y:      top - half,
			Width:  math.Max(above.Width, below.Width),
			Height: math.Max(below.Y-top, 0) + p.gap,
		}, true
	}
}

// placementLegal asks the rule engine whether the dragged item may join the
// owner's children. When moving an existing component within the same
// parent, the item itself is excluded from the sibling count.
func placementLegal(p zoneParams, owner component.Record, children []component.Record) bool {
	siblings := make([]component.Record, 0, len(children))
	for _, c := range children {
		if !p.moving || c.ID != p.dragged.ID {
			siblings = append(siblings, c)
		}
	}
	return p.engine.EvaluatePlacement(p.dragged, &owner, siblings).IsValid
}

// withinSubtree reports whether id is rootID or one of its descendants,
// walking parent links with a bound so corrupt chains terminate.
func withinSubtree(items component.Map, id, rootID string) bool {
	steps := 0
	for id != "" {
		if id == rootID {
			return true
		}
		rec, ok := items[id]
		if !ok {
			return false
		}
		id = rec.ParentID
		if steps++; steps > len(items) {
			return false
		}
	}
	return false
}

// nearestLegal returns the legal zone whose center is nearest the pointer by
// Euclidean distance, or nil if no zone is legal. Illegal zones never win,
// no matter how close.
func nearestLegal(zones []DropZone, pos Point) *DropZone {
	var best *DropZone
	bestDist := math.Inf(1)
	for i := range zones {
		z := &zones[i]
		if !z.IsLegal {
			continue
		}
		cx, cy := z.Geometry.Center()
		d := math.Hypot(cx-pos.X, cy-pos.Y)
		if d < bestDist {
			best = z
			bestDist = d
		}
	}
	if best == nil {
		return nil
	}
	clone := *best
	return &clone
}

func sortedKeys(m component.Map) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
