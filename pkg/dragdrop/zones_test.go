package dragdrop

import (
	"testing"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/rules"
)

func TestPointSnap(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		grid float64
		want Point
	}{
		{"RoundsToPitch", Point{X: 13, Y: 27}, 10, Point{X: 10, Y: 30}},
		{"ZeroDisables", Point{X: 13, Y: 27}, 0, Point{X: 13, Y: 27}},
		{"NegativeDisables", Point{X: 13, Y: 27}, -4, Point{X: 13, Y: 27}},
		{"Exact", Point{X: 40, Y: 40}, 8, Point{X: 40, Y: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Snap(tt.grid); got != tt.want {
				t.Errorf("Snap = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNearestLegal(t *testing.T) {
	zones := []DropZone{
		{ID: "near-illegal", Geometry: component.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
		{ID: "far-legal", Geometry: component.Rect{X: 100, Y: 100, Width: 10, Height: 10}, IsLegal: true},
		{ID: "farther-legal", Geometry: component.Rect{X: 300, Y: 300, Width: 10, Height: 10}, IsLegal: true},
	}

	got := nearestLegal(zones, Point{X: 5, Y: 5})
	if got == nil || got.ID != "far-legal" {
		t.Fatalf("selected %v, want far-legal", got)
	}

	// The selection is a copy; mutating it must not touch the zone list.
	got.ID = "mutated"
	if zones[1].ID != "far-legal" {
		t.Error("nearestLegal returned a pointer into the zone slice")
	}
}

func TestNearestLegalNone(t *testing.T) {
	zones := []DropZone{
		{ID: "a"},
		{ID: "b"},
	}
	if got := nearestLegal(zones, Point{}); got != nil {
		t.Errorf("selected %v, want nil", got)
	}
	if got := nearestLegal(nil, Point{}); got != nil {
		t.Errorf("selected %v from empty list, want nil", got)
	}
}

func zoneFixture() (component.Map, component.Geometry) {
	items := component.Map{
		"root": {ID: "root", Type: component.TypePage},
		"row":  {ID: "row", Type: component.TypeRow, ParentID: "root", Order: 0},
		"cont": {ID: "cont", Type: component.TypeContainer, ParentID: "root", Order: 1},
		"txt":  {ID: "txt", Type: component.TypeText, ParentID: "cont", Order: 0},
	}
	geo := component.Geometry{
		"row":  {X: 0, Y: 0, Width: 100, Height: 100},
		"cont": {X: 500, Y: 500, Width: 100, Height: 100},
		"txt":  {X: 510, Y: 510, Width: 80, Height: 20},
	}
	return items, geo
}

func testParams(dragged component.Record, moving bool) zoneParams {
	items, geo := zoneFixture()
	return zoneParams{
		engine:  rules.NewEngine(nil),
		items:   items,
		geo:     geo,
		dragged: dragged,
		moving:  moving,
		canvas:  component.Rect{X: 0, Y: 0, Width: 1000, Height: 1000},
		margin:  8,
		gap:     8,
	}
}

func zoneByID(zones []DropZone, id string) (DropZone, bool) {
	for _, z := range zones {
		if z.ID == id {
			return z, true
		}
	}
	return DropZone{}, false
}

func TestComputeZonesLegality(t *testing.T) {
	// A palette text block: legal inside the container, illegal inside the
	// row and on the canvas.
	zones := computeZones(testParams(component.Record{Type: component.TypeText}, false))

	canvas, ok := zoneByID(zones, "canvas")
	if !ok || canvas.IsLegal {
		t.Errorf("canvas zone = %+v, want present and illegal for a leaf", canvas)
	}
	insideRow, ok := zoneByID(zones, "inside-row")
	if !ok || insideRow.IsLegal {
		t.Errorf("inside-row = %+v, want present and illegal for text", insideRow)
	}
	insideCont, ok := zoneByID(zones, "inside-cont")
	if !ok || !insideCont.IsLegal {
		t.Errorf("inside-cont = %+v, want legal", insideCont)
	}
	if insideCont.InsertIndex != 1 {
		t.Errorf("inside-cont InsertIndex = %d, want 1 (append after txt)", insideCont.InsertIndex)
	}

	// The selected zone must be the legal container even though the row is
	// much closer to the pointer.
	best := nearestLegal(zones, Point{X: 50, Y: 50})
	if best == nil || best.OwnerID != "cont" {
		t.Fatalf("selected %v, want the container zone", best)
	}
}

func TestComputeZonesCanvasForLayout(t *testing.T) {
	zones := computeZones(testParams(component.Record{Type: component.TypeContainer}, false))
	canvas, _ := zoneByID(zones, "canvas")
	if !canvas.IsLegal {
		t.Error("canvas must be legal for layout-capable types")
	}
	if canvas.InsertIndex != 1 {
		t.Errorf("canvas InsertIndex = %d, want 1 (one existing root)", canvas.InsertIndex)
	}
}

func TestComputeZonesSkipsDraggedSubtree(t *testing.T) {
	items, _ := zoneFixture()
	p := testParams(items["cont"], true)

	zones := computeZones(p)
	if _, ok := zoneByID(zones, "inside-cont"); ok {
		t.Error("dragged component's own interior must not be a target")
	}
	// The row outside the dragged subtree still produces a zone.
	if _, ok := zoneByID(zones, "inside-row"); !ok {
		t.Error("inside-row zone missing")
	}
}

func TestComputeZonesBetweenSiblings(t *testing.T) {
	zones := computeZones(testParams(component.Record{Type: component.TypeButton}, false))

	// cont has one child with geometry: a leading and a trailing gap.
	lead, ok := zoneByID(zones, "between-cont-0")
	if !ok {
		t.Fatal("leading gap zone missing")
	}
	if lead.InsertIndex != 0 || !lead.IsLegal {
		t.Errorf("leading gap = %+v, want legal with index 0", lead)
	}
	trail, ok := zoneByID(zones, "between-cont-1")
	if !ok {
		t.Fatal("trailing gap zone missing")
	}
	if trail.InsertIndex != 1 {
		t.Errorf("trailing gap index = %d, want 1", trail.InsertIndex)
	}
	if trail.Geometry.Y != 530 {
		t.Errorf("trailing gap Y = %v, want 530 (below the child)", trail.Geometry.Y)
	}
}

func TestWithinSubtree(t *testing.T) {
	items, _ := zoneFixture()

	tests := []struct {
		id, root string
		want     bool
	}{
		{"txt", "cont", true},
		{"cont", "cont", true},
		{"row", "cont", false},
		{"txt", "root", true},
		{"ghost", "cont", false},
	}
	for _, tt := range tests {
		if got := withinSubtree(items, tt.id, tt.root); got != tt.want {
			t.Errorf("withinSubtree(%s, %s) = %t, want %t", tt.id, tt.root, got, tt.want)
		}
	}

	loop := component.Map{
		"x": {ID: "x", ParentID: "y"},
		"y": {ID: "y", ParentID: "x"},
	}
	if withinSubtree(loop, "x", "unreachable") {
		t.Error("corrupt chain must terminate false")
	}
}
