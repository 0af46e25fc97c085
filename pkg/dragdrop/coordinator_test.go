package dragdrop

import (
	"errors"
	"fmt"
	"testing"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
)

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newTestCoordinator(opts ...Option) *Coordinator {
	opts = append([]Option{WithIDGenerator(seqIDs("new"))}, opts...)
	c := NewCoordinator(hierarchy.NewManager(nil), quietLogger(), opts...)
	c.SetCanvas(component.Rect{Width: 1000, Height: 1000})
	return c
}

func editorFixture() (component.Map, component.Geometry) {
	items := component.Map{
		"root": {ID: "root", Type: component.TypePage},
		"cont": {ID: "cont", Type: component.TypeContainer, ParentID: "root", Order: 0},
	}
	geo := component.Geometry{
		"cont": {X: 100, Y: 100, Width: 200, Height: 200},
	}
	return items, geo
}

func TestStartDragRejectsReentrant(t *testing.T) {
	c := newTestCoordinator()

	if err := c.StartDrag(DragItem{Type: component.TypeText, FromPalette: true}, Point{}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if !c.IsDragging() {
		t.Fatal("expected dragging state")
	}

	err := c.StartDrag(DragItem{Type: component.TypeButton, FromPalette: true}, Point{})
	if !errors.Is(err, ErrDragActive) {
		t.Fatalf("err = %v, want ErrDragActive", err)
	}
	// The first session is untouched.
	if c.State() != StateDragging {
		t.Errorf("state = %s, want dragging", c.State())
	}
}

func TestMoveDragOutsideSession(t *testing.T) {
	c := newTestCoordinator()
	if _, err := c.MoveDrag(Point{}, nil, nil); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("err = %v, want ErrNoDrag", err)
	}
	if _, err := c.EndDrag(nil); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("EndDrag err = %v, want ErrNoDrag", err)
	}
}

func TestPaletteDrop(t *testing.T) {
	c := newTestCoordinator()
	items, geo := editorFixture()

	if err := c.StartDrag(DragItem{Type: component.TypeButton, FromPalette: true}, Point{X: 10, Y: 10}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}

	zone, err := c.MoveDrag(Point{X: 200, Y: 200}, items, geo)
	if err != nil {
		t.Fatalf("MoveDrag: %v", err)
	}
	if zone == nil || zone.OwnerID != "cont" {
		t.Fatalf("selected zone = %v, want the container interior", zone)
	}

	res, err := c.EndDrag(items)
	if err != nil {
		t.Fatalf("EndDrag: %v", err)
	}
	if !res.Success {
		t.Fatalf("drop failed: %s", res.Reason)
	}
	if res.NewComponentID == "" {
		t.Fatal("palette drop must report the new component ID")
	}

	rec, ok := res.Updated[res.NewComponentID]
	if !ok {
		t.Fatal("new component missing from snapshot")
	}
	if rec.ParentID != "cont" || rec.Order != 0 {
		t.Errorf("new component parent=%s order=%d, want cont/0", rec.ParentID, rec.Order)
	}
	if rec.Props["label"] == nil {
		t.Error("palette drop must seed default props")
	}

	// Input snapshot untouched, coordinator back to idle.
	if _, exists := items[res.NewComponentID]; exists {
		t.Error("input snapshot mutated")
	}
	if c.IsDragging() {
		t.Error("coordinator must return to idle")
	}
}

func TestExistingComponentDrop(t *testing.T) {
	c := newTestCoordinator()
	items, geo := editorFixture()
	items["other"] = component.Record{ID: "other", Type: component.TypeContainer, ParentID: "root", Order: 1}
	items["txt"] = component.Record{ID: "txt", Type: component.TypeText, ParentID: "other", Order: 0}

	if err := c.StartDrag(DragItem{ID: "txt", Type: component.TypeText}, Point{}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if _, err := c.MoveDrag(Point{X: 200, Y: 200}, items, geo); err != nil {
		t.Fatalf("MoveDrag: %v", err)
	}

	res, err := c.EndDrag(items)
	if err != nil {
		t.Fatalf("EndDrag: %v", err)
	}
	if !res.Success {
		t.Fatalf("drop failed: %s", res.Reason)
	}
	if got := res.Updated["txt"].ParentID; got != "cont" {
		t.Errorf("txt parent = %s, want cont", got)
	}
	// The vacated sibling set stays contiguous.
	if kids := component.ChildrenOf(res.Updated, "other"); len(kids) != 0 {
		t.Errorf("old parent still has %d children", len(kids))
	}
}

func TestEndDragWithoutLegalZone(t *testing.T) {
	c := newTestCoordinator()

	if err := c.StartDrag(DragItem{Type: component.TypeText, FromPalette: true}, Point{}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}

	// No MoveDrag happened, so no zones exist.
	res, err := c.EndDrag(component.Map{})
	if err != nil {
		t.Fatalf("EndDrag: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure without a legal zone")
	}
	if res.Updated != nil {
		t.Error("failed drop must not return a snapshot")
	}
	if c.IsDragging() {
		t.Error("coordinator must return to idle")
	}
}

func TestCancelDrag(t *testing.T) {
	c := newTestCoordinator()

	c.CancelDrag() // idle no-op

	if err := c.StartDrag(DragItem{Type: component.TypeText, FromPalette: true}, Point{}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	c.CancelDrag()

	if c.IsDragging() {
		t.Error("cancel must return to idle")
	}

	hist := c.History()
	last := hist[len(hist)-1]
	if last.Type != EventDragEnd || last.Reason != "cancelled" {
		t.Errorf("last event = %+v, want a cancelled drag_end", last)
	}
}

func TestEventSequence(t *testing.T) {
	c := newTestCoordinator()
	items, geo := editorFixture()

	var types []EventType
	for _, et := range []EventType{EventDragStart, EventDragMove, EventDrop, EventDragEnd} {
		c.Bus().Subscribe(et, func(ev Event) { types = append(types, ev.Type) })
	}

	_ = c.StartDrag(DragItem{Type: component.TypeButton, FromPalette: true}, Point{})
	_, _ = c.MoveDrag(Point{X: 200, Y: 200}, items, geo)
	if res, _ := c.EndDrag(items); !res.Success {
		t.Fatalf("drop failed: %s", res.Reason)
	}

	want := []EventType{EventDragStart, EventDragMove, EventDrop}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("events = %v, want %v", types, want)
		}
	}
}

func TestHistoryCapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistorySize = 2
	c := newTestCoordinator(WithConfig(cfg))
	items, geo := editorFixture()

	_ = c.StartDrag(DragItem{Type: component.TypeButton, FromPalette: true}, Point{})
	for i := 0; i < 5; i++ {
		_, _ = c.MoveDrag(Point{X: float64(i), Y: 0}, items, geo)
	}

	if got := len(c.History()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
}

func TestSnapGridAppliedToPosition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SnapGrid = 10
	c := newTestCoordinator(WithConfig(cfg))
	items, geo := editorFixture()

	var moved Event
	c.Bus().Subscribe(EventDragMove, func(ev Event) { moved = ev })

	_ = c.StartDrag(DragItem{Type: component.TypeButton, FromPalette: true}, Point{})
	_, _ = c.MoveDrag(Point{X: 13, Y: 27}, items, geo)

	if moved.Position != (Point{X: 10, Y: 30}) {
		t.Errorf("position = %+v, want snapped {10 30}", moved.Position)
	}
}
