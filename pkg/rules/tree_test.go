package rules

import (
	"testing"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

func page(children ...component.Record) component.Map {
	m := component.Map{
		"root": {ID: "root", Type: component.TypePage},
	}
	for i, c := range children {
		c.ParentID = "root"
		c.Order = i
		m[c.ID] = c
	}
	return m
}

func TestEvaluateTreeValid(t *testing.T) {
	engine := NewEngine(nil)
	m := page(
		component.Record{ID: "row1", Type: component.TypeRow},
		component.Record{ID: "txt1", Type: component.TypeText},
	)
	m["col1"] = component.Record{
		ID: "col1", Type: component.TypeCol, ParentID: "row1",
		Props: component.Props{"span": 12},
	}

	out := engine.EvaluateTree(m, "root")
	if !out.IsValid {
		t.Fatalf("expected valid tree, got %+v", out.Errors)
	}
}

func TestEvaluateTreeComponentCeiling(t *testing.T) {
	engine := NewEngine(nil, WithMaxComponents(3))
	m := page(
		component.Record{ID: "a", Type: component.TypeText},
		component.Record{ID: "b", Type: component.TypeText},
		component.Record{ID: "c", Type: component.TypeText},
	)

	out := engine.EvaluateTree(m, "root")
	if out.IsValid {
		t.Fatal("expected invalid")
	}
	if !out.HasCode(CodeTooManyComponents) {
		t.Errorf("missing TOO_MANY_COMPONENTS in %+v", out.Errors)
	}
}

func TestEvaluateTreeMissingParent(t *testing.T) {
	engine := NewEngine(nil)
	m := page()
	m["orphan"] = component.Record{ID: "orphan", Type: component.TypeText, ParentID: "ghost"}

	out := engine.EvaluateTree(m, "root")
	if out.IsValid {
		t.Fatal("expected invalid")
	}
	if !out.HasCode(CodeMissingParent) {
		t.Errorf("missing MISSING_PARENT in %+v", out.Errors)
	}
}

func TestEvaluateTreeCycle(t *testing.T) {
	engine := NewEngine(nil)
	// Two detached containers pointing at each other.
	m := page()
	m["x"] = component.Record{ID: "x", Type: component.TypeContainer, ParentID: "y"}
	m["y"] = component.Record{ID: "y", Type: component.TypeContainer, ParentID: "x"}

	out := engine.EvaluateTree(m, "root")
	if out.IsValid {
		t.Fatal("expected invalid")
	}
	if !out.HasCode(CodeCircularReference) {
		t.Errorf("missing CIRCULAR_REFERENCE in %+v", out.Errors)
	}

	critical := false
	for _, w := range out.Warnings {
		if w.Code == CodeCircularReference && w.Impact == ImpactCritical {
			critical = true
		}
	}
	if !critical {
		t.Errorf("expected a critical warning, got %+v", out.Warnings)
	}
}

func TestEvaluateTreeInPlaceSiblings(t *testing.T) {
	engine := NewEngine(nil)

	// A row already holding 12 columns is exactly full and must validate.
	m := component.Map{
		"root": {ID: "root", Type: component.TypePage},
		"row":  {ID: "row", Type: component.TypeRow, ParentID: "root"},
	}
	for i := 0; i < 12; i++ {
		id := "c" + string(rune('a'+i))
		m[id] = component.Record{
			ID: id, Type: component.TypeCol, ParentID: "row", Order: i,
			Props: component.Props{"span": 1},
		}
	}

	out := engine.EvaluateTree(m, "root")
	if !out.IsValid {
		t.Fatalf("expected full row to validate, got %+v", out.Errors)
	}
}

func TestFindCycle(t *testing.T) {
	tests := []struct {
		name string
		m    component.Map
		want bool
	}{
		{
			name: "Acyclic",
			m: component.Map{
				"a": {ID: "a"},
				"b": {ID: "b", ParentID: "a"},
				"c": {ID: "c", ParentID: "b"},
			},
			want: false,
		},
		{
			name: "SelfLoop",
			m: component.Map{
				"a": {ID: "a", ParentID: "a"},
			},
			want: true,
		},
		{
			name: "ThreeCycle",
			m: component.Map{
				"a": {ID: "a", ParentID: "c"},
				"b": {ID: "b", ParentID: "a"},
				"c": {ID: "c", ParentID: "b"},
			},
			want: true,
		},
		{
			name: "DanglingParent",
			m: component.Map{
				"a": {ID: "a", ParentID: "gone"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findCycle(tt.m) != ""
			if got != tt.want {
				t.Errorf("findCycle = %t, want %t", got, tt.want)
			}
		})
	}
}
