package hierarchy

import (
	"errors"
	"testing"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// chain builds root -> c1 -> c2 -> ... -> cN of containers under a page.
func chain(depth int) component.Map {
	m := component.Map{
		"root": {ID: "root", Type: component.TypePage},
	}
	parent := "root"
	for i := 1; i <= depth; i++ {
		id := "c" + string(rune('0'+i))
		m[id] = component.Record{ID: id, Type: component.TypeContainer, ParentID: parent}
		parent = id
	}
	return m
}

func TestBuild(t *testing.T) {
	mgr := NewManager(nil)
	m := component.Map{
		"root": {ID: "root", Type: component.TypePage},
		"a":    {ID: "a", Type: component.TypeContainer, ParentID: "root", Order: 0},
		"b":    {ID: "b", Type: component.TypeContainer, ParentID: "root", Order: 1},
		"a1":   {ID: "a1", Type: component.TypeText, ParentID: "a", Order: 0},
	}

	tree, err := mgr.Build(m, "root")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tree.Size() != 4 {
		t.Errorf("Size = %d, want 4", tree.Size())
	}
	if tree.MaxDepth() != 2 {
		t.Errorf("MaxDepth = %d, want 2", tree.MaxDepth())
	}

	root, _ := tree.Node("root")
	if got := root.Children; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("root children = %v, want [a b]", got)
	}

	// Every node's depth must be exactly one more than its parent's.
	tree.Walk(func(n *Node) {
		if n.ComponentID == tree.RootID {
			if n.Depth != 0 {
				t.Errorf("root depth = %d, want 0", n.Depth)
			}
			return
		}
		parent, ok := tree.Node(n.ParentID)
		if !ok {
			t.Fatalf("node %s has no parent entry", n.ComponentID)
		}
		if n.Depth != parent.Depth+1 {
			t.Errorf("node %s depth = %d, parent depth = %d", n.ComponentID, n.Depth, parent.Depth)
		}
	})

	a1, _ := tree.Node("a1")
	if a1.Path != "/root/a/a1" {
		t.Errorf("a1 path = %q, want /root/a/a1", a1.Path)
	}
}

func TestBuildUnknownRoot(t *testing.T) {
	mgr := NewManager(nil)
	_, err := mgr.Build(component.Map{}, "ghost")
	if !errors.Is(err, ErrUnknownComponent) {
		t.Fatalf("err = %v, want ErrUnknownComponent", err)
	}
}

func TestBuildCycle(t *testing.T) {
	mgr := NewManager(nil)
	// The root's parent link closes a loop through its own child.
	m := component.Map{
		"root": {ID: "root", Type: component.TypePage, ParentID: "a"},
		"a":    {ID: "a", Type: component.TypeContainer, ParentID: "root"},
	}

	_, err := mgr.Build(m, "root")
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("err = %v, want ErrCycleDetected", err)
	}
}

func TestWalkOrder(t *testing.T) {
	mgr := NewManager(nil)
	m := component.Map{
		"root": {ID: "root", Type: component.TypePage},
		"b":    {ID: "b", Type: component.TypeText, ParentID: "root", Order: 1},
		"a":    {ID: "a", Type: component.TypeContainer, ParentID: "root", Order: 0},
		"a1":   {ID: "a1", Type: component.TypeText, ParentID: "a", Order: 0},
	}

	tree, err := mgr.Build(m, "root")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var visited []string
	tree.Walk(func(n *Node) { visited = append(visited, n.ComponentID) })

	want := []string{"root", "a", "a1", "b"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestDepthOf(t *testing.T) {
	m := chain(3)

	tests := []struct {
		id     string
		depth  int
		intact bool
	}{
		{"root", 0, true},
		{"c1", 1, true},
		{"c3", 3, true},
		{"ghost", 0, false},
	}
	for _, tt := range tests {
		depth, ok := depthOf(m, tt.id)
		if depth != tt.depth || ok != tt.intact {
			t.Errorf("depthOf(%s) = (%d, %t), want (%d, %t)", tt.id, depth, ok, tt.depth, tt.intact)
		}
	}

	loop := component.Map{
		"x": {ID: "x", ParentID: "y"},
		"y": {ID: "y", ParentID: "x"},
	}
	if _, ok := depthOf(loop, "x"); ok {
		t.Error("expected broken chain on a parent-link loop")
	}
}
