package hierarchy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/rules"
)

var (
	// ErrUnknownComponent is returned by [Manager.Build] when the requested
	// root ID has no record in the component map.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrCycleDetected is returned by [Manager.Build] when a component is
	// revisited while still on the active walk path. The tree cannot be
	// walked and the caller must not proceed with partial data.
	ErrCycleDetected = errors.New("component tree contains a cycle")
)

// DefaultMaxDepth is the hard nesting ceiling enforced by ValidateNesting.
const DefaultMaxDepth = 8

// DefaultRootTypes lists the component types allowed to live at the tree
// root when no target parent is given.
func DefaultRootTypes() []component.Type {
	return []component.Type{component.TypePage, component.TypeContainer}
}

// Node is the derived index entry for one component: parent link, ordered
// children, depth (root = 0) and the slash-joined root-to-node ID path.
// Nodes are rebuilt from the flat map on every Build call and never stored.
type Node struct {
	ComponentID string
	ParentID    string
	Children    []string
	Depth       int
	Path        string
}

// Tree is the derived hierarchy index produced by [Manager.Build].
type Tree struct {
	RootID string
	Nodes  map[string]*Node
}

// Node returns the index entry for id and whether it exists in the tree.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// Size returns the number of components reachable from the root.
func (t *Tree) Size() int { return len(t.Nodes) }

// MaxDepth returns the deepest node's depth, or 0 for a bare root.
func (t *Tree) MaxDepth() int {
	deepest := 0
	for _, n := range t.Nodes {
		if n.Depth > deepest {
			deepest = n.Depth
		}
	}
	return deepest
}

// Walk visits every node depth-first in sibling order, parents before
// children, starting at the root.
func (t *Tree) Walk(visit func(*Node)) {
	var walk func(id string)
	walk = func(id string) {
		n := t.Nodes[id]
		visit(n)
		for _, child := range n.Children {
			walk(child)
		}
	}
	if _, ok := t.Nodes[t.RootID]; ok {
		walk(t.RootID)
	}
}

// Manager validates and mutates component trees. It delegates type-level
// containment to a rule engine and owns the structural checks. Construct one
// per caller with NewManager; managers hold no mutable state.
type Manager struct {
	engine    *rules.Engine
	maxDepth  int
	rootTypes []component.Type
	newID     func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxDepth overrides the nesting ceiling.
func WithMaxDepth(depth int) Option {
	return func(m *Manager) { m.maxDepth = depth }
}

// WithRootTypes overrides the set of types allowed at the tree root.
func WithRootTypes(types ...component.Type) Option {
	return func(m *Manager) { m.rootTypes = types }
}

// WithIDGenerator overrides the ID source used by Duplicate. The default
// generates UUID v4 strings.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// NewManager creates a hierarchy manager backed by the given rule engine.
// A nil engine selects the default rule table.
func NewManager(engine *rules.Engine, opts ...Option) *Manager {
	if engine == nil {
		engine = rules.NewEngine(nil)
	}
	m := &Manager{
		engine:    engine,
		maxDepth:  DefaultMaxDepth,
		rootTypes: DefaultRootTypes(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Engine returns the rule engine the manager delegates to.
func (m *Manager) Engine() *rules.Engine { return m.engine }

// Build walks the component map depth-first from rootID and returns the
// derived hierarchy index. Children are visited in Order. Returns
// ErrUnknownComponent if the root is missing, or ErrCycleDetected if any
// component is revisited while still on the active walk path; no partial
// tree is returned on failure.
func (m *Manager) Build(components component.Map, rootID string) (*Tree, error) {
	root, ok := components[rootID]
	if !ok {
		return nil, fmt.Errorf("build hierarchy: root %s: %w", rootID, ErrUnknownComponent)
	}

	tree := &Tree{RootID: rootID, Nodes: make(map[string]*Node, len(components))}
	onPath := make(map[string]bool, len(components))

	var walk func(rec component.Record, depth int, path []string) error
	walk = func(rec component.Record, depth int, path []string) error {
		if onPath[rec.ID] {
			return fmt.Errorf("build hierarchy: at %s: %w", rec.ID, ErrCycleDetected)
		}
		onPath[rec.ID] = true
		defer delete(onPath, rec.ID)

		path = append(path, rec.ID)
		node := &Node{
			ComponentID: rec.ID,
			ParentID:    rec.ParentID,
			Depth:       depth,
			Path:        "/" + strings.Join(path, "/"),
		}
		tree.Nodes[rec.ID] = node

		for _, child := range component.ChildrenOf(components, rec.ID) {
			node.Children = append(node.Children, child.ID)
			if err := walk(child, depth+1, path); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, 0, nil); err != nil {
		return nil, err
	}
	return tree, nil
}

// depthOf walks parent links upward and returns the component's depth.
// The walk is bounded by the map size so corrupt parent chains terminate;
// the second result is false when a cycle or missing parent cuts the chain.
func depthOf(components component.Map, id string) (int, bool) {
	depth := 0
	cur, ok := components[id]
	if !ok {
		return 0, false
	}
	for cur.ParentID != "" {
		parent, exists := components[cur.ParentID]
		if !exists {
			return depth, false
		}
		depth++
		if depth > len(components) {
			return depth, false
		}
		cur = parent
	}
	return depth, true
}
