package rules

import (
	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// Default limits applied by NewEngine unless overridden.
const (
	// DefaultMaxComponents is the global component-count ceiling checked by
	// EvaluateTree. Pages beyond this size degrade the editor's pointer-move
	// budget, so the ceiling is deliberately small.
	DefaultMaxComponents = 50

	// DefaultComplexityThreshold is the synthetic complexity score above
	// which a performance warning is emitted. It never blocks placement.
	DefaultComplexityThreshold = 100

	// RowMaxColumns is the maximum number of column children a row accepts,
	// independent of the generic MaxDirectChildren cap.
	RowMaxColumns = component.GridUnits
)

// SizeBounds is an optional min/max size constraint for a component type,
// in layout units. Zero values mean unconstrained.
type SizeBounds struct {
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

// Rule is the static containment rule for one component type.
type Rule struct {
	// AllowedChildren lists the child types this component accepts.
	// Empty means the component is a leaf.
	AllowedChildren []component.Type `toml:"allowed_children"`

	// CanContainLayout marks types whose interior accepts layout containers
	// and therefore produces an "inside" drop zone.
	CanContainLayout bool `toml:"can_contain_layout"`

	// CanContainLeaf marks types whose interior accepts leaf components.
	CanContainLeaf bool `toml:"can_contain_leaf"`

	// MaxNestingLevel caps how deep this type may sit in the tree.
	// Zero means the engine-wide depth ceiling applies alone.
	MaxNestingLevel int `toml:"max_nesting_level"`

	// MaxDirectChildren caps the number of direct children.
	// Zero means unlimited.
	MaxDirectChildren int `toml:"max_direct_children"`

	// Size holds optional size bounds for the type.
	Size SizeBounds `toml:"size"`

	// BaseComplexity seeds the complexity score for instances of this type.
	BaseComplexity int `toml:"base_complexity"`
}

// Allows reports whether the rule admits the given child type.
func (r Rule) Allows(child component.Type) bool {
	for _, t := range r.AllowedChildren {
		if t == child {
			return true
		}
	}
	return false
}

// IsLayout reports whether the type is layout-capable, i.e. accepts any
// children at all. Layout-capable components get interior drop zones.
func (r Rule) IsLayout() bool {
	return len(r.AllowedChildren) > 0
}

// Table maps component types to their containment rules.
type Table map[component.Type]Rule

// Rule returns the rule for a type and whether one is registered.
func (t Table) Rule(typ component.Type) (Rule, bool) {
	r, ok := t[typ]
	return r, ok
}

// IsLayout reports whether the type is layout-capable per the table.
// Unknown types are treated as leaves.
func (t Table) IsLayout(typ component.Type) bool {
	r, ok := t[typ]
	return ok && r.IsLayout()
}

// RowColumnViolation reports whether linking child under parent breaks the
// hard-coded grid rule: a row accepts only columns, regardless of what the
// table says. This is the single source of truth for the row/column check;
// the hierarchy manager delegates here.
func RowColumnViolation(parent, child component.Type) bool {
	return parent == component.TypeRow && child != component.TypeCol
}

// DefaultTable returns the containment rules for the builtin component set.
// The returned table is a fresh copy the caller may modify.
func DefaultTable() Table {
	leaves := []component.Type{
		component.TypeText, component.TypeButton, component.TypeImage, component.TypeInput,
	}
	blocks := append([]component.Type{
		component.TypeContainer, component.TypeRow, component.TypeForm,
	}, leaves...)

	return Table{
		component.TypePage: {
			AllowedChildren:   blocks,
			CanContainLayout:  true,
			CanContainLeaf:    true,
			MaxNestingLevel:   1,
			MaxDirectChildren: 20,
			BaseComplexity:    10,
		},
		component.TypeContainer: {
			AllowedChildren:   blocks,
			CanContainLayout:  true,
			CanContainLeaf:    true,
			MaxNestingLevel:   6,
			MaxDirectChildren: 15,
			BaseComplexity:    5,
		},
		component.TypeRow: {
			AllowedChildren:   []component.Type{component.TypeCol},
			CanContainLayout:  true,
			MaxNestingLevel:   6,
			MaxDirectChildren: RowMaxColumns,
			BaseComplexity:    5,
		},
		component.TypeCol: {
			AllowedChildren:   blocks,
			CanContainLayout:  true,
			CanContainLeaf:    true,
			MaxNestingLevel:   7,
			MaxDirectChildren: 10,
			BaseComplexity:    3,
		},
		component.TypeForm: {
			AllowedChildren: []component.Type{
				component.TypeInput, component.TypeButton, component.TypeText,
			},
			CanContainLeaf:    true,
			MaxNestingLevel:   6,
			MaxDirectChildren: 12,
			BaseComplexity:    8,
		},
		component.TypeText:   {BaseComplexity: 1, Size: SizeBounds{MinWidth: 1}},
		component.TypeButton: {BaseComplexity: 2, Size: SizeBounds{MinWidth: 1, MinHeight: 1}},
		component.TypeImage:  {BaseComplexity: 2, Size: SizeBounds{MinWidth: 1, MinHeight: 1}},
		component.TypeInput:  {BaseComplexity: 2, Size: SizeBounds{MinWidth: 1, MinHeight: 1}},
	}
}

// Engine evaluates placements and trees against a rule table. Construct one
// per caller with NewEngine; engines hold no mutable state and are safe to
// share between sequential operations.
type Engine struct {
	table               Table
	maxComponents       int
	complexityThreshold int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxComponents overrides the global component ceiling used by
// EvaluateTree.
func WithMaxComponents(n int) Option {
	return func(e *Engine) { e.maxComponents = n }
}

// WithComplexityThreshold overrides the complexity warning threshold.
func WithComplexityThreshold(n int) Option {
	return func(e *Engine) { e.complexityThreshold = n }
}

// NewEngine creates an engine over the given table. A nil table selects
// DefaultTable.
func NewEngine(table Table, opts ...Option) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	e := &Engine{
		table:               table,
		maxComponents:       DefaultMaxComponents,
		complexityThreshold: DefaultComplexityThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the engine's rule table.
func (e *Engine) Table() Table { return e.table }

// MaxComponents returns the global component ceiling.
func (e *Engine) MaxComponents() int { return e.maxComponents }
