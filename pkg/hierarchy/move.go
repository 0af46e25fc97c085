package hierarchy

import (
	"fmt"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// MoveResult is the structured outcome of a Move call. On failure Updated is
// nil and the input snapshot is untouched.
type MoveResult struct {
	Success bool          `json:"success"`
	Reason  string        `json:"reason,omitempty"`
	Updated component.Map `json:"-"`
}

// DuplicateResult is the structured outcome of a Duplicate call.
type DuplicateResult struct {
	Success   bool          `json:"success"`
	Reason    string        `json:"reason,omitempty"`
	NewRootID string        `json:"newRootId,omitempty"`
	Updated   component.Map `json:"-"`
}

// Move reparents the component to newParentID and inserts it at newIndex
// among the new siblings. An empty newParentID moves the component to the
// tree root. The sibling sets of both the old and the new parent are
// renumbered to a contiguous zero-based sequence, and newIndex is clamped
// into range.
//
// Move validates through ValidateNesting first and returns a fresh snapshot;
// it never mutates the input and never panics.
func (m *Manager) Move(id, newParentID string, newIndex int, components component.Map) MoveResult {
	rec, ok := components[id]
	if !ok {
		return MoveResult{Reason: fmt.Sprintf("component %s does not exist", id)}
	}
	if id == newParentID {
		return MoveResult{Reason: "component cannot become its own parent"}
	}

	if res := m.ValidateNesting(rec, newParentID, components); !res.IsValid {
		return MoveResult{Reason: res.Reason}
	}

	out := component.CloneMap(components)
	oldParentID := rec.ParentID
	rec.ParentID = newParentID
	out[id] = rec

	// Renumber the receiving sibling set with the moved component at
	// newIndex, then close the gap left behind at the old parent.
	siblings := idsExcept(component.ChildrenOf(out, newParentID), id)
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(siblings) {
		newIndex = len(siblings)
	}
	ordered := make([]string, 0, len(siblings)+1)
	ordered = append(ordered, siblings[:newIndex]...)
	ordered = append(ordered, id)
	ordered = append(ordered, siblings[newIndex:]...)
	renumber(out, ordered)

	if oldParentID != newParentID {
		renumber(out, idsExcept(component.ChildrenOf(out, oldParentID), id))
	}

	return MoveResult{Success: true, Updated: out}
}

// Duplicate deep-copies the subtree rooted at id. The copied root is placed
// immediately after the original among its siblings with ZIndex+1; every
// descendant receives a fresh generated ID with its parent rewritten to the
// corresponding copied ancestor, preserving relative order. The affected
// sibling set is renumbered so Order values stay contiguous.
//
// Returns a structured failure if id is absent; the input snapshot is never
// mutated.
func (m *Manager) Duplicate(id string, components component.Map) DuplicateResult {
	orig, ok := components[id]
	if !ok {
		return DuplicateResult{Reason: fmt.Sprintf("component %s does not exist", id)}
	}

	out := component.CloneMap(components)

	var copySubtree func(src component.Record, newParentID string) string
	copySubtree = func(src component.Record, newParentID string) string {
		dup := src
		dup.ID = m.newID()
		dup.ParentID = newParentID
		out[dup.ID] = dup
		for _, child := range component.ChildrenOf(components, src.ID) {
			copySubtree(child, dup.ID)
		}
		return dup.ID
	}

	newRootID := copySubtree(orig, orig.ParentID)

	dupRoot := out[newRootID]
	dupRoot.ZIndex = orig.ZIndex + 1
	dupRoot.Order = orig.Order + 1
	out[newRootID] = dupRoot

	// Slot the copy directly after the original and renumber, so sibling
	// orders stay gap-free instead of leaving a duplicate Order value.
	siblings := idsExcept(component.ChildrenOf(out, orig.ParentID), newRootID)
	ordered := make([]string, 0, len(siblings)+1)
	for _, sid := range siblings {
		ordered = append(ordered, sid)
		if sid == id {
			ordered = append(ordered, newRootID)
		}
	}
	renumber(out, ordered)

	return DuplicateResult{Success: true, NewRootID: newRootID, Updated: out}
}

// renumber assigns contiguous zero-based Order values following the given
// sibling sequence.
func renumber(m component.Map, ordered []string) {
	for i, id := range ordered {
		rec := m[id]
		rec.Order = i
		m[id] = rec
	}
}

// idsExcept returns the record IDs in order, skipping the excluded one.
func idsExcept(recs []component.Record, exclude string) []string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		if r.ID != exclude {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
