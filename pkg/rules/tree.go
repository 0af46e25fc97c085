package rules

import (
	"fmt"
	"maps"
	"slices"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// EvaluateTree checks every component in the snapshot against its actual
// parent and siblings, enforces the global component ceiling, and scans the
// parent links for cycles. rootID is reported on global findings but the
// scan covers every component, including ones detached from the root.
func (e *Engine) EvaluateTree(components component.Map, rootID string) Outcome {
	out := Valid()

	if len(components) > e.maxComponents {
		out.AddError(Issue{
			Code:        CodeTooManyComponents,
			Message:     fmt.Sprintf("page holds %d components, ceiling is %d", len(components), e.maxComponents),
			ComponentID: rootID,
		})
		out.AddSuggestion(Suggestion{
			Type:        "split-page",
			Target:      rootID,
			Description: "split the page or extract sections into separate documents",
			Priority:    2,
		})
	}

	for _, id := range sortedIDs(components) {
		rec := components[id]
		placement := e.evaluateInPlace(rec, components)
		out.Merge(placement)
	}

	if cycleID := findCycle(components); cycleID != "" {
		out.AddError(Issue{
			Code:        CodeCircularReference,
			Message:     fmt.Sprintf("component %s reaches itself via parent links", cycleID),
			ComponentID: cycleID,
		})
		out.AddWarning(Warning{
			Code:        CodeCircularReference,
			Message:     "the component tree is corrupted and cannot be walked",
			ComponentID: cycleID,
			Impact:      ImpactCritical,
		})
	}

	return out
}

// evaluateInPlace runs the placement checks for a component already linked
// into the tree, using its actual parent and siblings as context.
func (e *Engine) evaluateInPlace(rec component.Record, components component.Map) Outcome {
	if rec.IsRoot() {
		return e.EvaluatePlacement(rec, nil, nil)
	}

	parent, ok := components[rec.ParentID]
	if !ok {
		out := Valid()
		out.AddError(Issue{
			Code:        CodeMissingParent,
			Message:     fmt.Sprintf("parent %s does not exist", rec.ParentID),
			ComponentID: rec.ID,
			ParentID:    rec.ParentID,
		})
		return out
	}

	// Siblings exclude the component itself; EvaluatePlacement counts the
	// candidate as the +1.
	var siblings []component.Record
	for _, s := range component.ChildrenOf(components, rec.ParentID) {
		if s.ID != rec.ID {
			siblings = append(siblings, s)
		}
	}
	if siblings == nil {
		siblings = []component.Record{}
	}
	return e.EvaluatePlacement(rec, &parent, siblings)
}

// findCycle walks parent links depth-first with recursion-stack tracking and
// returns the ID of a component on a cycle, or "" if the links are acyclic.
func findCycle(components component.Map) string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(components))
	var cycleID string

	var walk func(id string)
	walk = func(id string) {
		color[id] = gray
		rec, ok := components[id]
		if ok && rec.ParentID != "" {
			if _, exists := components[rec.ParentID]; exists {
				switch color[rec.ParentID] {
				case white:
					walk(rec.ParentID)
				case gray:
					cycleID = id
					return
				}
			}
		}
		color[id] = black
	}

	for _, id := range sortedIDs(components) {
		if color[id] == white {
			walk(id)
			if cycleID != "" {
				return cycleID
			}
		}
	}
	return ""
}

// sortedIDs returns the snapshot's IDs in ascending order so outcomes are
// stable across runs.
func sortedIDs(components component.Map) []string {
	return slices.Sorted(maps.Keys(components))
}
