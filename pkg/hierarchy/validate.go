package hierarchy

import (
	"fmt"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/rules"
)

// NestingResult reports whether a candidate may be linked under a target
// parent. Reason is set only on rejection.
type NestingResult struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason,omitempty"`
}

func reject(format string, args ...any) NestingResult {
	return NestingResult{Reason: fmt.Sprintf(format, args...)}
}

// ValidateNesting checks whether candidate may become a child of
// targetParentID within the given snapshot. An empty targetParentID asks
// whether the candidate may live at the tree root.
//
// The checks are structural: root-type allowlist, target existence, ancestor
// cycles (moving a component under its own descendant), the row/column rule
// delegated to the rule engine, and the nesting-depth ceiling. Type-table
// containment beyond the row/column rule is the rule engine's concern and is
// checked by callers through EvaluatePlacement.
func (m *Manager) ValidateNesting(candidate component.Record, targetParentID string, components component.Map) NestingResult {
	if targetParentID == "" {
		for _, t := range m.rootTypes {
			if candidate.Type == t {
				return NestingResult{IsValid: true}
			}
		}
		return reject("type %s may not be a root component", candidate.Type)
	}

	parent, ok := components[targetParentID]
	if !ok {
		return reject("target parent %s does not exist", targetParentID)
	}

	if m.wouldCreateCycle(candidate.ID, targetParentID, components) {
		return reject("moving %s under %s would create a cycle", candidate.ID, targetParentID)
	}

	if rules.RowColumnViolation(parent.Type, candidate.Type) {
		return reject("a %s accepts only col children", parent.Type)
	}

	parentDepth, intact := depthOf(components, targetParentID)
	if !intact {
		return reject("target parent %s has a broken ancestor chain", targetParentID)
	}
	if parentDepth+1 > m.maxDepth {
		return reject("nesting depth %d exceeds ceiling %d", parentDepth+1, m.maxDepth)
	}

	return NestingResult{IsValid: true}
}

// wouldCreateCycle walks up from targetParentID looking for candidateID.
// Linking a component under its own descendant closes a parent-link loop.
func (m *Manager) wouldCreateCycle(candidateID, targetParentID string, components component.Map) bool {
	seen := make(map[string]bool, len(components))
	cur := targetParentID
	for cur != "" {
		if cur == candidateID {
			return true
		}
		if seen[cur] {
			// Pre-existing loop above the target; treat as a cycle so the
			// move is refused rather than grafted onto corrupt state.
			return true
		}
		seen[cur] = true
		rec, ok := components[cur]
		if !ok {
			return false
		}
		cur = rec.ParentID
	}
	return false
}
