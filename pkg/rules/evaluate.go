package rules

import (
	"fmt"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// EvaluatePlacement checks whether candidate may be placed under parent with
// the given existing siblings. parent may be nil for root placements and
// siblings may be nil when the caller has no sibling context; each check only
// runs when its inputs are present.
//
// Checks run in a fixed order: containment, sibling caps, grid geometry,
// complexity. All findings are collected; the evaluator never stops at the
// first error.
func (e *Engine) EvaluatePlacement(candidate component.Record, parent *component.Record, siblings []component.Record) Outcome {
	out := Valid()

	rule, known := e.table.Rule(candidate.Type)
	if !known {
		out.AddWarning(Warning{
			Code:        CodeUnknownType,
			Message:     fmt.Sprintf("no constraint rule registered for type %q", candidate.Type),
			ComponentID: candidate.ID,
			Impact:      ImpactLow,
			Suggestion:  "register a rule for this type to enable containment checks",
		})
	}

	if parent != nil {
		e.checkContainment(&out, candidate, *parent)
		e.checkSiblingCaps(&out, candidate, *parent, siblings)
	}

	if candidate.Type == component.TypeCol {
		e.checkColumnGrid(&out, candidate)
	}

	if known {
		e.checkComplexity(&out, candidate, rule)
	}

	return out
}

// checkContainment enforces the parent's allowed-children set plus the
// hard-coded row/column rule.
func (e *Engine) checkContainment(out *Outcome, candidate, parent component.Record) {
	if RowColumnViolation(parent.Type, candidate.Type) {
		out.AddError(Issue{
			Code:        CodeInvalidChild,
			Message:     fmt.Sprintf("a %s accepts only col children, not %s", parent.Type, candidate.Type),
			ComponentID: candidate.ID,
			ParentID:    parent.ID,
		})
		return
	}

	parentRule, ok := e.table.Rule(parent.Type)
	if !ok {
		// Unknown parent types fail open; the candidate's own unknown-type
		// warning already covers the missing rule entry.
		return
	}
	if !parentRule.Allows(candidate.Type) {
		out.AddError(Issue{
			Code:        CodeInvalidChild,
			Message:     fmt.Sprintf("%s may not contain %s", parent.Type, candidate.Type),
			ComponentID: candidate.ID,
			ParentID:    parent.ID,
		})
	}
}

// checkSiblingCaps enforces MaxDirectChildren and the row-specific grid caps.
// The candidate counts as one additional child on top of the siblings.
func (e *Engine) checkSiblingCaps(out *Outcome, candidate, parent component.Record, siblings []component.Record) {
	if siblings == nil {
		return
	}
	total := len(siblings) + 1

	if parentRule, ok := e.table.Rule(parent.Type); ok {
		if limit := parentRule.MaxDirectChildren; limit > 0 && total > limit {
			out.AddError(Issue{
				Code:        CodeMaxChildren,
				Message:     fmt.Sprintf("%s holds at most %d direct children, got %d", parent.Type, limit, total),
				ComponentID: candidate.ID,
				ParentID:    parent.ID,
			})
		}
	}

	if parent.Type != component.TypeRow {
		return
	}

	cols := 0
	for _, s := range siblings {
		if s.Type == component.TypeCol {
			cols++
		}
	}
	if candidate.Type == component.TypeCol {
		cols++
	}

	if cols > RowMaxColumns {
		out.AddError(Issue{
			Code:        CodeGridOverflow,
			Message:     fmt.Sprintf("row exceeds %d columns (%d)", RowMaxColumns, cols),
			ComponentID: candidate.ID,
			ParentID:    parent.ID,
		})
		out.AddSuggestion(Suggestion{
			Type:        "split-row",
			Target:      parent.ID,
			Description: "split this row into two rows to stay within the 12-column grid",
			Priority:    1,
		})
	}
	if cols == 0 {
		out.AddWarning(Warning{
			Code:        CodeRowWithoutCols,
			Message:     "row has no column children and renders empty",
			ComponentID: parent.ID,
			Impact:      ImpactMedium,
			Suggestion:  "add at least one col child",
		})
	}
}

// checkColumnGrid validates a column's span/offset props against the 12-unit
// grid. span+offset overflow is a warning only; the editor lets users author
// through an overflowing intermediate state.
func (e *Engine) checkColumnGrid(out *Outcome, candidate component.Record) {
	span, ok := candidate.Span()
	if !ok || span < 1 || span > component.GridUnits {
		out.AddError(Issue{
			Code:        CodeInvalidGridSpan,
			Message:     fmt.Sprintf("col span must be an integer in [1,%d]", component.GridUnits),
			ComponentID: candidate.ID,
			Field:       "span",
		})
		return
	}

	offset, ok := candidate.Offset()
	if !ok || offset < 0 || offset > component.GridUnits-1 {
		out.AddError(Issue{
			Code:        CodeInvalidGridSpan,
			Message:     fmt.Sprintf("col offset must be an integer in [0,%d]", component.GridUnits-1),
			ComponentID: candidate.ID,
			Field:       "offset",
		})
		return
	}

	if span+offset > component.GridUnits {
		out.AddWarning(Warning{
			Code:        CodeGridOverflow,
			Message:     fmt.Sprintf("span %d + offset %d exceeds the %d-unit grid", span, offset, component.GridUnits),
			ComponentID: candidate.ID,
			Impact:      ImpactMedium,
			Suggestion:  "reduce the span or offset so the column fits the grid",
		})
	}
}

// checkComplexity scores the candidate and warns above the threshold.
// The score is synthetic: base score per type + 2 per prop + 1 per style.
func (e *Engine) checkComplexity(out *Outcome, candidate component.Record, rule Rule) {
	score := rule.BaseComplexity + 2*len(candidate.Props) + len(candidate.Style)
	if score > e.complexityThreshold {
		out.AddWarning(Warning{
			Code:        CodeComplexity,
			Message:     fmt.Sprintf("complexity score %d exceeds threshold %d", score, e.complexityThreshold),
			ComponentID: candidate.ID,
			Impact:      ImpactHigh,
			Suggestion:  "split the component or move styling into shared tokens",
		})
	}
}
