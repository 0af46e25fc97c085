package rules

import (
	"testing"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

func col(id string, span, offset int) component.Record {
	return component.Record{
		ID:    id,
		Type:  component.TypeCol,
		Props: component.Props{"span": span, "offset": offset},
	}
}

func cols(n int) []component.Record {
	out := make([]component.Record, n)
	for i := range out {
		out[i] = col(string(rune('a'+i)), 1, 0)
		out[i].Order = i
	}
	return out
}

func TestEvaluatePlacementContainment(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name      string
		candidate component.Record
		parent    component.Record
		wantValid bool
		wantCode  Code
	}{
		{
			name:      "ButtonInContainer",
			candidate: component.Record{ID: "b", Type: component.TypeButton},
			parent:    component.Record{ID: "c", Type: component.TypeContainer},
			wantValid: true,
		},
		{
			name:      "ColInRow",
			candidate: col("c1", 6, 0),
			parent:    component.Record{ID: "r", Type: component.TypeRow},
			wantValid: true,
		},
		{
			name:      "ButtonInRow",
			candidate: component.Record{ID: "b", Type: component.TypeButton},
			parent:    component.Record{ID: "r", Type: component.TypeRow},
			wantValid: false,
			wantCode:  CodeInvalidChild,
		},
		{
			name:      "ContainerInRow",
			candidate: component.Record{ID: "c", Type: component.TypeContainer},
			parent:    component.Record{ID: "r", Type: component.TypeRow},
			wantValid: false,
			wantCode:  CodeInvalidChild,
		},
		{
			name:      "InputOutsideForm",
			candidate: component.Record{ID: "i", Type: component.TypeInput},
			parent:    component.Record{ID: "c", Type: component.TypeContainer},
			wantValid: true,
		},
		{
			name:      "RowInForm",
			candidate: component.Record{ID: "r", Type: component.TypeRow},
			parent:    component.Record{ID: "f", Type: component.TypeForm},
			wantValid: false,
			wantCode:  CodeInvalidChild,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := engine.EvaluatePlacement(tt.candidate, &tt.parent, nil)
			if out.IsValid != tt.wantValid {
				t.Fatalf("IsValid = %t, want %t (outcome: %s)", out.IsValid, tt.wantValid, out.Summary())
			}
			if tt.wantCode != "" && !out.HasCode(tt.wantCode) {
				t.Errorf("missing code %s in %+v", tt.wantCode, out.Errors)
			}
		})
	}
}

func TestEvaluatePlacementRowCaps(t *testing.T) {
	engine := NewEngine(nil)
	row := component.Record{ID: "r", Type: component.TypeRow}

	t.Run("SixthColAccepted", func(t *testing.T) {
		out := engine.EvaluatePlacement(col("new", 2, 0), &row, cols(5))
		if !out.IsValid {
			t.Fatalf("expected valid, got %+v", out.Errors)
		}
	})

	t.Run("ThirteenthColOverflows", func(t *testing.T) {
		out := engine.EvaluatePlacement(col("new", 1, 0), &row, cols(12))
		if out.IsValid {
			t.Fatal("expected invalid")
		}
		if !out.HasCode(CodeGridOverflow) {
			t.Errorf("missing GRID_OVERFLOW in %+v", out.Errors)
		}
		if len(out.Suggestions) == 0 {
			t.Error("expected a split-row suggestion")
		}
	})

	t.Run("NonColIntoEmptyRowWarns", func(t *testing.T) {
		out := engine.EvaluatePlacement(component.Record{ID: "t", Type: component.TypeText}, &row, []component.Record{})
		if out.IsValid {
			t.Fatal("expected INVALID_CHILD error")
		}
		if !out.HasCode(CodeRowWithoutCols) {
			t.Errorf("missing ROW_WITHOUT_COLS warning in %+v", out.Warnings)
		}
	})
}

func TestEvaluatePlacementMaxChildren(t *testing.T) {
	table := DefaultTable()
	rule := table[component.TypeContainer]
	rule.MaxDirectChildren = 2
	table[component.TypeContainer] = rule
	engine := NewEngine(table)

	parent := component.Record{ID: "c", Type: component.TypeContainer}
	siblings := []component.Record{
		{ID: "t1", Type: component.TypeText},
		{ID: "t2", Type: component.TypeText},
	}

	out := engine.EvaluatePlacement(component.Record{ID: "t3", Type: component.TypeText}, &parent, siblings)
	if out.IsValid {
		t.Fatal("expected invalid")
	}
	if !out.HasCode(CodeMaxChildren) {
		t.Errorf("missing MAX_CHILDREN_EXCEEDED in %+v", out.Errors)
	}
}

func TestEvaluatePlacementColumnGrid(t *testing.T) {
	engine := NewEngine(nil)
	row := component.Record{ID: "r", Type: component.TypeRow}

	tests := []struct {
		name      string
		candidate component.Record
		wantValid bool
		wantErr   Code
		wantWarn  Code
	}{
		{name: "FullWidth", candidate: col("c", 12, 0), wantValid: true},
		{name: "SpanZero", candidate: col("c", 0, 0), wantValid: false, wantErr: CodeInvalidGridSpan},
		{name: "SpanThirteen", candidate: col("c", 13, 0), wantValid: false, wantErr: CodeInvalidGridSpan},
		{name: "OffsetNegative", candidate: col("c", 6, -1), wantValid: false, wantErr: CodeInvalidGridSpan},
		{name: "OffsetTwelve", candidate: col("c", 6, 12), wantValid: false, wantErr: CodeInvalidGridSpan},
		// span+offset overflow is a warning, never a blocker.
		{name: "OverflowWarns", candidate: col("c", 12, 1), wantValid: true, wantWarn: CodeGridOverflow},
		{
			name: "NonNumericSpan",
			candidate: component.Record{
				ID: "c", Type: component.TypeCol,
				Props: component.Props{"span": "wide"},
			},
			wantValid: false,
			wantErr:   CodeInvalidGridSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := engine.EvaluatePlacement(tt.candidate, &row, nil)
			if out.IsValid != tt.wantValid {
				t.Fatalf("IsValid = %t, want %t (%+v)", out.IsValid, tt.wantValid, out.Errors)
			}
			if tt.wantErr != "" && !out.HasCode(tt.wantErr) {
				t.Errorf("missing error %s in %+v", tt.wantErr, out.Errors)
			}
			if tt.wantWarn != "" {
				found := false
				for _, w := range out.Warnings {
					if w.Code == tt.wantWarn {
						found = true
					}
				}
				if !found {
					t.Errorf("missing warning %s in %+v", tt.wantWarn, out.Warnings)
				}
			}
		})
	}
}

func TestEvaluatePlacementUnknownType(t *testing.T) {
	engine := NewEngine(nil)

	out := engine.EvaluatePlacement(component.Record{ID: "x", Type: "hero"}, nil, nil)
	if !out.IsValid {
		t.Fatalf("unknown types must fail open, got %+v", out.Errors)
	}
	if !out.HasCode(CodeUnknownType) {
		t.Errorf("missing UNKNOWN_TYPE warning in %+v", out.Warnings)
	}
}

func TestEvaluatePlacementComplexity(t *testing.T) {
	engine := NewEngine(nil, WithComplexityThreshold(10))

	props := make(component.Props)
	for i := 0; i < 10; i++ {
		props[string(rune('a'+i))] = i
	}
	rec := component.Record{ID: "t", Type: component.TypeText, Props: props}

	out := engine.EvaluatePlacement(rec, nil, nil)
	if !out.IsValid {
		t.Fatalf("complexity must never block placement, got %+v", out.Errors)
	}
	if !out.HasCode(CodeComplexity) {
		t.Errorf("missing COMPLEXITY warning in %+v", out.Warnings)
	}
}
