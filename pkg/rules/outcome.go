package rules

import "fmt"

// Code is a machine-readable validation code. Codes are stable strings shared
// with the host application's toast and property-panel layers.
type Code string

// Validation codes emitted by the engine.
const (
	// Errors - affect Outcome.IsValid.
	CodeInvalidChild      Code = "INVALID_CHILD"
	CodeMaxChildren       Code = "MAX_CHILDREN_EXCEEDED"
	CodeGridOverflow      Code = "GRID_OVERFLOW"
	CodeInvalidGridSpan   Code = "INVALID_GRID_SPAN"
	CodeTooManyComponents Code = "TOO_MANY_COMPONENTS"
	CodeCircularReference Code = "CIRCULAR_REFERENCE"
	CodeMissingParent     Code = "MISSING_PARENT"

	// Warnings - never affect Outcome.IsValid.
	CodeRowWithoutCols Code = "ROW_WITHOUT_COLS"
	CodeUnknownType    Code = "UNKNOWN_TYPE"
	CodeComplexity     Code = "COMPLEXITY"
)

// Impact describes how strongly a warning affects the authoring experience.
type Impact string

// Warning impact levels, from cosmetic to fatal. ImpactCritical is reserved
// for corrupted-state findings such as circular references.
const (
	ImpactLow      Impact = "low"
	ImpactMedium   Impact = "medium"
	ImpactHigh     Impact = "high"
	ImpactCritical Impact = "critical"
)

// Issue is a single validation error.
type Issue struct {
	Code        Code   `json:"code"`
	Message     string `json:"message"`
	ComponentID string `json:"componentId,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
	Field       string `json:"field,omitempty"`
}

// Warning is a non-blocking validation finding.
type Warning struct {
	Code        Code   `json:"code"`
	Message     string `json:"message"`
	ComponentID string `json:"componentId,omitempty"`
	Impact      Impact `json:"impact"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// Suggestion is an advisory fix the host may offer the user.
type Suggestion struct {
	Type        string `json:"type"`
	Target      string `json:"target"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// Outcome is the result of a placement or tree evaluation.
// Only Errors affect IsValid; warnings and suggestions are advisory.
type Outcome struct {
	IsValid     bool         `json:"isValid"`
	Errors      []Issue      `json:"errors,omitempty"`
	Warnings    []Warning    `json:"warnings,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Valid returns an outcome with no findings.
func Valid() Outcome { return Outcome{IsValid: true} }

// AddError appends an error and marks the outcome invalid.
func (o *Outcome) AddError(i Issue) {
	o.Errors = append(o.Errors, i)
	o.IsValid = false
}

// AddWarning appends a warning without affecting validity.
func (o *Outcome) AddWarning(w Warning) {
	o.Warnings = append(o.Warnings, w)
}

// AddSuggestion appends an advisory suggestion.
func (o *Outcome) AddSuggestion(s Suggestion) {
	o.Suggestions = append(o.Suggestions, s)
}

// Merge folds another outcome into this one. The receiver stays valid only
// if both outcomes were valid.
func (o *Outcome) Merge(other Outcome) {
	o.Errors = append(o.Errors, other.Errors...)
	o.Warnings = append(o.Warnings, other.Warnings...)
	o.Suggestions = append(o.Suggestions, other.Suggestions...)
	o.IsValid = o.IsValid && other.IsValid
}

// HasCode reports whether any error or warning carries the given code.
func (o Outcome) HasCode(code Code) bool {
	for _, e := range o.Errors {
		if e.Code == code {
			return true
		}
	}
	for _, w := range o.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Summary returns a one-line human-readable digest of the outcome.
func (o Outcome) Summary() string {
	if o.IsValid && len(o.Warnings) == 0 {
		return "valid"
	}
	return fmt.Sprintf("valid=%t errors=%d warnings=%d suggestions=%d",
		o.IsValid, len(o.Errors), len(o.Warnings), len(o.Suggestions))
}
