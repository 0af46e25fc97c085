// Package rules implements the declarative constraint engine for component
// placement.
//
// A [Table] maps component types to static containment rules: which child
// types a component accepts, how deep it may nest, and how many direct
// children it may hold. An [Engine] evaluates candidate placements and whole
// trees against a table and returns structured [Outcome] values with stable
// string codes, split into errors (block placement), warnings (surfaced but
// non-blocking), and suggestions (advisory fixes).
//
// Engines are plain values constructed by the caller; there is no shared
// global instance. All evaluation is pure: the engine never mutates the
// component map it is handed.
//
// # Grid semantics
//
// Rows use a 12-unit grid. Two checks are special-cased independently of the
// rule table: a row accepts only column children, and a row holds at most 12
// columns. A column whose span+offset exceeds 12 produces a GRID_OVERFLOW
// warning but still validates; the host product treats overflow as a
// recoverable authoring state rather than an illegal one.
package rules
