// Package hierarchy owns the authoritative tree view of a flat component map
// and performs all structural mutations.
//
// The flat map (see the component package) stores parent links only; this
// package derives ordered children, depth, and root-to-node paths on demand
// with [Manager.Build], and never persists the derived index. Mutations -
// [Manager.Move] and [Manager.Duplicate] - validate first, then return a
// fresh snapshot; the input map is never edited in place, and a failed
// operation is a guaranteed no-op.
//
// Cycle handling is two-tier: Build treats a cycle on the walk path as a
// corrupted-state condition and returns [ErrCycleDetected] rather than a
// partial tree, while Move and Duplicate report structured failures the
// interaction loop can surface without crashing.
//
// Type-level legality is delegated to the rules package; this package adds
// the structural checks the rule engine cannot see: existence of the target
// parent, ancestor cycles, the root-type allowlist, and the depth ceiling.
package hierarchy
