// Package dragdrop turns pointer input into validated tree mutations.
//
// A [Coordinator] is a small state machine (idle → dragging → idle) driven by
// the host UI's pointer-event loop. On every pointer move it rebuilds the
// full candidate [DropZone] list from the component snapshot and the screen
// geometry supplied by the rendering collaborator, computes each zone's
// legality through the rule engine, and selects the legal zone nearest the
// pointer. Committing a drag delegates the actual mutation to the hierarchy
// manager: existing components are moved, palette items are synthesized with
// fresh UUIDs and type defaults, then inserted.
//
// Zone computation is pure - each call returns a fresh slice with legality
// already decided, so there is no shared zone state to invalidate. Only one
// drag session may be active at a time; StartDrag rejects re-entrant drags.
//
// Events (drag_start, drag_move, drag_end, drop) are published synchronously
// on a typed [Bus]. A panicking subscriber is recovered and logged without
// stopping the remaining subscribers or corrupting the drag session. The
// coordinator also keeps a fixed-capacity ring of recent events for
// debugging; the ring never grows.
//
// The package assumes the bounded page sizes the rule engine enforces:
// zone computation is O(components × children) per pointer move, which is
// a documented scaling limit of the interaction model, not a defect.
package dragdrop
