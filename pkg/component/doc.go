// Package component defines the flat component model shared by every part of
// the page-builder core.
//
// A page is a flat map of [Record] values keyed by component ID. Parent/child
// structure is expressed only through the ParentID field; ordered views of the
// tree are derived on demand by the hierarchy package and never stored here.
//
// # Records
//
// Each record carries the structural fields the core reasons about (type,
// parent, sibling order, stacking index) plus opaque Props and Style payloads
// that belong to the rendering and property-editor collaborators. The core
// never interprets those payloads beyond counting their entries for
// complexity scoring.
//
// The package also provides JSON serialization for page documents with
// deterministic (ID-sorted) output, and the screen-space [Rect] geometry type
// consumed by drop-zone computation.
//
// # Immutability convention
//
// Component maps are treated as immutable snapshots. Operations that change
// structure (move, duplicate, insert) return a new map built with [CloneMap]
// rather than editing the caller's data. Record values are copied by value;
// only Props and Style maps are shared between snapshots, and the core never
// writes to them.
package component
