package dragdrop

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
	"github.com/xxld0125/low-code-ai-sub004/pkg/rules"
)

var (
	// ErrDragActive is returned by StartDrag while a session is already
	// running. Re-entrant drags are not supported; cancel first.
	ErrDragActive = errors.New("a drag session is already active")

	// ErrNoDrag is returned by MoveDrag and EndDrag outside a session.
	ErrNoDrag = errors.New("no drag session is active")
)

// State is the coordinator's lifecycle state.
type State int

// Coordinator states. Committing and cancelling are transient within
// EndDrag/CancelDrag; between calls the coordinator is either idle or
// dragging.
const (
	StateIdle State = iota
	StateDragging
)

// String returns the state name for logs.
func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// DragItem identifies what is being dragged: an existing tree component
// (ID set, FromPalette false) or a new item from the component palette
// (FromPalette true, ID empty until the drop synthesizes a record).
type DragItem struct {
	ID          string         `json:"id,omitempty"`
	Type        component.Type `json:"type"`
	FromPalette bool           `json:"fromPalette"`
}

// DropResult is the structured outcome of EndDrag. On success Updated is the
// new snapshot; NewComponentID is set for palette drops.
type DropResult struct {
	Success        bool          `json:"success"`
	Reason         string        `json:"reason,omitempty"`
	Zone           *DropZone     `json:"zone,omitempty"`
	NewComponentID string        `json:"newComponentId,omitempty"`
	Updated        component.Map `json:"-"`
}

// Config tunes zone geometry and session bookkeeping.
type Config struct {
	// SnapGrid snaps pointer positions to a grid pitch; zero disables.
	SnapGrid float64
	// InsetMargin shrinks interior drop zones on every side.
	InsetMargin float64
	// GapSize is the thickness of between-sibling zones.
	GapSize float64
	// HistorySize caps the event history ring.
	HistorySize int
}

// DefaultConfig returns the geometry defaults used by NewCoordinator.
func DefaultConfig() Config {
	return Config{
		InsetMargin: 8,
		GapSize:     8,
		HistorySize: 64,
	}
}

// Coordinator mediates one drag session at a time. It owns no component
// data: every call receives the current snapshot and geometry from the host,
// and mutations come back as fresh snapshots produced by the hierarchy
// manager. Not safe for concurrent use; it is driven by a single UI loop.
type Coordinator struct {
	mgr    *hierarchy.Manager
	bus    *Bus
	logger *log.Logger
	cfg    Config
	newID  func() string

	state   State
	item    DragItem
	pos     Point
	canvas  component.Rect
	zones   []DropZone
	active  *DropZone
	history *historyRing
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithConfig replaces the geometry and history configuration.
func WithConfig(cfg Config) Option {
	return func(c *Coordinator) { c.cfg = cfg }
}

// WithIDGenerator overrides the ID source for palette drops. The default
// generates UUID v4 strings.
func WithIDGenerator(gen func() string) Option {
	return func(c *Coordinator) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// NewCoordinator creates an idle coordinator. A nil manager gets the default
// rule table; a nil logger falls back to the package default.
func NewCoordinator(mgr *hierarchy.Manager, logger *log.Logger, opts ...Option) *Coordinator {
	if mgr == nil {
		mgr = hierarchy.NewManager(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	c := &Coordinator{
		mgr:    mgr,
		logger: logger,
		cfg:    DefaultConfig(),
		newID:  uuid.NewString,
		bus:    NewBus(logger),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.history = newHistoryRing(c.cfg.HistorySize)
	return c
}

// Bus returns the coordinator's event bus for subscriptions.
func (c *Coordinator) Bus() *Bus { return c.bus }

// State returns the current lifecycle state.
func (c *Coordinator) State() State { return c.state }

// IsDragging reports whether a session is active.
func (c *Coordinator) IsDragging() bool { return c.state == StateDragging }

// History returns the retained drag events, oldest first.
func (c *Coordinator) History() []Event { return c.history.events() }

// SetCanvas updates the canvas rectangle used for root drop zones. The host
// calls this when the viewport changes.
func (c *Coordinator) SetCanvas(rect component.Rect) { c.canvas = rect }

// StartDrag opens a session for the item at the given pointer position.
// Returns ErrDragActive if a session is already running; the prior session
// is left untouched.
func (c *Coordinator) StartDrag(item DragItem, pos Point) error {
	if c.state == StateDragging {
		return ErrDragActive
	}
	c.state = StateDragging
	c.item = item
	c.pos = pos.Snap(c.cfg.SnapGrid)
	c.zones = nil
	c.active = nil
	c.logger.Debug("drag started", "type", item.Type, "palette", item.FromPalette)
	c.emit(Event{Type: EventDragStart, Item: item, Position: c.pos})
	return nil
}

// MoveDrag recomputes the candidate zone list for the new pointer position
// and returns the currently selected zone, or nil when no zone is legal.
// The snapshot and geometry are read only.
func (c *Coordinator) MoveDrag(pos Point, components component.Map, geo component.Geometry) (*DropZone, error) {
	if c.state != StateDragging {
		return nil, ErrNoDrag
	}
	c.pos = pos.Snap(c.cfg.SnapGrid)
	c.zones = computeZones(c.zoneParams(components, geo))
	c.active = nearestLegal(c.zones, c.pos)
	c.emit(Event{Type: EventDragMove, Item: c.item, Position: c.pos, Zone: c.active})
	return c.active, nil
}

// Zones returns the zone list computed by the last MoveDrag call.
func (c *Coordinator) Zones() []DropZone { return c.zones }

// EndDrag commits the session. The best zone is re-resolved against the
// given snapshot; with no legal zone the session cancels and reports
// failure. Palette items are synthesized and inserted, existing components
// are moved. The coordinator returns to idle regardless of outcome and
// emits drop on success or drag_end on failure.
func (c *Coordinator) EndDrag(components component.Map) (DropResult, error) {
	if c.state != StateDragging {
		return DropResult{}, ErrNoDrag
	}

	item := c.item
	zone := nearestLegal(c.zones, c.pos)
	c.reset()

	if zone == nil {
		res := DropResult{Reason: "no legal drop zone"}
		c.emit(Event{Type: EventDragEnd, Item: item, Position: c.pos, Reason: res.Reason})
		return res, nil
	}

	var res DropResult
	if item.FromPalette {
		res = c.insertNew(item, *zone, components)
	} else {
		res = c.moveExisting(item, *zone, components)
	}
	res.Zone = zone

	if res.Success {
		c.logger.Debug("drop committed", "zone", zone.ID, "type", item.Type)
		c.emit(Event{Type: EventDrop, Item: item, Position: c.pos, Zone: zone, Success: true})
	} else {
		c.logger.Debug("drop rejected", "zone", zone.ID, "reason", res.Reason)
		c.emit(Event{Type: EventDragEnd, Item: item, Position: c.pos, Zone: zone, Reason: res.Reason})
	}
	return res, nil
}

// CancelDrag discards the session without touching the component map.
// Outside a session it is a no-op.
func (c *Coordinator) CancelDrag() {
	if c.state != StateDragging {
		return
	}
	item := c.item
	c.reset()
	c.logger.Debug("drag cancelled", "type", item.Type)
	c.emit(Event{Type: EventDragEnd, Item: item, Position: c.pos, Reason: "cancelled"})
}

// insertNew synthesizes a record for a palette drop, re-validates it against
// the zone owner, and inserts it through the hierarchy manager so sibling
// orders are renumbered.
func (c *Coordinator) insertNew(item DragItem, zone DropZone, components component.Map) DropResult {
	rec := component.Record{
		ID:    c.newID(),
		Type:  item.Type,
		Props: DefaultProps(item.Type),
		Style: DefaultStyle(item.Type),
	}

	if zone.OwnerID != "" {
		owner, ok := components[zone.OwnerID]
		if !ok {
			return DropResult{Reason: fmt.Sprintf("drop target %s no longer exists", zone.OwnerID)}
		}
		siblings := component.ChildrenOf(components, zone.OwnerID)
		if out := c.mgr.Engine().EvaluatePlacement(rec, &owner, siblings); !out.IsValid {
			return DropResult{Reason: firstError(out.Errors)}
		}
	}

	// Stage the record as a root, then run it through Move so nesting is
	// validated and the receiving sibling set renumbered in one place.
	staged := component.CloneMap(components)
	staged[rec.ID] = rec
	moved := c.mgr.Move(rec.ID, zone.OwnerID, zone.InsertIndex, staged)
	if !moved.Success {
		return DropResult{Reason: moved.Reason}
	}
	return DropResult{Success: true, NewComponentID: rec.ID, Updated: moved.Updated}
}

// moveExisting relocates a tree component into the zone.
func (c *Coordinator) moveExisting(item DragItem, zone DropZone, components component.Map) DropResult {
	moved := c.mgr.Move(item.ID, zone.OwnerID, zone.InsertIndex, components)
	if !moved.Success {
		return DropResult{Reason: moved.Reason}
	}
	return DropResult{Success: true, Updated: moved.Updated}
}

func (c *Coordinator) zoneParams(components component.Map, geo component.Geometry) zoneParams {
	dragged := component.Record{ID: c.item.ID, Type: c.item.Type}
	if !c.item.FromPalette {
		if rec, ok := components[c.item.ID]; ok {
			dragged = rec
		}
	} else {
		dragged.Props = DefaultProps(c.item.Type)
	}
	return zoneParams{
		engine:  c.mgr.Engine(),
		items:   components,
		geo:     geo,
		dragged: dragged,
		moving:  !c.item.FromPalette,
		canvas:  c.canvas,
		margin:  c.cfg.InsetMargin,
		gap:     c.cfg.GapSize,
	}
}

func (c *Coordinator) reset() {
	c.state = StateIdle
	c.zones = nil
	c.active = nil
}

func (c *Coordinator) emit(ev Event) {
	c.history.add(ev)
	c.bus.Publish(ev)
}

// firstError picks the leading validation message for a drop failure reason.
func firstError(issues []rules.Issue) string {
	if len(issues) == 0 {
		return "placement rejected"
	}
	return issues[0].Message
}
