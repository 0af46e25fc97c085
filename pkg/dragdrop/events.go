package dragdrop

import (
	"github.com/charmbracelet/log"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// EventType identifies a drag lifecycle event.
type EventType string

// Drag lifecycle events published on the Bus.
const (
	EventDragStart EventType = "drag_start"
	EventDragMove  EventType = "drag_move"
	EventDragEnd   EventType = "drag_end"
	EventDrop      EventType = "drop"
)

// Event is the payload delivered to subscribers. Zone is set on drag_move
// (the current candidate) and on drop (the committed zone); Success and
// Reason are meaningful on drag_end and drop.
type Event struct {
	Type     EventType
	Item     DragItem
	Position Point
	Zone     *DropZone
	Success  bool
	Reason   string
}

// Listener receives events synchronously. A listener that panics is
// recovered and logged; it never blocks other listeners or the drag session.
type Listener func(Event)

type subscriber struct {
	id int
	fn Listener
}

// Bus is a typed publish/subscribe channel for drag events. Dispatch is
// synchronous and single-threaded, matching the pointer-event loop that
// drives the coordinator; the Bus itself takes no locks.
type Bus struct {
	logger      *log.Logger
	subscribers map[EventType][]subscriber
	nextID      int
}

// NewBus creates an event bus. A nil logger falls back to the package
// default logger.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{
		logger:      logger,
		subscribers: make(map[EventType][]subscriber),
	}
}

// Subscribe registers a listener for one event type and returns a token for
// Unsubscribe. Nil listeners are ignored and return 0.
func (b *Bus) Subscribe(t EventType, fn Listener) int {
	if fn == nil {
		return 0
	}
	b.nextID++
	b.subscribers[t] = append(b.subscribers[t], subscriber{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes the listener registered under the token. Unknown
// tokens are a no-op.
func (b *Bus) Unsubscribe(t EventType, token int) {
	subs := b.subscribers[t]
	for i, s := range subs {
		if s.id == token {
			b.subscribers[t] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every subscriber of its type, in
// subscription order. Panicking subscribers are isolated: the panic is
// recovered, logged, and dispatch continues with the next subscriber.
func (b *Bus) Publish(ev Event) {
	for _, s := range b.subscribers[ev.Type] {
		b.dispatch(s, ev)
	}
}

func (b *Bus) dispatch(s subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("drag event listener panicked",
				"event", ev.Type, "listener", s.id, "panic", r)
		}
	}()
	s.fn(ev)
}

// historyRing is a fixed-capacity ring of recent events. Old entries are
// overwritten once the ring is full, so memory use is bounded regardless of
// session length.
type historyRing struct {
	buf   []Event
	next  int
	count int
}

func newHistoryRing(capacity int) *historyRing {
	if capacity < 1 {
		capacity = 1
	}
	return &historyRing{buf: make([]Event, capacity)}
}

func (h *historyRing) add(ev Event) {
	h.buf[h.next] = ev
	h.next = (h.next + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// events returns the retained events oldest-first.
func (h *historyRing) events() []Event {
	out := make([]Event, 0, h.count)
	start := h.next - h.count
	if start < 0 {
		start += len(h.buf)
	}
	for i := 0; i < h.count; i++ {
		out = append(out, h.buf[(start+i)%len(h.buf)])
	}
	return out
}

// DefaultProps returns the initial props for a palette drop of the given
// type. The payloads stay opaque to the core; these are just sensible seeds
// for the property editor.
func DefaultProps(t component.Type) component.Props {
	switch t {
	case component.TypeText:
		return component.Props{"content": "Text"}
	case component.TypeButton:
		return component.Props{"label": "Button"}
	case component.TypeImage:
		return component.Props{"src": "", "alt": ""}
	case component.TypeInput:
		return component.Props{"placeholder": ""}
	case component.TypeCol:
		return component.Props{"span": component.GridUnits, "offset": 0}
	default:
		return component.Props{}
	}
}

// DefaultStyle returns the initial style payload for a palette drop.
func DefaultStyle(t component.Type) component.Style {
	switch t {
	case component.TypeRow, component.TypeContainer, component.TypeForm:
		return component.Style{"padding": "8px"}
	default:
		return component.Style{}
	}
}
