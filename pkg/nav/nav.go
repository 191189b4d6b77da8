// Package nav provides explicit navigation wiring between canvas views.
// The canvas historically reached for an ambient global to register its
// scroll-to-node hook; here navigation is an injected interface plus a
// small typed event bus, so ownership and lifetime are visible at
// construction time.
package nav

// Navigator focuses the canvas viewport on a target. The renderer
// implements it; components that need "jump to node" receive it as a
// dependency.
type Navigator interface {
	// FocusNode centers the viewport on a node id. Unknown ids are
	// ignored.
	FocusNode(id string)
	// FocusGroup centers the viewport on a layout or chain group id.
	FocusGroup(id string)
}

// NopNavigator ignores all focus requests; useful before a renderer is
// attached and in tests.
type NopNavigator struct{}

func (NopNavigator) FocusNode(string)  {}
func (NopNavigator) FocusGroup(string) {}

// Event is a typed navigation event.
type Event struct {
	// Topic discriminates the event; see the Topic* constants.
	Topic string
	// ID is the subject node or group id.
	ID string
}

// Event topics.
const (
	TopicFocusNode   = "focus-node"
	TopicFocusGroup  = "focus-group"
	TopicSelectNode  = "select-node"
	TopicLayoutApply = "layout-apply"
)

// Bus is a synchronous typed-topic event bus. Subscribers run in
// subscription order on the caller's goroutine, matching the canvas's
// single-threaded event model. Bus is not safe for concurrent use; it
// belongs to the UI thread.
type Bus struct {
	subs map[string][]func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]func(Event))}
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function.
func (b *Bus) Subscribe(topic string, fn func(Event)) func() {
	b.subs[topic] = append(b.subs[topic], fn)
	idx := len(b.subs[topic]) - 1
	return func() {
		handlers := b.subs[topic]
		if idx < len(handlers) && handlers[idx] != nil {
			handlers[idx] = nil
		}
	}
}

// Publish delivers an event to the topic's live subscribers.
func (b *Bus) Publish(e Event) {
	for _, fn := range b.subs[e.Topic] {
		if fn != nil {
			fn(e)
		}
	}
}

// BusNavigator adapts a Bus to the Navigator interface, for components
// that prefer events over a direct renderer handle.
type BusNavigator struct {
	Bus *Bus
}

func (n BusNavigator) FocusNode(id string) {
	n.Bus.Publish(Event{Topic: TopicFocusNode, ID: id})
}

func (n BusNavigator) FocusGroup(id string) {
	n.Bus.Publish(Event{Topic: TopicFocusGroup, ID: id})
}
