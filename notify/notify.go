// Package notify carries change notifications from undoable containers to
// their observers.
//
// Containers never invoke handlers while holding their lock: each mutating
// operation records a small tagged Event value while locked and publishes it
// after the lock is released. This keeps an observer free to re-enter the
// container synchronously from inside its own handler without deadlocking.
//
// A Dispatcher decides which execution context handlers run on. The default
// Sync dispatcher invokes handlers on the mutating goroutine; Async hands
// them to a bounded worker pool so publishers never block on slow observers.
package notify

import "sync"

// Action classifies a structural change event.
type Action uint8

const (
	// ActionAdd signals items were added at Indexes.
	ActionAdd Action = iota
	// ActionRemove signals items were removed from Indexes.
	ActionRemove
	// ActionReplace signals an in-place replacement at Indexes[0].
	ActionReplace
	// ActionReset signals a structural change with no per-item index
	// information; observers should re-read the container.
	ActionReset
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event describes one structural change. It carries exactly the data the
// notification needs; there is no type-erased payload.
type Event[T any] struct {
	Action  Action
	Items   []T
	Indexes []int
}

// Property describes a named-property change, at minimum "Count".
type Property struct {
	Name string
}

// PropertyCount is the property name published whenever a mutation changes
// the number of contained items.
const PropertyCount = "Count"

// Handler receives structural change events.
type Handler[T any] func(Event[T])

// PropertyHandler receives named-property change events.
type PropertyHandler func(Property)

// Subscription identifies a registered handler and can cancel it.
type Subscription struct {
	cancel func()
}

// Cancel removes the handler. Safe to call multiple times.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type changeSub[T any] struct {
	id uint64
	fn Handler[T]
}

type propertySub struct {
	id uint64
	fn PropertyHandler
}

// Hub is a container's listener registry. Publishing snapshots the handler
// list under the hub's own short lock and then hands invocation to the
// dispatcher, so handler execution never runs under any lock the container
// holds.
type Hub[T any] struct {
	mu         sync.Mutex
	dispatcher Dispatcher
	nextID     uint64
	changes    []changeSub[T]
	properties []propertySub
}

// NewHub creates a hub delivering through d. A nil dispatcher delivers
// synchronously.
func NewHub[T any](d Dispatcher) *Hub[T] {
	if d == nil {
		d = Sync{}
	}
	return &Hub[T]{dispatcher: d}
}

// OnChange registers a structural change handler in registration order.
func (h *Hub[T]) OnChange(fn Handler[T]) Subscription {
	if fn == nil {
		return Subscription{}
	}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.changes = append(h.changes, changeSub[T]{id: id, fn: fn})
	h.mu.Unlock()

	return Subscription{cancel: func() {
		h.mu.Lock()
		for i, sub := range h.changes {
			if sub.id == id {
				h.changes = append(h.changes[:i], h.changes[i+1:]...)
				break
			}
		}
		h.mu.Unlock()
	}}
}

// OnProperty registers a named-property handler.
func (h *Hub[T]) OnProperty(fn PropertyHandler) Subscription {
	if fn == nil {
		return Subscription{}
	}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.properties = append(h.properties, propertySub{id: id, fn: fn})
	h.mu.Unlock()

	return Subscription{cancel: func() {
		h.mu.Lock()
		for i, sub := range h.properties {
			if sub.id == id {
				h.properties = append(h.properties[:i], h.properties[i+1:]...)
				break
			}
		}
		h.mu.Unlock()
	}}
}

// Publish delivers a structural change event to all registered handlers.
func (h *Hub[T]) Publish(ev Event[T]) {
	h.mu.Lock()
	subs := make([]changeSub[T], len(h.changes))
	copy(subs, h.changes)
	h.mu.Unlock()

	for _, sub := range subs {
		fn := sub.fn
		h.dispatcher.Dispatch(func() { fn(ev) })
	}
}

// PublishProperty delivers a named-property event to all registered
// handlers.
func (h *Hub[T]) PublishProperty(p Property) {
	h.mu.Lock()
	subs := make([]propertySub, len(h.properties))
	copy(subs, h.properties)
	h.mu.Unlock()

	for _, sub := range subs {
		fn := sub.fn
		h.dispatcher.Dispatch(func() { fn(p) })
	}
}
