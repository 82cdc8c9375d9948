package screentimer

import "sync"

// Notifier delivers page visibility transitions. hidden is true when the page went
// to the background.
type Notifier interface {
	Subscribe(handler func(hidden bool)) (unsubscribe func())
}

// Broadcast is a Notifier fed by Publish. Repeated publications of the same state
// are dropped.
type Broadcast struct {
	mu       sync.Mutex
	hidden   bool
	nextID   int
	handlers map[int]func(bool)
}

// NewBroadcast creates a broadcast that starts in the visible state.
func NewBroadcast() *Broadcast {
	return &Broadcast{handlers: make(map[int]func(bool))}
}

// Subscribe registers handler; the returned function removes it and is idempotent.
func (broadcast *Broadcast) Subscribe(handler func(hidden bool)) func() {
	broadcast.mu.Lock()
	id := broadcast.nextID
	broadcast.nextID++
	broadcast.handlers[id] = handler
	broadcast.mu.Unlock()

	return func() {
		broadcast.mu.Lock()
		delete(broadcast.handlers, id)
		broadcast.mu.Unlock()
	}
}

// Publish records the new state and notifies subscribers if it changed.
func (broadcast *Broadcast) Publish(hidden bool) {
	broadcast.mu.Lock()
	if broadcast.hidden == hidden {
		broadcast.mu.Unlock()
		return
	}
	broadcast.hidden = hidden
	handlers := make([]func(bool), 0, len(broadcast.handlers))
	for id := 0; id < broadcast.nextID; id++ {
		if handler, ok := broadcast.handlers[id]; ok {
			handlers = append(handlers, handler)
		}
	}
	broadcast.mu.Unlock()

	for _, handler := range handlers {
		handler(hidden)
	}
}

// Hidden returns the last published state.
func (broadcast *Broadcast) Hidden() bool {
	broadcast.mu.Lock()
	defer broadcast.mu.Unlock()
	return broadcast.hidden
}

// Merged combines several notifiers: hidden while any source is hidden.
type Merged struct {
	*Broadcast
	mu           sync.Mutex
	hidden       []bool
	unsubscribes []func()
}

// Merge subscribes to every source. Close releases those subscriptions. Sources
// that expose their current state through Hidden() seed the merged state.
func Merge(sources ...Notifier) *Merged {
	merged := &Merged{
		Broadcast: NewBroadcast(),
		hidden:    make([]bool, len(sources)),
	}
	for index, source := range sources {
		if source == nil {
			continue
		}
		if stateful, ok := source.(interface{ Hidden() bool }); ok && stateful.Hidden() {
			merged.hidden[index] = true
			merged.Broadcast.hidden = true
		}
		index := index
		merged.unsubscribes = append(merged.unsubscribes, source.Subscribe(func(hidden bool) {
			merged.update(index, hidden)
		}))
	}
	return merged
}

// Close unsubscribes from all sources.
func (merged *Merged) Close() {
	merged.mu.Lock()
	unsubscribes := merged.unsubscribes
	merged.unsubscribes = nil
	merged.mu.Unlock()
	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}

func (merged *Merged) update(index int, hidden bool) {
	merged.mu.Lock()
	defer merged.mu.Unlock()
	merged.hidden[index] = hidden
	anyHidden := false
	for _, value := range merged.hidden {
		anyHidden = anyHidden || value
	}
	// Published under the lock so concurrent sources cannot reorder transitions.
	merged.Publish(anyHidden)
}
