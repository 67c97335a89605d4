package app

import "sync"

// EventKind identifies which record type changed.
type EventKind string

// EventActivity and related constants name the record types carried by
// change events.
const (
	EventOwner    EventKind = "owner"
	EventActivity EventKind = "activity"
	EventEntry    EventKind = "entry"
)

// EventOp identifies what happened to the record.
type EventOp string

// OpCreated and OpDeleted are the only operations; entries and activities
// are never edited in place.
const (
	OpCreated EventOp = "created"
	OpDeleted EventOp = "deleted"
)

// Event is an invalidation signal: something in the owner's data changed and
// subscribers should load a fresh snapshot. Events never carry the changed
// records themselves.
type Event struct {
	OwnerID string
	Kind    EventKind
	Op      EventOp
}

// Feed fans change events out to subscribers.
type Feed struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewFeed constructs an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]chan Event)}
}

// Subscribe registers a buffered event channel. The returned cancel func
// closes the channel and releases the subscription; it is safe to call more
// than once.
func (f *Feed) Subscribe() (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	ch := make(chan Event, 16)
	f.subs[id] = ch
	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event; the next event triggers
// the same snapshot reload, so nothing is lost beyond coalescing.
func (f *Feed) Publish(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
