package events

import "sync"

const defaultBacklogCapacity = 10000

// Backlog holds committed events waiting for the async dispatcher. It is
// bounded: once full, the oldest pending event is dropped for each new one.
type Backlog struct {
	mu      sync.Mutex
	slots   []Event
	start   int
	size    int
	dropped int64
}

func NewBacklog(capacity int) *Backlog {
	if capacity <= 0 {
		capacity = defaultBacklogCapacity
	}
	return &Backlog{slots: make([]Event, capacity)}
}

// PushAll appends one transaction's events under a single lock so they stay
// contiguous and in commit order.
func (b *Backlog) PushAll(events []Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range events {
		if b.size == len(b.slots) {
			b.slots[b.start] = Event{}
			b.start = (b.start + 1) % len(b.slots)
			b.size--
			b.dropped++
		}
		b.slots[(b.start+b.size)%len(b.slots)] = e
		b.size++
	}
}

// Take removes and returns up to n of the oldest events, or nil when empty.
func (b *Backlog) Take(n int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	n = min(n, b.size)
	if n <= 0 {
		return nil
	}
	out := make([]Event, n)
	for i := range out {
		idx := (b.start + i) % len(b.slots)
		out[i] = b.slots[idx]
		b.slots[idx] = Event{}
	}
	b.start = (b.start + n) % len(b.slots)
	b.size -= n
	return out
}

func (b *Backlog) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Dropped counts events lost to overflow since creation.
func (b *Backlog) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
