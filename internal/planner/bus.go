package planner

import "sync"

// Bus carries "refresh requested" signals from mutation sites to the
// aggregator. The signal has no payload; pending signals for one subscriber
// coalesce and Publish never blocks.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan struct{}
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]chan struct{})}
}

// Subscribe returns a channel that receives refresh requests and a function
// that detaches it. The cancel function is idempotent.
func (b *Bus) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// RequestRefresh signals every subscriber.
func (b *Bus) RequestRefresh() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default: // already pending
		}
	}
}
