package hr

import "sync"

// Bus broadcasts "this collection changed" after a successful mutation.
// Subscribers run synchronously on the publishing goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Entity)
}

func NewBus() *Bus {
	return &Bus{subs: map[int]func(Entity){}}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Entity)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(e Entity) {
	if b == nil {
		return
	}
	b.mu.RLock()
	fns := make([]func(Entity), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}
