package backend

import (
	"sync"
)

// Bus is a minimal synchronous event bus. Handlers run on the emitting
// goroutine, outside the bus lock, so a handler may subscribe or unsubscribe.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string]map[int]func()
	order    map[string][]int
}

// Subscribe registers handler for event
func (b *Bus) Subscribe(event string, handler func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers == nil {
		b.handlers = make(map[string]map[int]func())
		b.order = make(map[string][]int)
	}
	if b.handlers[event] == nil {
		b.handlers[event] = make(map[int]func())
	}

	id := b.nextID
	b.nextID++
	b.handlers[event][id] = handler
	b.order[event] = append(b.order[event], id)

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(event, id) })
	}
}

func (b *Bus) unsubscribe(event string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers[event], id)
	ids := b.order[event]
	for i, v := range ids {
		if v == id {
			b.order[event] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

// Emit calls every handler of event in subscription order
func (b *Bus) Emit(event string) {
	b.mu.Lock()
	var fns []func()
	for _, id := range b.order[event] {
		if fn, ok := b.handlers[event][id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribers returns the number of handlers registered for event
func (b *Bus) Subscribers(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[event])
}
