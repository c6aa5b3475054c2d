package reveal

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Observer receives reveal events in order.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Feed fans events out to observers and channel subscribers, pacing tile
// events by a fixed delay. A zero delay delivers synchronously.
type Feed struct {
	delay time.Duration

	mu        sync.Mutex
	observers []Observer
	subs      map[int]chan Event
	next      int
}

// NewFeed returns a Feed that waits delay after each tile event.
func NewFeed(delay time.Duration, obs ...Observer) *Feed {
	return &Feed{delay: delay, observers: obs, subs: make(map[int]chan Event)}
}

// Subscribe returns a channel of future events and a func that detaches it.
// Slow subscribers lose events rather than stall the reveal.
func (f *Feed) Subscribe(buf int) (<-chan Event, func()) {
	ch := make(chan Event, buf)
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = ch
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers reports the number of attached channels.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Play delivers events and then calls done (if non-nil). With a delay it runs
// in the background and returns immediately; done still runs if ctx is
// cancelled, so callers can use it to release input locks.
func (f *Feed) Play(ctx context.Context, events []Event, done func()) {
	if f.delay <= 0 {
		for _, e := range events {
			f.emit(e)
		}
		if done != nil {
			done()
		}
		return
	}
	go func() {
		if done != nil {
			defer done()
		}
		for _, e := range events {
			f.emit(e)
			if e.Kind != KindTile {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(f.delay):
			}
		}
	}()
}

func (f *Feed) emit(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.observers {
		o.Observe(e)
	}
	for id, ch := range f.subs {
		select {
		case ch <- e:
		default:
			log.Warn().Int("sub", id).Str("kind", string(e.Kind)).Msg("reveal subscriber full; event dropped")
		}
	}
}
