package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"logscout/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventQuerySubmitted         = domain.EventQuerySubmitted
	EventFetchIssued            = domain.EventFetchIssued
	EventPageFolded             = domain.EventPageFolded
	EventQueryExhausted         = domain.EventQueryExhausted
	EventFetchFailed            = domain.EventFetchFailed
	EventStaleResponseDiscarded = domain.EventStaleResponseDiscarded
	EventResultsCleared         = domain.EventResultsCleared
)

// AllEventTypes lists every event type the coordinator publishes
var AllEventTypes = []EventType{
	EventQuerySubmitted,
	EventFetchIssued,
	EventPageFolded,
	EventQueryExhausted,
	EventFetchFailed,
	EventStaleResponseDiscarded,
	EventResultsCleared,
}

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
}

// New creates a new event bus
func New(logger zerolog.Logger) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		logger:    logger.With().Str("component", "eventbus").Logger(),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. It never blocks the caller.
func (b *bus) Publish(event DomainEvent) {
	b.logger.Debug().Str("event", string(event.Type())).Msg("publishing event")

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn().Str("event", string(event.Type())).Msg("event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Close stops the dispatcher and drops queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch delivers events in publish order, one at a time
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.deliver(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("event", string(event.Type())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("event handler panic")
		}
	}()
	h(event)
}
