package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Event struct {
	ActorID  *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Dispatcher writes activity logs off the request path. A full queue drops
// the event rather than blocking the caller.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit log failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Record is a shorthand for the common actor/action/entity event.
func (d *Dispatcher) Record(actor uuid.UUID, action, entity string, entityID uuid.UUID, metadata any) {
	ev := Event{
		Action:   action,
		Entity:   entity,
		Metadata: metadata,
	}
	if actor != uuid.Nil {
		ev.ActorID = &actor
	}
	if entityID != uuid.Nil {
		ev.EntityID = &entityID
	}
	d.Dispatch(ev)
}
