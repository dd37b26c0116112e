package analytics

import (
	"context"
	"sync"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
)

const defaultBuffer = 64

// Dispatcher queues events and hands them to a downstream Handler from a
// single Run loop, so tracking never blocks on slow sinks.
type Dispatcher struct {
	mu      sync.RWMutex
	closed  bool
	events  chan Event
	handler Handler
	logg    *logger.Logger
}

// NewDispatcher creates a dispatcher with the given queue size.
func NewDispatcher(handler Handler, buffer int, logg *logger.Logger) (*Dispatcher, error) {
	if handler == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "analytics handler is required")
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Dispatcher{
		events:  make(chan Event, buffer),
		handler: handler,
		logg:    logg,
	}, nil
}

// Handle enqueues event. A full queue drops the event with LIMIT_REACHED.
func (d *Dispatcher) Handle(ctx context.Context, event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return pkgerrors.New(pkgerrors.CodeDependency, "analytics dispatcher closed")
	}
	select {
	case d.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return pkgerrors.New(pkgerrors.CodeLimitReached, "analytics queue full")
	}
}

// Run drains the queue until the context is canceled or Close is called.
func (d *Dispatcher) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-d.events:
			if !ok {
				return nil
			}
			d.process(ctx, event)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, event Event) {
	if err := d.handler.Handle(ctx, event); err != nil {
		logCtx := d.logg.WithFields(ctx, map[string]any{
			"event_id":   event.ID.String(),
			"event_type": event.Type.String(),
		})
		d.logg.Error(logCtx, "analytics handler failed", err)
	}
}

// Close stops accepting events; Run returns once the queue is drained.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.events)
}
