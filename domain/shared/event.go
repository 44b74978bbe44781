package shared

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DomainEvent is recorded by aggregates and stored in the outbox with the
// same transaction that changed the aggregate. Events are serialized with
// encoding/json, so concrete events keep their payload in exported fields.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// EventBase carries the fields common to every event.
type EventBase struct {
	AggregateID string    `json:"aggregate_id"`
	At          time.Time `json:"occurred_on"`
}

func NewEventBase(aggregateID string) EventBase {
	return EventBase{AggregateID: aggregateID, At: time.Now()}
}

func (b EventBase) OccurredOn() time.Time  { return b.At }
func (b EventBase) GetAggregateID() string { return b.AggregateID }

type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	Name() string
}

func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}

// EventBus routes decoded outbox events to their in-process handlers.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// Publish runs every handler subscribed to the event. All handlers run even
// if one fails; the joined error makes the outbox retry the event.
func (bus *EventBus) Publish(ctx context.Context, event DomainEvent) error {
	if err := ValidateEvent(event); err != nil {
		return err
	}

	bus.mu.RLock()
	handlers := bus.handlers[event.EventName()]
	bus.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("handler %s: %w", handler.Name(), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handlers failed: %v", event.EventName(), len(errs), errs)
	}
	return nil
}

func (bus *EventBus) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, h := range bus.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}

	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	return nil
}

// HasHandlers reports whether anything is subscribed to eventName.
func (bus *EventBus) HasHandlers(eventName string) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.handlers[eventName]) > 0
}

type FuncHandler struct {
	name string
	fn   func(context.Context, DomainEvent) error
}

func NewFuncHandler(name string, fn func(context.Context, DomainEvent) error) *FuncHandler {
	if name == "" {
		name = fmt.Sprintf("func-handler-%d", time.Now().UnixNano())
	}
	return &FuncHandler{
		name: name,
		fn:   fn,
	}
}

func (h *FuncHandler) Handle(ctx context.Context, event DomainEvent) error {
	return h.fn(ctx, event)
}

func (h *FuncHandler) Name() string {
	return h.name
}
