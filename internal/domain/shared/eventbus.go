package shared

import "context"

// EventHandler consumes domain events
type EventHandler interface {
	// Handle processes a single domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types the handler wants.
	// An empty slice subscribes the handler to everything.
	EventTypes() []string
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler registrations
type EventSubscriber interface {
	// Subscribe registers a handler, optionally restricted to the given types.
	// Without explicit types the handler's own EventTypes() decides.
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes every registration of the handler
	Unsubscribe(handler EventHandler)
}

// EventBus combines publishing and subscription with a lifecycle
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// OutboxEventSaver persists domain events to the outbox table inside the
// caller's transaction, so the events commit or roll back with the aggregate
type OutboxEventSaver interface {
	// SaveEvents writes the events to the outbox. txProvider must be the
	// active *gorm.DB transaction.
	SaveEvents(ctx context.Context, txProvider interface{}, events ...DomainEvent) error
}
