package event

import (
	"context"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDedupTTL is how long a handled event ID is remembered.
const DefaultDedupTTL = 24 * time.Hour

// IdempotentHandler wraps an EventHandler so each event is handled at most
// once per retention window. A subscriber can see the same event twice: the
// publishing service pushes it onto the bus directly and the outbox
// processor replays it after the transaction commits.
type IdempotentHandler struct {
	name   string
	inner  shared.EventHandler
	store  shared.IdempotencyStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewIdempotentHandler wraps the given handler. The name scopes the dedup
// keys, so handlers sharing one store track deliveries independently.
func NewIdempotentHandler(name string, inner shared.EventHandler, store shared.IdempotencyStore, logger *zap.Logger) *IdempotentHandler {
	return &IdempotentHandler{
		name:   name,
		inner:  inner,
		store:  store,
		ttl:    DefaultDedupTTL,
		logger: logger,
	}
}

// EventTypes delegates to the wrapped handler's subscriptions
func (h *IdempotentHandler) EventTypes() []string {
	return h.inner.EventTypes()
}

// Handle forwards the event to the wrapped handler unless this handler has
// already seen it. When the store is unavailable the event is handled
// anyway; processing twice beats dropping it.
func (h *IdempotentHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	key := h.name + ":" + evt.EventID().String()

	fresh, err := h.store.MarkProcessed(ctx, key, h.ttl)
	if err != nil {
		h.logger.Warn("idempotency check failed, handling event anyway",
			zap.String("handler", h.name),
			zap.String("event_id", evt.EventID().String()),
			zap.String("event_type", evt.EventType()),
			zap.Error(err),
		)
	} else if !fresh {
		h.logger.Debug("skipping duplicate event delivery",
			zap.String("handler", h.name),
			zap.String("event_id", evt.EventID().String()),
			zap.String("event_type", evt.EventType()),
		)
		return nil
	}

	return h.inner.Handle(ctx, evt)
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
