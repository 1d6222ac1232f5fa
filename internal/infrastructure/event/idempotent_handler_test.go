package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIdempotentHandler_SkipsRedelivery(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := &recordingHandler{}
	handler := NewIdempotentHandler("test", inner, store, zap.NewNop())

	evt := newTestEvent("ThingHappened")
	require.NoError(t, handler.Handle(context.Background(), evt))
	require.NoError(t, handler.Handle(context.Background(), evt))

	assert.Len(t, inner.received, 1)
}

func TestIdempotentHandler_DirectPublishThenOutboxReplay(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	bus := NewInMemoryEventBus(zap.NewNop())
	inner := &recordingHandler{types: []string{"MaterialsIssued"}}
	bus.Subscribe(NewIdempotentHandler("broadcaster", inner, store, zap.NewNop()))

	// The service publishes directly, then the outbox processor replays
	// the same event onto the bus.
	evt := newTestEvent("MaterialsIssued")
	require.NoError(t, bus.Publish(context.Background(), evt))
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Len(t, inner.received, 1)
}

func TestIdempotentHandler_HandlersTrackDeliveriesIndependently(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	first := &recordingHandler{}
	second := &recordingHandler{}
	evt := newTestEvent("ThingHappened")

	require.NoError(t, NewIdempotentHandler("first", first, store, zap.NewNop()).Handle(context.Background(), evt))
	require.NoError(t, NewIdempotentHandler("second", second, store, zap.NewNop()).Handle(context.Background(), evt))

	assert.Len(t, first.received, 1)
	assert.Len(t, second.received, 1)
}

func TestIdempotentHandler_DelegatesEventTypes(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := &recordingHandler{types: []string{"A", "B"}}
	handler := NewIdempotentHandler("test", inner, store, zap.NewNop())

	assert.Equal(t, []string{"A", "B"}, handler.EventTypes())
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	fresh, err := store.MarkProcessed(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = store.MarkProcessed(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestInMemoryIdempotencyStore_ExpiredKeyCountsAsNew(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	_, err := store.MarkProcessed(context.Background(), "key", -time.Second)
	require.NoError(t, err)

	fresh, err := store.MarkProcessed(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
}
