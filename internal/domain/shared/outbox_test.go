package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadEntry() *OutboxEntry {
	return &OutboxEntry{
		ID:          uuid.New(),
		EventID:     uuid.New(),
		EventType:   "TestEvent",
		AggregateID: uuid.New(),
		Status:      OutboxStatusDead,
		RetryCount:  5,
		MaxRetries:  5,
		LastError:   "handler blew up",
		CreatedAt:   time.Now().Add(-time.Hour),
		UpdatedAt:   time.Now().Add(-time.Minute),
	}
}

func TestOutboxEntry_ResetForRetry(t *testing.T) {
	entry := deadEntry()

	require.NoError(t, entry.ResetForRetry())

	assert.Equal(t, OutboxStatusPending, entry.Status)
	assert.Zero(t, entry.RetryCount)
	assert.Empty(t, entry.LastError)
	assert.Nil(t, entry.NextRetryAt)
}

func TestOutboxEntry_ResetForRetry_RejectsLiveEntries(t *testing.T) {
	for _, status := range []OutboxStatus{
		OutboxStatusPending,
		OutboxStatusProcessing,
		OutboxStatusSent,
		OutboxStatusFailed,
	} {
		entry := &OutboxEntry{ID: uuid.New(), Status: status}
		assert.Error(t, entry.ResetForRetry(), "status %s", status)
	}
}

func TestOutboxEntry_MarkFailed_Backoff(t *testing.T) {
	entry := &OutboxEntry{
		ID:         uuid.New(),
		Status:     OutboxStatusProcessing,
		MaxRetries: 5,
	}

	entry.MarkFailed("error 1")
	require.Equal(t, OutboxStatusFailed, entry.Status)
	require.NotNil(t, entry.NextRetryAt)
	first := time.Until(*entry.NextRetryAt)
	assert.True(t, first > 0 && first <= 2*time.Second)

	entry.Status = OutboxStatusProcessing
	entry.MarkFailed("error 2")
	second := time.Until(*entry.NextRetryAt)
	assert.Equal(t, 2, entry.RetryCount)
	assert.True(t, second > first, "backoff should grow between retries")
}

func TestOutboxEntry_MarkFailed_DeadLettersAfterBudget(t *testing.T) {
	entry := &OutboxEntry{
		ID:         uuid.New(),
		Status:     OutboxStatusProcessing,
		RetryCount: 4,
		MaxRetries: 5,
	}

	entry.MarkFailed("final error")

	assert.Equal(t, OutboxStatusDead, entry.Status)
	assert.Equal(t, "final error", entry.LastError)
	assert.True(t, entry.IsDead())
	assert.False(t, entry.CanRetry())
}
