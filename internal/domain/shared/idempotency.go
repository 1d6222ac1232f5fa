package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys a consumer has already handled so a
// redelivered event can be skipped. Entries expire after their TTL, at which
// point the same key counts as new again.
type IdempotencyStore interface {
	// MarkProcessed records the key if it is not already present.
	// It returns true when the key was newly recorded and false when the
	// key was seen before and has not expired.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Close releases any resources held by the store
	Close() error
}
