package inventory

import (
	"context"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockItemRepository defines persistence operations for stock items
type StockItemRepository interface {
	// FindByID finds a stock item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)

	// FindByIDForUpdate finds a stock item by ID holding a row lock.
	// Must be called inside a transaction; the lock is released at commit.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*StockItem, error)

	// FindBySKU finds a stock item by SKU
	FindBySKU(ctx context.Context, sku string) (*StockItem, error)

	// FindByIDs finds stock items by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]StockItem, error)

	// FindAll finds stock items with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]StockItem, error)

	// FindBelowMinimum finds stock items whose on-hand quantity is below threshold
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]StockItem, error)

	// Save creates or updates a stock item
	Save(ctx context.Context, item *StockItem) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, item *StockItem) error

	// SaveWithLockAndEvents saves with optimistic locking and persists domain
	// events to the outbox in the same transaction
	SaveWithLockAndEvents(ctx context.Context, item *StockItem, events []shared.DomainEvent) error

	// Delete hard-deletes a stock item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stock items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySKU checks if a SKU is already taken
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// ExistsByCategory checks if any stock item references a category.
	// Used for validation before category deletion.
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// ExistsByStore checks if any stock item references a store
	ExistsByStore(ctx context.Context, storeID uuid.UUID) (bool, error)
}
