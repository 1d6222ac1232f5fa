package requisition

import (
	"context"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRequestRepository defines persistence operations for stock requests
type StockRequestRepository interface {
	// FindByID finds a stock request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRequest, error)

	// FindByRequestNumber finds a stock request by its request number
	FindByRequestNumber(ctx context.Context, requestNumber string) (*StockRequest, error)

	// FindAll finds stock requests with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]StockRequest, error)

	// FindBySite finds stock requests for a site
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]StockRequest, error)

	// FindByRequester finds stock requests submitted by a specific actor
	FindByRequester(ctx context.Context, requesterID uuid.UUID, filter shared.Filter) ([]StockRequest, error)

	// FindByStatus finds stock requests by status
	FindByStatus(ctx context.Context, status RequestStatus, filter shared.Filter) ([]StockRequest, error)

	// Save creates or updates a stock request
	Save(ctx context.Context, request *StockRequest) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, request *StockRequest) error

	// SaveWithLockAndEvents saves with optimistic locking and persists domain
	// events to the outbox in the same transaction
	SaveWithLockAndEvents(ctx context.Context, request *StockRequest, events []shared.DomainEvent) error

	// Delete hard-deletes a stock request and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stock requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts stock requests in the given status
	CountByStatus(ctx context.Context, status RequestStatus) (int64, error)

	// ExistsByStockItem checks if any request item references a stock item
	// Used for validation before stock item deletion
	ExistsByStockItem(ctx context.Context, stockItemID uuid.UUID) (bool, error)

	// GenerateRequestNumber generates a unique request number (REQ-YYYY-NNNNN)
	GenerateRequestNumber(ctx context.Context) (string, error)
}
