package requisition

import (
	"context"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/requisition"
)

// TransactionScope provides transactional access to the repositories a
// requisition operation touches. When a function is executed within a
// transaction scope, all repository operations are part of the same database
// transaction and are committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to the
// current transaction. Issuance deducts stock item quantities in the same
// transaction that updates the request, so both repositories share the tx.
type TransactionalRepositories interface {
	// RequestRepo returns the stock request repository scoped to the transaction
	RequestRepo() requisition.StockRequestRepository
	// StockItemRepo returns the stock item repository scoped to the transaction
	StockItemRepo() inventory.StockItemRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	requestRepo   requisition.StockRequestRepository
	stockItemRepo inventory.StockItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(requestRepo requisition.StockRequestRepository, stockItemRepo inventory.StockItemRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		requestRepo:   requestRepo,
		stockItemRepo: stockItemRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RequestRepo returns the stock request repository.
func (s *NoOpTransactionScope) RequestRepo() requisition.StockRequestRepository {
	return s.requestRepo
}

// StockItemRepo returns the stock item repository.
func (s *NoOpTransactionScope) StockItemRepo() inventory.StockItemRepository {
	return s.stockItemRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
