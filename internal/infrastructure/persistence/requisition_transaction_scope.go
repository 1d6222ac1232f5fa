package persistence

import (
	"context"

	apprequisition "github.com/farmstock/backend/internal/application/requisition"
	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransactionScope implements the requisition transaction scope using a
// GORM transaction. All repositories handed to the callback share one
// transaction, so request updates and stock deductions commit atomically.
type GormTransactionScope struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// SetOutboxEventSaver sets the outbox saver passed to transaction-scoped repositories
func (s *GormTransactionScope) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	s.outboxSaver = saver
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apprequisition.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx, outboxSaver: s.outboxSaver})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// RequestRepo returns the stock request repository scoped to the transaction
func (r *gormTransactionalRepositories) RequestRepo() requisition.StockRequestRepository {
	repo := NewGormStockRequestRepository(r.tx)
	if r.outboxSaver != nil {
		repo.SetOutboxEventSaver(r.outboxSaver)
	}
	return repo
}

// StockItemRepo returns the stock item repository scoped to the transaction
func (r *gormTransactionalRepositories) StockItemRepo() inventory.StockItemRepository {
	repo := NewGormStockItemRepository(r.tx)
	if r.outboxSaver != nil {
		repo.SetOutboxEventSaver(r.outboxSaver)
	}
	return repo
}

// Ensure GormTransactionScope implements TransactionScope
var _ apprequisition.TransactionScope = (*GormTransactionScope)(nil)
