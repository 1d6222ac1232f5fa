package catalog

import (
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeStockCategory = "StockCategory"

// Event type constants
const (
	EventTypeStockCategoryCreated = "StockCategoryCreated"
	EventTypeStockCategoryUpdated = "StockCategoryUpdated"
	EventTypeStockCategoryDeleted = "StockCategoryDeleted"
)

// StockCategoryCreatedEvent is published when a new category is created
type StockCategoryCreatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
}

// NewStockCategoryCreatedEvent creates a new StockCategoryCreatedEvent
func NewStockCategoryCreatedEvent(category *StockCategory) *StockCategoryCreatedEvent {
	return &StockCategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCategoryCreated, AggregateTypeStockCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
	}
}

// EventType returns the event type name
func (e *StockCategoryCreatedEvent) EventType() string {
	return EventTypeStockCategoryCreated
}

// StockCategoryUpdatedEvent is published when a category is updated
type StockCategoryUpdatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
}

// NewStockCategoryUpdatedEvent creates a new StockCategoryUpdatedEvent
func NewStockCategoryUpdatedEvent(category *StockCategory) *StockCategoryUpdatedEvent {
	return &StockCategoryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCategoryUpdated, AggregateTypeStockCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
	}
}

// EventType returns the event type name
func (e *StockCategoryUpdatedEvent) EventType() string {
	return EventTypeStockCategoryUpdated
}

// StockCategoryDeletedEvent is published when a category is deleted
type StockCategoryDeletedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
}

// NewStockCategoryDeletedEvent creates a new StockCategoryDeletedEvent
func NewStockCategoryDeletedEvent(category *StockCategory) *StockCategoryDeletedEvent {
	return &StockCategoryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCategoryDeleted, AggregateTypeStockCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
	}
}

// EventType returns the event type name
func (e *StockCategoryDeletedEvent) EventType() string {
	return EventTypeStockCategoryDeleted
}
