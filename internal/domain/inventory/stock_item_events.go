package inventory

import (
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeStockItem = "StockItem"

// Event type constants
const (
	EventTypeStockItemCreated  = "StockItemCreated"
	EventTypeStockItemUpdated  = "StockItemUpdated"
	EventTypeStockItemDeleted  = "StockItemDeleted"
	EventTypeStockRestocked    = "StockRestocked"
	EventTypeStockDeducted     = "StockDeducted"
	EventTypeStockBelowMinimum = "StockBelowMinimum"
)

// StockItemCreatedEvent is raised when a new stock item is created
type StockItemCreatedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID `json:"stock_item_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	CategoryID  uuid.UUID `json:"category_id"`
	StoreID     uuid.UUID `json:"store_id"`
}

// NewStockItemCreatedEvent creates a new StockItemCreatedEvent
func NewStockItemCreatedEvent(item *StockItem) *StockItemCreatedEvent {
	return &StockItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockItemCreated, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		SKU:             item.SKU,
		Name:            item.Name,
		CategoryID:      item.CategoryID,
		StoreID:         item.StoreID,
	}
}

// EventType returns the event type name
func (e *StockItemCreatedEvent) EventType() string {
	return EventTypeStockItemCreated
}

// StockItemUpdatedEvent is raised when a stock item's descriptive fields change
type StockItemUpdatedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID `json:"stock_item_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
}

// NewStockItemUpdatedEvent creates a new StockItemUpdatedEvent
func NewStockItemUpdatedEvent(item *StockItem) *StockItemUpdatedEvent {
	return &StockItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockItemUpdated, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		SKU:             item.SKU,
		Name:            item.Name,
	}
}

// EventType returns the event type name
func (e *StockItemUpdatedEvent) EventType() string {
	return EventTypeStockItemUpdated
}

// StockItemDeletedEvent is raised when a stock item is deleted
type StockItemDeletedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID `json:"stock_item_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
}

// NewStockItemDeletedEvent creates a new StockItemDeletedEvent
func NewStockItemDeletedEvent(item *StockItem) *StockItemDeletedEvent {
	return &StockItemDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockItemDeleted, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		SKU:             item.SKU,
		Name:            item.Name,
	}
}

// EventType returns the event type name
func (e *StockItemDeletedEvent) EventType() string {
	return EventTypeStockItemDeleted
}

// StockRestockedEvent is raised when the on-hand quantity increases
type StockRestockedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID       `json:"stock_item_id"`
	SKU         string          `json:"sku"`
	Quantity    decimal.Decimal `json:"quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// NewStockRestockedEvent creates a new StockRestockedEvent
func NewStockRestockedEvent(item *StockItem, quantity decimal.Decimal) *StockRestockedEvent {
	return &StockRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRestocked, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		SKU:             item.SKU,
		Quantity:        quantity,
		NewQuantity:     item.Quantity,
	}
}

// EventType returns the event type name
func (e *StockRestockedEvent) EventType() string {
	return EventTypeStockRestocked
}

// StockDeductedEvent is raised when the on-hand quantity decreases
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID       `json:"stock_item_id"`
	SKU         string          `json:"sku"`
	Quantity    decimal.Decimal `json:"quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(item *StockItem, quantity decimal.Decimal) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		SKU:             item.SKU,
		Quantity:        quantity,
		NewQuantity:     item.Quantity,
	}
}

// EventType returns the event type name
func (e *StockDeductedEvent) EventType() string {
	return EventTypeStockDeducted
}

// StockBelowMinimumEvent is raised when a deduction drops the on-hand
// quantity below the configured threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID       `json:"stock_item_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(item *StockItem) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		SKU:             item.SKU,
		Name:            item.Name,
		Quantity:        item.Quantity,
		MinQuantity:     item.MinQuantity,
	}
}

// EventType returns the event type name
func (e *StockBelowMinimumEvent) EventType() string {
	return EventTypeStockBelowMinimum
}
