package inventory

import (
	"strings"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem represents a stocked material at a store.
// It is the aggregate root for on-hand quantity operations: restocking,
// deduction at issuance and low-stock detection.
type StockItem struct {
	shared.BaseAggregateRoot
	SKU         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // On-hand quantity
	MinQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Low-stock threshold, zero disables alerts
	Description string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock item with zero on-hand quantity
func NewStockItem(sku, name string, categoryID, storeID uuid.UUID, unit string) (*StockItem, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)

	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	item := &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		CategoryID:        categoryID,
		StoreID:           storeID,
		Unit:              unit,
		Quantity:          decimal.Zero,
		MinQuantity:       decimal.Zero,
	}

	item.AddDomainEvent(NewStockItemCreatedEvent(item))

	return item, nil
}

// Update updates the descriptive fields of the item
func (i *StockItem) Update(name string, categoryID uuid.UUID, unit, description string) error {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)

	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	i.Name = name
	i.CategoryID = categoryID
	i.Unit = unit
	i.Description = description
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewStockItemUpdatedEvent(i))

	return nil
}

// SetMinQuantity sets the low-stock threshold
func (i *StockItem) SetMinQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	i.MinQuantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// Restock increases the on-hand quantity
func (i *StockItem) Restock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	i.Quantity = i.Quantity.Add(quantity)
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewStockRestockedEvent(i, quantity))

	return nil
}

// Deduct decreases the on-hand quantity, typically at material issuance.
// The on-hand quantity can never go negative.
func (i *StockItem) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduct quantity must be positive")
	}
	if i.Quantity.LessThan(quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			"Insufficient stock for "+i.Name+": have "+i.Quantity.String()+", need "+quantity.String())
	}

	i.Quantity = i.Quantity.Sub(quantity)
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewStockDeductedEvent(i, quantity))

	if i.IsBelowMinimum() {
		i.AddDomainEvent(NewStockBelowMinimumEvent(i))
	}

	return nil
}

// IsBelowMinimum returns true if the on-hand quantity is below the threshold
func (i *StockItem) IsBelowMinimum() bool {
	return i.MinQuantity.GreaterThan(decimal.Zero) && i.Quantity.LessThan(i.MinQuantity)
}

// HasStock returns true if at least the given quantity is on hand
func (i *StockItem) HasStock(quantity decimal.Decimal) bool {
	return i.Quantity.GreaterThanOrEqual(quantity)
}
