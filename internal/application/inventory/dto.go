package inventory

import (
	"time"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateStockItemRequest is the payload for creating a stock item
type CreateStockItemRequest struct {
	SKU         string           `json:"sku" binding:"required,max=50"`
	Name        string           `json:"name" binding:"required,max=200"`
	CategoryID  uuid.UUID        `json:"category_id" binding:"required"`
	StoreID     uuid.UUID        `json:"store_id" binding:"required"`
	Unit        string           `json:"unit" binding:"required,max=20"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	Description string           `json:"description" binding:"max=500"`
}

// UpdateStockItemRequest is the payload for updating a stock item
type UpdateStockItemRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	CategoryID  uuid.UUID        `json:"category_id" binding:"required"`
	Unit        string           `json:"unit" binding:"required,max=20"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	Description string           `json:"description" binding:"max=500"`
}

// RestockRequest is the payload for increasing on-hand quantity
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// StockItemListFilter is the query filter for listing stock items
type StockItemListFilter struct {
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir"`
	Search       string     `form:"search"`
	CategoryID   *uuid.UUID `form:"category_id"`
	StoreID      *uuid.UUID `form:"store_id"`
	BelowMinimum bool       `form:"below_minimum"`
}

// StockItemResponse is the representation of a stock item
type StockItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CategoryID   uuid.UUID       `json:"category_id"`
	StoreID      uuid.UUID       `json:"store_id"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinQuantity  decimal.Decimal `json:"min_quantity"`
	BelowMinimum bool            `json:"below_minimum"`
	Description  string          `json:"description,omitempty"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToStockItemResponse maps a domain stock item to its response DTO
func ToStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           item.ID,
		SKU:          item.SKU,
		Name:         item.Name,
		CategoryID:   item.CategoryID,
		StoreID:      item.StoreID,
		Unit:         item.Unit,
		Quantity:     item.Quantity,
		MinQuantity:  item.MinQuantity,
		BelowMinimum: item.IsBelowMinimum(),
		Description:  item.Description,
		Version:      item.Version,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToStockItemResponses maps domain stock items to response DTOs
func ToStockItemResponses(items []inventory.StockItem) []StockItemResponse {
	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = ToStockItemResponse(&items[i])
	}
	return responses
}
