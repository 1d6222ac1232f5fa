package inventory

import (
	"context"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LowStockAlert represents a low stock notification payload
type LowStockAlert struct {
	StockItemID string          `json:"stock_item_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// LowStockNotifier pushes low stock alerts to interested parties.
// The websocket hub is the default implementation.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert) error
}

// LowStockHandler reacts to StockBelowMinimum events by notifying
// subscribed clients that an item needs restocking
type LowStockHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// NewLowStockHandler creates a new low stock event handler
func NewLowStockHandler(logger *zap.Logger, notifier LowStockNotifier) *LowStockHandler {
	return &LowStockHandler{
		logger:   logger,
		notifier: notifier,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowMinimum}
}

// Handle processes a StockBelowMinimum event
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	belowMin, ok := event.(*inventory.StockBelowMinimumEvent)
	if !ok {
		h.logger.Warn("unexpected event type for low stock handler",
			zap.String("event_type", event.EventType()))
		return nil
	}

	h.logger.Info("stock below minimum",
		zap.String("stock_item_id", belowMin.StockItemID.String()),
		zap.String("sku", belowMin.SKU),
		zap.String("quantity", belowMin.Quantity.String()),
		zap.String("min_quantity", belowMin.MinQuantity.String()))

	if h.notifier == nil {
		return nil
	}

	alert := LowStockAlert{
		StockItemID: belowMin.StockItemID.String(),
		SKU:         belowMin.SKU,
		Name:        belowMin.Name,
		Quantity:    belowMin.Quantity,
		MinQuantity: belowMin.MinQuantity,
	}
	if err := h.notifier.NotifyLowStock(ctx, alert); err != nil {
		h.logger.Error("failed to send low stock alert",
			zap.String("sku", belowMin.SKU),
			zap.Error(err))
	}

	// Alert delivery is best effort, never fail event processing
	return nil
}
