package telemetry

import (
	"context"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Metric attribute keys
var (
	AttrSKU           = attribute.Key("sku")
	AttrSiteID        = attribute.Key("site_id")
	AttrRequesterKind = attribute.Key("requester_kind")
)

// StockMetrics records business-level counters from domain events.
// It subscribes to the event bus alongside the other handlers, so every
// path that raises an event is measured without touching the services.
type StockMetrics struct {
	logger *zap.Logger

	requestsCreated   *Counter
	requestsApproved  *Counter
	requestsRejected  *Counter
	requestsClosed    *Counter
	materialsIssued   *Counter
	quantityDeducted  *Histogram
	quantityRestocked *Histogram
	belowMinimum      *Counter
}

// NewStockMetrics creates the metric instruments on the given provider
func NewStockMetrics(mp *MeterProvider, logger *zap.Logger) (*StockMetrics, error) {
	meter := mp.Meter("farmstock.stock")

	sm := &StockMetrics{logger: logger}

	var err error
	if sm.requestsCreated, err = NewCounter(meter, "stock_requests_created_total", "Stock requests submitted", "{request}"); err != nil {
		return nil, err
	}
	if sm.requestsApproved, err = NewCounter(meter, "stock_requests_approved_total", "Stock requests approved", "{request}"); err != nil {
		return nil, err
	}
	if sm.requestsRejected, err = NewCounter(meter, "stock_requests_rejected_total", "Stock requests rejected", "{request}"); err != nil {
		return nil, err
	}
	if sm.requestsClosed, err = NewCounter(meter, "stock_requests_closed_total", "Stock requests closed", "{request}"); err != nil {
		return nil, err
	}
	if sm.materialsIssued, err = NewCounter(meter, "materials_issued_total", "Material issue operations", "{issue}"); err != nil {
		return nil, err
	}
	if sm.quantityDeducted, err = NewHistogram(meter, "stock_quantity_deducted", "Quantity deducted per operation", "{unit}"); err != nil {
		return nil, err
	}
	if sm.quantityRestocked, err = NewHistogram(meter, "stock_quantity_restocked", "Quantity restocked per operation", "{unit}"); err != nil {
		return nil, err
	}
	if sm.belowMinimum, err = NewCounter(meter, "stock_below_minimum_total", "Times an item dropped below its minimum", "{event}"); err != nil {
		return nil, err
	}

	return sm, nil
}

// EventTypes returns the event types the metrics handler consumes
func (sm *StockMetrics) EventTypes() []string {
	return []string{
		requisition.EventTypeStockRequestCreated,
		requisition.EventTypeStockRequestApproved,
		requisition.EventTypeStockRequestRejected,
		requisition.EventTypeStockRequestClosed,
		requisition.EventTypeMaterialsIssued,
		inventory.EventTypeStockDeducted,
		inventory.EventTypeStockRestocked,
		inventory.EventTypeStockBelowMinimum,
	}
}

// Handle records the metric matching the domain event
func (sm *StockMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *requisition.StockRequestCreatedEvent:
		sm.requestsCreated.Inc(ctx,
			AttrSiteID.String(e.SiteID.String()),
			AttrRequesterKind.String(e.RequesterKind))
	case *requisition.StockRequestApprovedEvent:
		sm.requestsApproved.Inc(ctx, AttrSiteID.String(e.SiteID.String()))
	case *requisition.StockRequestRejectedEvent:
		sm.requestsRejected.Inc(ctx, AttrSiteID.String(e.SiteID.String()))
	case *requisition.StockRequestClosedEvent:
		sm.requestsClosed.Inc(ctx, AttrSiteID.String(e.SiteID.String()))
	case *requisition.MaterialsIssuedEvent:
		sm.materialsIssued.Inc(ctx, AttrSiteID.String(e.SiteID.String()))
	case *inventory.StockDeductedEvent:
		sm.quantityDeducted.Record(ctx, e.Quantity.InexactFloat64(), AttrSKU.String(e.SKU))
	case *inventory.StockRestockedEvent:
		sm.quantityRestocked.Record(ctx, e.Quantity.InexactFloat64(), AttrSKU.String(e.SKU))
	case *inventory.StockBelowMinimumEvent:
		sm.belowMinimum.Inc(ctx, AttrSKU.String(e.SKU))
	default:
		sm.logger.Debug("unhandled event type for metrics", zap.String("event_type", event.EventType()))
	}
	return nil
}

var _ shared.EventHandler = (*StockMetrics)(nil)
