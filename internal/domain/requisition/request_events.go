package requisition

import (
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeStockRequest = "StockRequest"

// Event type constants
const (
	EventTypeStockRequestCreated  = "StockRequestCreated"
	EventTypeStockRequestApproved = "StockRequestApproved"
	EventTypeStockRequestRejected = "StockRequestRejected"
	EventTypeStockRequestClosed   = "StockRequestClosed"
	EventTypeMaterialsIssued      = "MaterialsIssued"
	EventTypeMaterialsReceived    = "MaterialsReceived"
)

// RequestItemInfo represents line item information for events
type RequestItemInfo struct {
	ItemID            uuid.UUID       `json:"item_id"`
	StockItemID       uuid.UUID       `json:"stock_item_id"`
	StockItemName     string          `json:"stock_item_name"`
	StockItemSKU      string          `json:"stock_item_sku"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	ApprovedQuantity  decimal.Decimal `json:"approved_quantity"`
	IssuedQuantity    decimal.Decimal `json:"issued_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	Unit              string          `json:"unit"`
}

func requestItemInfos(r *StockRequest) []RequestItemInfo {
	items := make([]RequestItemInfo, len(r.Items))
	for i, item := range r.Items {
		items[i] = RequestItemInfo{
			ItemID:            item.ID,
			StockItemID:       item.StockItemID,
			StockItemName:     item.StockItemName,
			StockItemSKU:      item.StockItemSKU,
			RequestedQuantity: item.RequestedQuantity,
			ApprovedQuantity:  item.ApprovedQuantity,
			IssuedQuantity:    item.IssuedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			Unit:              item.Unit,
		}
	}
	return items
}

// StockRequestCreatedEvent is raised when a new stock request is submitted
type StockRequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID         `json:"request_id"`
	RequestNumber string            `json:"request_number"`
	SiteID        uuid.UUID         `json:"site_id"`
	RequesterKind string            `json:"requester_kind"`
	RequesterID   uuid.UUID         `json:"requester_id"`
	Items         []RequestItemInfo `json:"items"`
}

// NewStockRequestCreatedEvent creates a new StockRequestCreatedEvent
func NewStockRequestCreatedEvent(request *StockRequest) *StockRequestCreatedEvent {
	return &StockRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRequestCreated, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		SiteID:          request.SiteID,
		RequesterKind:   request.RequesterKind,
		RequesterID:     request.RequesterID,
		Items:           requestItemInfos(request),
	}
}

// EventType returns the event type name
func (e *StockRequestCreatedEvent) EventType() string {
	return EventTypeStockRequestCreated
}

// StockRequestApprovedEvent is raised when a stock request is approved,
// including re-approvals that revise a prior approval
type StockRequestApprovedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID         `json:"request_id"`
	RequestNumber string            `json:"request_number"`
	SiteID        uuid.UUID         `json:"site_id"`
	ReviewComment string            `json:"review_comment,omitempty"`
	Items         []RequestItemInfo `json:"items"`
}

// NewStockRequestApprovedEvent creates a new StockRequestApprovedEvent
func NewStockRequestApprovedEvent(request *StockRequest) *StockRequestApprovedEvent {
	return &StockRequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRequestApproved, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		SiteID:          request.SiteID,
		ReviewComment:   request.ReviewComment,
		Items:           requestItemInfos(request),
	}
}

// EventType returns the event type name
func (e *StockRequestApprovedEvent) EventType() string {
	return EventTypeStockRequestApproved
}

// StockRequestRejectedEvent is raised when a stock request is rejected
type StockRequestRejectedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID `json:"request_id"`
	RequestNumber string    `json:"request_number"`
	SiteID        uuid.UUID `json:"site_id"`
	RejectReason  string    `json:"reject_reason"`
}

// NewStockRequestRejectedEvent creates a new StockRequestRejectedEvent
func NewStockRequestRejectedEvent(request *StockRequest) *StockRequestRejectedEvent {
	return &StockRequestRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRequestRejected, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		SiteID:          request.SiteID,
		RejectReason:    request.RejectReason,
	}
}

// EventType returns the event type name
func (e *StockRequestRejectedEvent) EventType() string {
	return EventTypeStockRequestRejected
}

// StockRequestClosedEvent is raised when a fully received request is closed
type StockRequestClosedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID `json:"request_id"`
	RequestNumber string    `json:"request_number"`
	SiteID        uuid.UUID `json:"site_id"`
}

// NewStockRequestClosedEvent creates a new StockRequestClosedEvent
func NewStockRequestClosedEvent(request *StockRequest) *StockRequestClosedEvent {
	return &StockRequestClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRequestClosed, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		SiteID:          request.SiteID,
	}
}

// EventType returns the event type name
func (e *StockRequestClosedEvent) EventType() string {
	return EventTypeStockRequestClosed
}

// MaterialsIssuedEvent is raised when materials are issued against a request
// The inventory context consumed the deduction inside the same transaction;
// this event is for downstream notification only
type MaterialsIssuedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID        `json:"request_id"`
	RequestNumber string           `json:"request_number"`
	SiteID        uuid.UUID        `json:"site_id"`
	IssuedItems   []IssuedItemInfo `json:"issued_items"`
	IsFullyIssued bool             `json:"is_fully_issued"`
}

// NewMaterialsIssuedEvent creates a new MaterialsIssuedEvent
func NewMaterialsIssuedEvent(request *StockRequest, issuedItems []IssuedItemInfo) *MaterialsIssuedEvent {
	return &MaterialsIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialsIssued, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		SiteID:          request.SiteID,
		IssuedItems:     issuedItems,
		IsFullyIssued:   request.Status == RequestStatusIssued,
	}
}

// EventType returns the event type name
func (e *MaterialsIssuedEvent) EventType() string {
	return EventTypeMaterialsIssued
}

// MaterialsReceivedEvent is raised when a site confirms receipt of issued materials
type MaterialsReceivedEvent struct {
	shared.BaseDomainEvent
	RequestID       uuid.UUID          `json:"request_id"`
	RequestNumber   string             `json:"request_number"`
	SiteID          uuid.UUID          `json:"site_id"`
	ReceivedItems   []ReceivedItemInfo `json:"received_items"`
	IsFullyReceived bool               `json:"is_fully_received"`
}

// NewMaterialsReceivedEvent creates a new MaterialsReceivedEvent
func NewMaterialsReceivedEvent(request *StockRequest, receivedItems []ReceivedItemInfo) *MaterialsReceivedEvent {
	return &MaterialsReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialsReceived, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		SiteID:          request.SiteID,
		ReceivedItems:   receivedItems,
		IsFullyReceived: request.isAllItemsReceived(),
	}
}

// EventType returns the event type name
func (e *MaterialsReceivedEvent) EventType() string {
	return EventTypeMaterialsReceived
}
