package requisition

import (
	"time"

	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequestItem is a line item in a create request
type CreateRequestItem struct {
	StockItemID uuid.UUID       `json:"stock_item_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateStockRequestRequest is the payload for creating a stock request
type CreateStockRequestRequest struct {
	SiteID uuid.UUID           `json:"site_id" binding:"required"`
	Notes  string              `json:"notes" binding:"max=2000"`
	Items  []CreateRequestItem `json:"items" binding:"required,min=1,dive"`
}

// ApproveItemModification modifies an existing line during approval
type ApproveItemModification struct {
	ItemID            uuid.UUID        `json:"item_id" binding:"required"`
	StockItemID       *uuid.UUID       `json:"stock_item_id,omitempty"`
	RequestedQuantity *decimal.Decimal `json:"requested_quantity,omitempty"`
	ApprovedQuantity  *decimal.Decimal `json:"approved_quantity,omitempty"`
}

// ApproveItemToAdd introduces a new line during approval
type ApproveItemToAdd struct {
	StockItemID       uuid.UUID        `json:"stock_item_id" binding:"required"`
	RequestedQuantity decimal.Decimal  `json:"requested_quantity" binding:"required"`
	ApprovedQuantity  *decimal.Decimal `json:"approved_quantity,omitempty"`
}

// ApproveStockRequestRequest is the payload for approving a stock request
type ApproveStockRequestRequest struct {
	Modifications []ApproveItemModification `json:"modifications" binding:"dive"`
	ItemsToAdd    []ApproveItemToAdd        `json:"items_to_add" binding:"dive"`
	ItemsToRemove []uuid.UUID               `json:"items_to_remove"`
	Comment       string                    `json:"comment" binding:"max=500"`
}

// RejectStockRequestRequest is the payload for rejecting a stock request
type RejectStockRequestRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// IssueMaterialsItem is a single issuance line
type IssueMaterialsItem struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Notes    string          `json:"notes" binding:"max=500"`
}

// IssueMaterialsRequest is the payload for issuing materials
type IssueMaterialsRequest struct {
	RequestID uuid.UUID            `json:"request_id" binding:"required"`
	Items     []IssueMaterialsItem `json:"items" binding:"required,min=1,dive"`
}

// ReceiveMaterialsItem is a single receipt confirmation line
type ReceiveMaterialsItem struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ReceiveMaterialsRequest is the payload for confirming receipt of materials
type ReceiveMaterialsRequest struct {
	RequestID uuid.UUID              `json:"request_id" binding:"required"`
	Items     []ReceiveMaterialsItem `json:"items" binding:"required,min=1,dive"`
}

// StockRequestListFilter is the query filter for listing stock requests
type StockRequestListFilter struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir"`
	Search      string     `form:"search"`
	SiteID      *uuid.UUID `form:"site_id"`
	RequesterID *uuid.UUID `form:"requester_id"`
	Status      *string    `form:"status"`
}

// RequestItemResponse is a line item in a stock request response
type RequestItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	StockItemID       uuid.UUID       `json:"stock_item_id"`
	StockItemName     string          `json:"stock_item_name"`
	StockItemSKU      string          `json:"stock_item_sku"`
	Unit              string          `json:"unit"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	ApprovedQuantity  decimal.Decimal `json:"approved_quantity"`
	IssuedQuantity    decimal.Decimal `json:"issued_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	IssueNotes        string          `json:"issue_notes,omitempty"`
}

// StockRequestResponse is the full representation of a stock request
type StockRequestResponse struct {
	ID            uuid.UUID             `json:"id"`
	RequestNumber string                `json:"request_number"`
	SiteID        uuid.UUID             `json:"site_id"`
	RequesterKind string                `json:"requester_kind"`
	RequesterID   uuid.UUID             `json:"requester_id"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	ReviewComment string                `json:"review_comment,omitempty"`
	RejectReason  string                `json:"reject_reason,omitempty"`
	Items         []RequestItemResponse `json:"items"`
	ApprovedAt    *time.Time            `json:"approved_at,omitempty"`
	RejectedAt    *time.Time            `json:"rejected_at,omitempty"`
	ClosedAt      *time.Time            `json:"closed_at,omitempty"`
	Version       int                   `json:"version"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// StockRequestListItemResponse is the compact representation used in lists
type StockRequestListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	RequestNumber string    `json:"request_number"`
	SiteID        uuid.UUID `json:"site_id"`
	RequesterKind string    `json:"requester_kind"`
	RequesterID   uuid.UUID `json:"requester_id"`
	Status        string    `json:"status"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// IssueResultResponse reports the outcome of an issuance
type IssueResultResponse struct {
	Request     StockRequestResponse `json:"request"`
	IssuedItems []IssuedItemResponse `json:"issued_items"`
}

// IssuedItemResponse is a single issued line in an issue result
type IssuedItemResponse struct {
	ItemID        uuid.UUID       `json:"item_id"`
	StockItemID   uuid.UUID       `json:"stock_item_id"`
	StockItemName string          `json:"stock_item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

// ToStockRequestResponse maps a domain stock request to its response DTO
func ToStockRequestResponse(request *requisition.StockRequest) StockRequestResponse {
	items := make([]RequestItemResponse, len(request.Items))
	for i, item := range request.Items {
		items[i] = RequestItemResponse{
			ID:                item.ID,
			StockItemID:       item.StockItemID,
			StockItemName:     item.StockItemName,
			StockItemSKU:      item.StockItemSKU,
			Unit:              item.Unit,
			RequestedQuantity: item.RequestedQuantity,
			ApprovedQuantity:  item.ApprovedQuantity,
			IssuedQuantity:    item.IssuedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			IssueNotes:        item.IssueNotes,
		}
	}

	return StockRequestResponse{
		ID:            request.ID,
		RequestNumber: request.RequestNumber,
		SiteID:        request.SiteID,
		RequesterKind: request.RequesterKind,
		RequesterID:   request.RequesterID,
		Status:        request.Status.String(),
		Notes:         request.Notes,
		ReviewComment: request.ReviewComment,
		RejectReason:  request.RejectReason,
		Items:         items,
		ApprovedAt:    request.ApprovedAt,
		RejectedAt:    request.RejectedAt,
		ClosedAt:      request.ClosedAt,
		Version:       request.Version,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
}

// ToStockRequestListItemResponses maps domain stock requests to list DTOs
func ToStockRequestListItemResponses(requests []requisition.StockRequest) []StockRequestListItemResponse {
	responses := make([]StockRequestListItemResponse, len(requests))
	for i := range requests {
		responses[i] = StockRequestListItemResponse{
			ID:            requests[i].ID,
			RequestNumber: requests[i].RequestNumber,
			SiteID:        requests[i].SiteID,
			RequesterKind: requests[i].RequesterKind,
			RequesterID:   requests[i].RequesterID,
			Status:        requests[i].Status.String(),
			ItemCount:     requests[i].ItemCount(),
			CreatedAt:     requests[i].CreatedAt,
		}
	}
	return responses
}

// ToIssuedItemResponses maps issued item infos to DTOs
func ToIssuedItemResponses(infos []requisition.IssuedItemInfo) []IssuedItemResponse {
	responses := make([]IssuedItemResponse, len(infos))
	for i, info := range infos {
		responses[i] = IssuedItemResponse{
			ItemID:        info.ItemID,
			StockItemID:   info.StockItemID,
			StockItemName: info.StockItemName,
			Quantity:      info.Quantity,
			Unit:          info.Unit,
		}
	}
	return responses
}
