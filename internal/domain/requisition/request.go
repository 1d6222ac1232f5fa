package requisition

import (
	"fmt"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestStatus represents the status of a stock request
type RequestStatus string

const (
	RequestStatusPending         RequestStatus = "PENDING"
	RequestStatusApproved        RequestStatus = "APPROVED"
	RequestStatusPartiallyIssued RequestStatus = "PARTIALLY_ISSUED"
	RequestStatusIssued          RequestStatus = "ISSUED"
	RequestStatusRejected        RequestStatus = "REJECTED"
	RequestStatusClosed          RequestStatus = "CLOSED"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusPartiallyIssued,
		RequestStatusIssued, RequestStatusRejected, RequestStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return target == RequestStatusApproved || target == RequestStatusRejected
	case RequestStatusApproved:
		return target == RequestStatusApproved || target == RequestStatusPartiallyIssued || target == RequestStatusIssued
	case RequestStatusPartiallyIssued:
		return target == RequestStatusPartiallyIssued || target == RequestStatusIssued
	case RequestStatusIssued:
		return target == RequestStatusClosed
	case RequestStatusRejected, RequestStatusClosed:
		return false // Terminal states
	}
	return false
}

// CanIssue returns true if materials may be issued in this status
func (s RequestStatus) CanIssue() bool {
	return s == RequestStatusApproved || s == RequestStatusPartiallyIssued
}

// CanApprove returns true if the request may be approved or re-approved in this status
func (s RequestStatus) CanApprove() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

// RequestItem represents a line item in a stock request
type RequestItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequestID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockItemID       uuid.UUID       `gorm:"type:uuid;not null"`
	StockItemName     string          `gorm:"type:varchar(200);not null"`
	StockItemSKU      string          `gorm:"type:varchar(50);not null"`
	Unit              string          `gorm:"type:varchar(20);not null"`
	RequestedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity the requester asked for
	ApprovedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity granted at approval
	IssuedQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity handed out so far
	ReceivedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity confirmed received so far
	IssueNotes        string          `gorm:"type:varchar(500)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RequestItem) TableName() string {
	return "stock_request_items"
}

// NewRequestItem creates a new request item in the pre-approval state
func NewRequestItem(requestID, stockItemID uuid.UUID, stockItemName, stockItemSKU, unit string, requestedQuantity decimal.Decimal) (*RequestItem, error) {
	if stockItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM", "Stock item ID cannot be empty")
	}
	if stockItemName == "" {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM_NAME", "Stock item name cannot be empty")
	}
	if requestedQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	now := time.Now()
	return &RequestItem{
		ID:                uuid.New(),
		RequestID:         requestID,
		StockItemID:       stockItemID,
		StockItemName:     stockItemName,
		StockItemSKU:      stockItemSKU,
		Unit:              unit,
		RequestedQuantity: requestedQuantity,
		ApprovedQuantity:  decimal.Zero,
		IssuedQuantity:    decimal.Zero,
		ReceivedQuantity:  decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// UpdateRequestedQuantity updates the requested quantity
func (i *RequestItem) UpdateRequestedQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}
	i.RequestedQuantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// SetApprovedQuantity sets the quantity granted at approval
// The approved quantity can never drop below what has already been issued
func (i *RequestItem) SetApprovedQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Approved quantity cannot be negative")
	}
	if quantity.LessThan(i.IssuedQuantity) {
		return shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Approved quantity %s cannot be less than already issued %s", quantity.String(), i.IssuedQuantity.String()))
	}
	i.ApprovedQuantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// RemainingQuantity returns the approved quantity still to be issued
func (i *RequestItem) RemainingQuantity() decimal.Decimal {
	remaining := i.ApprovedQuantity.Sub(i.IssuedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// OutstandingQuantity returns the issued quantity not yet confirmed received
func (i *RequestItem) OutstandingQuantity() decimal.Decimal {
	outstanding := i.IssuedQuantity.Sub(i.ReceivedQuantity)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// IsFullyIssued returns true if the whole approved quantity has been issued
func (i *RequestItem) IsFullyIssued() bool {
	return i.IssuedQuantity.GreaterThanOrEqual(i.ApprovedQuantity)
}

// IsFullyReceived returns true if everything issued has been confirmed received
func (i *RequestItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.IssuedQuantity)
}

// AddIssuedQuantity records an issuance against this item
func (i *RequestItem) AddIssuedQuantity(quantity decimal.Decimal, notes string) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Issue quantity must be positive")
	}

	newIssued := i.IssuedQuantity.Add(quantity)
	if newIssued.GreaterThan(i.ApprovedQuantity) {
		return shared.NewDomainError("QUANTITY_EXCEEDED",
			fmt.Sprintf("Cannot issue %s, only %s remaining", quantity.String(), i.RemainingQuantity().String()))
	}

	i.IssuedQuantity = newIssued
	if notes != "" {
		i.IssueNotes = notes
	}
	i.UpdatedAt = time.Now()

	return nil
}

// AddReceivedQuantity records a receipt confirmation against this item
func (i *RequestItem) AddReceivedQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	newReceived := i.ReceivedQuantity.Add(quantity)
	if newReceived.GreaterThan(i.IssuedQuantity) {
		return shared.NewDomainError("QUANTITY_EXCEEDED",
			fmt.Sprintf("Cannot receive %s, only %s outstanding", quantity.String(), i.OutstandingQuantity().String()))
	}

	i.ReceivedQuantity = newReceived
	i.UpdatedAt = time.Now()

	return nil
}

// ItemModification describes a change to an existing item during approval
type ItemModification struct {
	ItemID            uuid.UUID        `json:"item_id"`
	StockItemID       *uuid.UUID       `json:"stock_item_id,omitempty"` // Optional: swap the item for another stock item
	StockItemName     string           `json:"-"`
	StockItemSKU      string           `json:"-"`
	Unit              string           `json:"-"`
	RequestedQuantity *decimal.Decimal `json:"requested_quantity,omitempty"`
	ApprovedQuantity  *decimal.Decimal `json:"approved_quantity,omitempty"`
}

// ItemToAdd describes a new item introduced during approval
type ItemToAdd struct {
	StockItemID       uuid.UUID        `json:"stock_item_id"`
	StockItemName     string           `json:"-"`
	StockItemSKU      string           `json:"-"`
	Unit              string           `json:"-"`
	RequestedQuantity decimal.Decimal  `json:"requested_quantity"`
	ApprovedQuantity  *decimal.Decimal `json:"approved_quantity,omitempty"` // Defaults to requested quantity
}

// IssueLine describes a single item issuance
type IssueLine struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
}

// ReceiveLine describes a single item receipt confirmation
type ReceiveLine struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// IssuedItemInfo describes an issuance made against a stock item
// The inventory side uses it to deduct on-hand quantities
type IssuedItemInfo struct {
	ItemID        uuid.UUID       `json:"item_id"`
	StockItemID   uuid.UUID       `json:"stock_item_id"`
	StockItemName string          `json:"stock_item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

// ReceivedItemInfo describes a receipt confirmation against a stock item
type ReceivedItemInfo struct {
	ItemID        uuid.UUID       `json:"item_id"`
	StockItemID   uuid.UUID       `json:"stock_item_id"`
	StockItemName string          `json:"stock_item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

// StockRequest represents a stock request aggregate root
// It manages the requisition lifecycle from submission through approval,
// issuance, receipt confirmation and closure
type StockRequest struct {
	shared.BaseAggregateRoot
	RequestNumber string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	SiteID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	RequesterKind string        `gorm:"type:varchar(20);not null"`
	RequesterID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Items         []RequestItem `gorm:"foreignKey:RequestID;references:ID"`
	Status        RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Notes         string        `gorm:"type:text"`
	ReviewComment string        `gorm:"type:varchar(500)"`
	RejectReason  string        `gorm:"type:varchar(500)"`
	ApprovedAt    *time.Time    `gorm:"index"`
	RejectedAt    *time.Time
	ClosedAt      *time.Time
}

// TableName returns the table name for GORM
func (StockRequest) TableName() string {
	return "stock_requests"
}

// NewStockRequest creates a new stock request in PENDING status
func NewStockRequest(requestNumber string, siteID uuid.UUID, requester valueobject.Actor, notes string) (*StockRequest, error) {
	if requestNumber == "" {
		return nil, shared.NewDomainError("INVALID_REQUEST_NUMBER", "Request number cannot be empty")
	}
	if len(requestNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_REQUEST_NUMBER", "Request number cannot exceed 50 characters")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if requester.IsZero() {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester cannot be empty")
	}

	request := &StockRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequestNumber:     requestNumber,
		SiteID:            siteID,
		RequesterKind:     string(requester.Kind()),
		RequesterID:       requester.UserID(),
		Items:             make([]RequestItem, 0),
		Status:            RequestStatusPending,
		Notes:             notes,
	}

	return request, nil
}

// Requester returns the requesting actor
func (r *StockRequest) Requester() valueobject.Actor {
	actor, _ := valueobject.NewActor(valueobject.ActorKind(r.RequesterKind), r.RequesterID)
	return actor
}

// AddItem adds a new line item
// Only allowed in PENDING status; approval-time additions go through Approve
func (r *StockRequest) AddItem(stockItemID uuid.UUID, stockItemName, stockItemSKU, unit string, requestedQuantity decimal.Decimal) (*RequestItem, error) {
	if r.Status != RequestStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending request")
	}
	if r.hasStockItem(stockItemID) {
		return nil, shared.NewDomainError("DUPLICATE_STOCK_ITEM", "Stock item already requested, update the quantity instead")
	}

	item, err := NewRequestItem(r.ID, stockItemID, stockItemName, stockItemSKU, unit, requestedQuantity)
	if err != nil {
		return nil, err
	}

	r.Items = append(r.Items, *item)
	r.UpdatedAt = time.Now()

	return item, nil
}

// Submit finalizes creation and emits the created event
// Requires at least one item
func (r *StockRequest) Submit() error {
	if r.Status != RequestStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit request in %s status", r.Status))
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit request without items")
	}

	r.AddDomainEvent(NewStockRequestCreatedEvent(r))

	return nil
}

// Approve approves the request, applying the reviewer's modifications
// Allowed in PENDING (first approval) and APPROVED (revising a prior approval)
// Items with no explicit approved quantity default to their requested quantity
func (r *StockRequest) Approve(modifications []ItemModification, itemsToAdd []ItemToAdd, itemsToRemove []uuid.UUID, comment string) error {
	if !r.Status.CanApprove() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve request in %s status", r.Status))
	}

	// Apply modifications to existing items
	for _, mod := range modifications {
		item := r.GetItem(mod.ItemID)
		if item == nil {
			return shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Request item %s not found", mod.ItemID))
		}
		if mod.StockItemID != nil {
			if item.IssuedQuantity.GreaterThan(decimal.Zero) {
				return shared.NewDomainError("INVALID_STATE", "Cannot swap the stock item of a line with issued quantity")
			}
			item.StockItemID = *mod.StockItemID
			item.StockItemName = mod.StockItemName
			item.StockItemSKU = mod.StockItemSKU
			item.Unit = mod.Unit
		}
		if mod.RequestedQuantity != nil {
			if err := item.UpdateRequestedQuantity(*mod.RequestedQuantity); err != nil {
				return err
			}
		}
		if mod.ApprovedQuantity != nil {
			if err := item.SetApprovedQuantity(*mod.ApprovedQuantity); err != nil {
				return err
			}
		} else if item.ApprovedQuantity.IsZero() && item.IssuedQuantity.IsZero() {
			if err := item.SetApprovedQuantity(item.RequestedQuantity); err != nil {
				return err
			}
		}
	}

	// Remove items
	for _, itemID := range itemsToRemove {
		item := r.GetItem(itemID)
		if item == nil {
			return shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Request item %s not found", itemID))
		}
		if item.IssuedQuantity.GreaterThan(decimal.Zero) {
			return shared.NewDomainError("INVALID_STATE", "Cannot remove a line with issued quantity")
		}
		r.removeItem(itemID)
	}

	// Add new items, approved at the requested quantity unless overridden
	for _, add := range itemsToAdd {
		item, err := NewRequestItem(r.ID, add.StockItemID, add.StockItemName, add.StockItemSKU, add.Unit, add.RequestedQuantity)
		if err != nil {
			return err
		}
		approved := add.RequestedQuantity
		if add.ApprovedQuantity != nil {
			approved = *add.ApprovedQuantity
		}
		if err := item.SetApprovedQuantity(approved); err != nil {
			return err
		}
		r.Items = append(r.Items, *item)
	}

	// Default approval for untouched items on first approval
	if r.Status == RequestStatusPending {
		for idx := range r.Items {
			if r.Items[idx].ApprovedQuantity.IsZero() && r.Items[idx].IssuedQuantity.IsZero() {
				if err := r.Items[idx].SetApprovedQuantity(r.Items[idx].RequestedQuantity); err != nil {
					return err
				}
			}
		}
	}

	if len(r.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot approve request without items")
	}
	if err := r.checkNoDuplicateStockItems(); err != nil {
		return err
	}

	now := time.Now()
	r.Status = RequestStatusApproved
	r.ReviewComment = comment
	if r.ApprovedAt == nil {
		r.ApprovedAt = &now
	}
	r.UpdatedAt = now

	r.AddDomainEvent(NewStockRequestApprovedEvent(r))

	return nil
}

// IssueMaterials records issuance of materials against approved items
// Allowed in APPROVED or PARTIALLY_ISSUED status
// All lines must succeed; the caller wraps this in a transaction together
// with the inventory deduction so a failing line rolls everything back
func (r *StockRequest) IssueMaterials(lines []IssueLine) ([]IssuedItemInfo, error) {
	if !r.Status.CanIssue() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue materials for request in %s status", r.Status))
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Issue lines cannot be empty")
	}

	issued := make([]IssuedItemInfo, 0, len(lines))

	for _, line := range lines {
		item := r.GetItem(line.ItemID)
		if item == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Request item %s not found", line.ItemID))
		}
		if err := item.AddIssuedQuantity(line.Quantity, line.Notes); err != nil {
			return nil, err
		}
		issued = append(issued, IssuedItemInfo{
			ItemID:        item.ID,
			StockItemID:   item.StockItemID,
			StockItemName: item.StockItemName,
			Quantity:      line.Quantity,
			Unit:          item.Unit,
		})
	}

	// Status derives from whether every line is fully issued
	if r.isAllItemsIssued() {
		r.Status = RequestStatusIssued
	} else {
		r.Status = RequestStatusPartiallyIssued
	}
	r.UpdatedAt = time.Now()

	r.AddDomainEvent(NewMaterialsIssuedEvent(r, issued))

	return issued, nil
}

// ReceiveMaterials records receipt confirmations from the requesting site
// Allowed whenever there is outstanding issued quantity; status is unchanged
func (r *StockRequest) ReceiveMaterials(lines []ReceiveLine) ([]ReceivedItemInfo, error) {
	if r.Status == RequestStatusPending || r.Status == RequestStatusRejected {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive materials for request in %s status", r.Status))
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Receive lines cannot be empty")
	}

	received := make([]ReceivedItemInfo, 0, len(lines))

	for _, line := range lines {
		item := r.GetItem(line.ItemID)
		if item == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Request item %s not found", line.ItemID))
		}
		if err := item.AddReceivedQuantity(line.Quantity); err != nil {
			return nil, err
		}
		received = append(received, ReceivedItemInfo{
			ItemID:        item.ID,
			StockItemID:   item.StockItemID,
			StockItemName: item.StockItemName,
			Quantity:      line.Quantity,
			Unit:          item.Unit,
		})
	}

	r.UpdatedAt = time.Now()

	r.AddDomainEvent(NewMaterialsReceivedEvent(r, received))

	return received, nil
}

// Reject rejects the request
// Allowed only in PENDING status
func (r *StockRequest) Reject(reason string) error {
	if !r.Status.CanTransitionTo(RequestStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject request in %s status", r.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reject reason is required")
	}

	now := time.Now()
	r.Status = RequestStatusRejected
	r.RejectReason = reason
	r.RejectedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewStockRequestRejectedEvent(r))

	return nil
}

// Close closes a fully issued and fully received request
func (r *StockRequest) Close() error {
	if !r.Status.CanTransitionTo(RequestStatusClosed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close request in %s status", r.Status))
	}
	if !r.isAllItemsReceived() {
		return shared.NewDomainError("INVALID_STATE", "Cannot close request before all issued materials are received")
	}

	now := time.Now()
	r.Status = RequestStatusClosed
	r.ClosedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewStockRequestClosedEvent(r))

	return nil
}

// CanDelete returns true if the request may be hard-deleted
func (r *StockRequest) CanDelete() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusRejected
}

// GetItem returns an item by its ID
func (r *StockRequest) GetItem(itemID uuid.UUID) *RequestItem {
	for idx := range r.Items {
		if r.Items[idx].ID == itemID {
			return &r.Items[idx]
		}
	}
	return nil
}

// GetItemByStockItem returns an item by stock item ID
func (r *StockRequest) GetItemByStockItem(stockItemID uuid.UUID) *RequestItem {
	for idx := range r.Items {
		if r.Items[idx].StockItemID == stockItemID {
			return &r.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of line items
func (r *StockRequest) ItemCount() int {
	return len(r.Items)
}

// IsTerminal returns true if the request is in a terminal state
func (r *StockRequest) IsTerminal() bool {
	return r.Status == RequestStatusRejected || r.Status == RequestStatusClosed
}

// TotalRemainingQuantity returns the total approved quantity still to be issued
func (r *StockRequest) TotalRemainingQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.RemainingQuantity())
	}
	return total
}

// TotalOutstandingQuantity returns the total issued quantity not yet received
func (r *StockRequest) TotalOutstandingQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.OutstandingQuantity())
	}
	return total
}

func (r *StockRequest) hasStockItem(stockItemID uuid.UUID) bool {
	return r.GetItemByStockItem(stockItemID) != nil
}

func (r *StockRequest) removeItem(itemID uuid.UUID) {
	for idx, item := range r.Items {
		if item.ID == itemID {
			r.Items = append(r.Items[:idx], r.Items[idx+1:]...)
			return
		}
	}
}

func (r *StockRequest) checkNoDuplicateStockItems() error {
	seen := make(map[uuid.UUID]bool, len(r.Items))
	for _, item := range r.Items {
		if seen[item.StockItemID] {
			return shared.NewDomainError("DUPLICATE_STOCK_ITEM",
				fmt.Sprintf("Stock item %s appears more than once", item.StockItemID))
		}
		seen[item.StockItemID] = true
	}
	return nil
}

func (r *StockRequest) isAllItemsIssued() bool {
	for _, item := range r.Items {
		if !item.IsFullyIssued() {
			return false
		}
	}
	return len(r.Items) > 0
}

func (r *StockRequest) isAllItemsReceived() bool {
	for _, item := range r.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return len(r.Items) > 0
}
