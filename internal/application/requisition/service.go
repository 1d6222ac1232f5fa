package requisition

import (
	"context"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// StockRequestService handles stock request workflow operations
type StockRequestService struct {
	requestRepo    requisition.StockRequestRepository
	stockItemRepo  inventory.StockItemRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewStockRequestService creates a new stock request service
func NewStockRequestService(
	requestRepo requisition.StockRequestRepository,
	stockItemRepo inventory.StockItemRepository,
	txScope TransactionScope,
) *StockRequestService {
	return &StockRequestService{
		requestRepo:   requestRepo,
		stockItemRepo: stockItemRepo,
		txScope:       txScope,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *StockRequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRequest creates and submits a new stock request
func (s *StockRequestService) CreateRequest(ctx context.Context, requester valueobject.Actor, req CreateStockRequestRequest) (*StockRequestResponse, error) {
	ids := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.StockItemID
	}
	stockItems, err := s.resolveStockItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	requestNumber, err := s.requestRepo.GenerateRequestNumber(ctx)
	if err != nil {
		return nil, err
	}

	request, err := requisition.NewStockRequest(requestNumber, req.SiteID, requester, req.Notes)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		stockItem := stockItems[line.StockItemID]
		if _, err := request.AddItem(stockItem.ID, stockItem.Name, stockItem.SKU, stockItem.Unit, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := request.Submit(); err != nil {
		return nil, err
	}

	events := request.GetDomainEvents()
	request.ClearDomainEvents()

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockRequestResponse(request)
	return &response, nil
}

// GetRequest retrieves a stock request by ID
func (s *StockRequestService) GetRequest(ctx context.Context, id uuid.UUID) (*StockRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStockRequestResponse(request)
	return &response, nil
}

// GetRequestByNumber retrieves a stock request by its request number
func (s *StockRequestService) GetRequestByNumber(ctx context.Context, requestNumber string) (*StockRequestResponse, error) {
	request, err := s.requestRepo.FindByRequestNumber(ctx, requestNumber)
	if err != nil {
		return nil, err
	}

	response := ToStockRequestResponse(request)
	return &response, nil
}

// ListRequests lists stock requests with pagination and filtering
func (s *StockRequestService) ListRequests(ctx context.Context, filter StockRequestListFilter) (*shared.Paginated[StockRequestListItemResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.SiteID != nil {
		domainFilter.Filters["site_id"] = *filter.SiteID
	}
	if filter.RequesterID != nil {
		domainFilter.Filters["requester_id"] = *filter.RequesterID
	}
	if filter.Status != nil {
		status := requisition.RequestStatus(*filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invalid request status: "+*filter.Status)
		}
		domainFilter.Filters["status"] = status.String()
	}

	requests, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.requestRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToStockRequestListItemResponses(requests), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ApproveRequest approves a stock request, applying the reviewer's item
// modifications. Re-approval of an already approved request adjusts the
// granted quantities as long as nothing issued is contradicted.
func (s *StockRequestService) ApproveRequest(ctx context.Context, id uuid.UUID, req ApproveStockRequestRequest) (*StockRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	modifications, itemsToAdd, err := s.resolveApprovalItems(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := request.Approve(modifications, itemsToAdd, req.ItemsToRemove, req.Comment); err != nil {
		return nil, err
	}

	events := request.GetDomainEvents()
	request.ClearDomainEvents()

	if err := s.requestRepo.SaveWithLockAndEvents(ctx, request, events); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockRequestResponse(request)
	return &response, nil
}

// RejectRequest rejects a pending stock request
func (s *StockRequestService) RejectRequest(ctx context.Context, id uuid.UUID, req RejectStockRequestRequest) (*StockRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Reject(req.Reason); err != nil {
		return nil, err
	}

	events := request.GetDomainEvents()
	request.ClearDomainEvents()

	if err := s.requestRepo.SaveWithLockAndEvents(ctx, request, events); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockRequestResponse(request)
	return &response, nil
}

// IssueMaterials issues materials against an approved request and deducts the
// on-hand quantities of the affected stock items in the same transaction.
// Stock items are locked in a stable order to avoid deadlocks between
// concurrent issuances.
func (s *StockRequestService) IssueMaterials(ctx context.Context, req IssueMaterialsRequest) (*IssueResultResponse, error) {
	lines := make([]requisition.IssueLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = requisition.IssueLine{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		}
	}

	var result IssueResultResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		events = nil

		request, err := repos.RequestRepo().FindByID(ctx, req.RequestID)
		if err != nil {
			return err
		}

		issued, err := request.IssueMaterials(lines)
		if err != nil {
			return err
		}

		events = request.GetDomainEvents()
		request.ClearDomainEvents()

		for _, info := range sortedByStockItem(issued) {
			stockItem, err := repos.StockItemRepo().FindByIDForUpdate(ctx, info.StockItemID)
			if err != nil {
				return err
			}
			if err := stockItem.Deduct(info.Quantity); err != nil {
				return err
			}
			events = append(events, stockItem.GetDomainEvents()...)
			stockItem.ClearDomainEvents()
			if err := repos.StockItemRepo().SaveWithLock(ctx, stockItem); err != nil {
				return err
			}
		}

		if err := repos.RequestRepo().SaveWithLockAndEvents(ctx, request, events); err != nil {
			return err
		}

		result = IssueResultResponse{
			Request:     ToStockRequestResponse(request),
			IssuedItems: ToIssuedItemResponses(issued),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Broadcast only once the transaction has committed, so subscribers
	// never observe an issuance that was rolled back.
	s.publishEvents(ctx, events)

	return &result, nil
}

// ReceiveMaterials confirms receipt of issued materials at the requesting site
func (s *StockRequestService) ReceiveMaterials(ctx context.Context, req ReceiveMaterialsRequest) (*StockRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	lines := make([]requisition.ReceiveLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = requisition.ReceiveLine{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		}
	}

	if _, err := request.ReceiveMaterials(lines); err != nil {
		return nil, err
	}

	events := request.GetDomainEvents()
	request.ClearDomainEvents()

	if err := s.requestRepo.SaveWithLockAndEvents(ctx, request, events); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockRequestResponse(request)
	return &response, nil
}

// CloseRequest closes a fully issued and fully received request
func (s *StockRequestService) CloseRequest(ctx context.Context, id uuid.UUID) (*StockRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Close(); err != nil {
		return nil, err
	}

	events := request.GetDomainEvents()
	request.ClearDomainEvents()

	if err := s.requestRepo.SaveWithLockAndEvents(ctx, request, events); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockRequestResponse(request)
	return &response, nil
}

// DeleteRequest hard-deletes a stock request
// Only pending and rejected requests can be deleted
func (s *StockRequestService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !request.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only pending or rejected requests can be deleted")
	}

	return s.requestRepo.Delete(ctx, id)
}

// resolveStockItems loads the referenced stock items and verifies they all exist
func (s *StockRequestService) resolveStockItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*inventory.StockItem, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, shared.ErrDuplicateStockItem
		}
		seen[id] = true
		unique = append(unique, id)
	}

	items, err := s.stockItemRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*inventory.StockItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	for _, id := range unique {
		if byID[id] == nil {
			return nil, shared.NewDomainError("STOCK_ITEM_NOT_FOUND", "Stock item "+id.String()+" not found")
		}
	}

	return byID, nil
}

// resolveApprovalItems enriches approval modifications and additions with the
// stock item snapshots (name, SKU, unit) the domain layer stores on each line
func (s *StockRequestService) resolveApprovalItems(ctx context.Context, req ApproveStockRequestRequest) ([]requisition.ItemModification, []requisition.ItemToAdd, error) {
	ids := make([]uuid.UUID, 0, len(req.Modifications)+len(req.ItemsToAdd))
	for _, mod := range req.Modifications {
		if mod.StockItemID != nil {
			ids = append(ids, *mod.StockItemID)
		}
	}
	for _, add := range req.ItemsToAdd {
		ids = append(ids, add.StockItemID)
	}

	byID := make(map[uuid.UUID]*inventory.StockItem)
	if len(ids) > 0 {
		items, err := s.stockItemRepo.FindByIDs(ctx, dedupe(ids))
		if err != nil {
			return nil, nil, err
		}
		for i := range items {
			byID[items[i].ID] = &items[i]
		}
		for _, id := range ids {
			if byID[id] == nil {
				return nil, nil, shared.NewDomainError("STOCK_ITEM_NOT_FOUND", "Stock item "+id.String()+" not found")
			}
		}
	}

	modifications := make([]requisition.ItemModification, len(req.Modifications))
	for i, mod := range req.Modifications {
		modifications[i] = requisition.ItemModification{
			ItemID:            mod.ItemID,
			StockItemID:       mod.StockItemID,
			RequestedQuantity: mod.RequestedQuantity,
			ApprovedQuantity:  mod.ApprovedQuantity,
		}
		if mod.StockItemID != nil {
			stockItem := byID[*mod.StockItemID]
			modifications[i].StockItemName = stockItem.Name
			modifications[i].StockItemSKU = stockItem.SKU
			modifications[i].Unit = stockItem.Unit
		}
	}

	itemsToAdd := make([]requisition.ItemToAdd, len(req.ItemsToAdd))
	for i, add := range req.ItemsToAdd {
		stockItem := byID[add.StockItemID]
		itemsToAdd[i] = requisition.ItemToAdd{
			StockItemID:       add.StockItemID,
			StockItemName:     stockItem.Name,
			StockItemSKU:      stockItem.SKU,
			Unit:              stockItem.Unit,
			RequestedQuantity: add.RequestedQuantity,
			ApprovedQuantity:  add.ApprovedQuantity,
		}
	}

	return modifications, itemsToAdd, nil
}

func (s *StockRequestService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}

func sortedByStockItem(infos []requisition.IssuedItemInfo) []requisition.IssuedItemInfo {
	sorted := make([]requisition.IssuedItemInfo, len(infos))
	copy(sorted, infos)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].StockItemID.String() < sorted[j-1].StockItemID.String(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
