package inventory

import (
	"context"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockItemService handles stock item management operations
type StockItemService struct {
	stockItemRepo  inventory.StockItemRepository
	requestRepo    requisition.StockRequestRepository
	eventPublisher shared.EventPublisher
}

// NewStockItemService creates a new stock item service
func NewStockItemService(stockItemRepo inventory.StockItemRepository, requestRepo requisition.StockRequestRepository) *StockItemService {
	return &StockItemService{
		stockItemRepo: stockItemRepo,
		requestRepo:   requestRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *StockItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateStockItem creates a new stock item
func (s *StockItemService) CreateStockItem(ctx context.Context, req CreateStockItemRequest) (*StockItemResponse, error) {
	exists, err := s.stockItemRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_SKU", "A stock item with SKU "+req.SKU+" already exists")
	}

	item, err := inventory.NewStockItem(req.SKU, req.Name, req.CategoryID, req.StoreID, req.Unit)
	if err != nil {
		return nil, err
	}

	item.Description = req.Description
	if req.MinQuantity != nil {
		if err := item.SetMinQuantity(*req.MinQuantity); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil && req.Quantity.GreaterThan(item.Quantity) {
		if err := item.Restock(*req.Quantity); err != nil {
			return nil, err
		}
	}

	events := item.GetDomainEvents()
	item.ClearDomainEvents()

	if err := s.stockItemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockItemResponse(item)
	return &response, nil
}

// GetStockItem retrieves a stock item by ID
func (s *StockItemService) GetStockItem(ctx context.Context, id uuid.UUID) (*StockItemResponse, error) {
	item, err := s.stockItemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// ListStockItems lists stock items with pagination and filtering
func (s *StockItemService) ListStockItems(ctx context.Context, filter StockItemListFilter) (*shared.Paginated[StockItemResponse], error) {
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
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.StoreID != nil {
		domainFilter.Filters["store_id"] = *filter.StoreID
	}

	var (
		items []inventory.StockItem
		err   error
	)
	if filter.BelowMinimum {
		items, err = s.stockItemRepo.FindBelowMinimum(ctx, domainFilter)
	} else {
		items, err = s.stockItemRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.stockItemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToStockItemResponses(items), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateStockItem updates a stock item's descriptive fields
func (s *StockItemService) UpdateStockItem(ctx context.Context, id uuid.UUID, req UpdateStockItemRequest) (*StockItemResponse, error) {
	item, err := s.stockItemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Update(req.Name, req.CategoryID, req.Unit, req.Description); err != nil {
		return nil, err
	}
	if req.MinQuantity != nil {
		if err := item.SetMinQuantity(*req.MinQuantity); err != nil {
			return nil, err
		}
	}

	events := item.GetDomainEvents()
	item.ClearDomainEvents()

	if err := s.stockItemRepo.SaveWithLockAndEvents(ctx, item, events); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockItemResponse(item)
	return &response, nil
}

// Restock increases the on-hand quantity of a stock item
func (s *StockItemService) Restock(ctx context.Context, id uuid.UUID, req RestockRequest) (*StockItemResponse, error) {
	item, err := s.stockItemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Restock(req.Quantity); err != nil {
		return nil, err
	}

	events := item.GetDomainEvents()
	item.ClearDomainEvents()

	if err := s.stockItemRepo.SaveWithLockAndEvents(ctx, item, events); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStockItemResponse(item)
	return &response, nil
}

// DeleteStockItem hard-deletes a stock item
// An item referenced by any stock request cannot be deleted
func (s *StockItemService) DeleteStockItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.stockItemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.requestRepo.ExistsByStockItem(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("STOCK_ITEM_IN_USE", "Stock item "+item.Name+" is referenced by stock requests and cannot be deleted")
	}

	return s.stockItemRepo.Delete(ctx, id)
}

func (s *StockItemService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
