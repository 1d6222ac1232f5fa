package partner

import (
	"context"

	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/partner"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StoreService handles store management operations
type StoreService struct {
	storeRepo      partner.StoreRepository
	stockItemRepo  inventory.StockItemRepository
	eventPublisher shared.EventPublisher
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo partner.StoreRepository, stockItemRepo inventory.StockItemRepository) *StoreService {
	return &StoreService{
		storeRepo:     storeRepo,
		stockItemRepo: stockItemRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *StoreService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateStore creates a new store
func (s *StoreService) CreateStore(ctx context.Context, req CreateStoreRequest) (*StoreResponse, error) {
	exists, err := s.storeRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A store named "+req.Name+" already exists")
	}

	store, err := partner.NewStore(req.Name, req.Location, req.ManagerName, req.Phone)
	if err != nil {
		return nil, err
	}

	events := store.GetDomainEvents()
	store.ClearDomainEvents()

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStoreResponse(store)
	return &response, nil
}

// GetStore retrieves a store by ID
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStoreResponse(store)
	return &response, nil
}

// ListStores lists stores with pagination
func (s *StoreService) ListStores(ctx context.Context, filter ListFilter) (*shared.Paginated[StoreResponse], error) {
	domainFilter := toDomainFilter(filter)

	stores, err := s.storeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.storeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToStoreResponses(stores), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateStore updates a store's details
func (s *StoreService) UpdateStore(ctx context.Context, id uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if store.Name != req.Name {
		exists, err := s.storeRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_NAME", "A store named "+req.Name+" already exists")
		}
	}

	if err := store.Update(req.Name, req.Location, req.ManagerName, req.Phone); err != nil {
		return nil, err
	}

	events := store.GetDomainEvents()
	store.ClearDomainEvents()

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToStoreResponse(store)
	return &response, nil
}

// DeleteStore hard-deletes a store
// A store still holding stock items cannot be deleted
func (s *StoreService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.stockItemRepo.ExistsByStore(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("STORE_IN_USE", "Store "+store.Name+" holds stock items and cannot be deleted")
	}

	return s.storeRepo.Delete(ctx, id)
}

func (s *StoreService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
