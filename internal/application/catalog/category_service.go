package catalog

import (
	"context"

	"github.com/farmstock/backend/internal/domain/catalog"
	"github.com/farmstock/backend/internal/domain/inventory"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles stock category management operations
type CategoryService struct {
	categoryRepo   catalog.StockCategoryRepository
	stockItemRepo  inventory.StockItemRepository
	eventPublisher shared.EventPublisher
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo catalog.StockCategoryRepository, stockItemRepo inventory.StockItemRepository) *CategoryService {
	return &CategoryService{
		categoryRepo:  categoryRepo,
		stockItemRepo: stockItemRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *CategoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateCategory creates a new stock category
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A category named "+req.Name+" already exists")
	}

	category, err := catalog.NewStockCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	events := category.GetDomainEvents()
	category.ClearDomainEvents()

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories lists categories with pagination
func (s *CategoryService) ListCategories(ctx context.Context, filter CategoryListFilter) (*shared.Paginated[CategoryResponse], error) {
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

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToCategoryResponses(categories), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateCategory updates a category's name and description
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.Name != req.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_NAME", "A category named "+req.Name+" already exists")
		}
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	events := category.GetDomainEvents()
	category.ClearDomainEvents()

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToCategoryResponse(category)
	return &response, nil
}

// DeleteCategory hard-deletes a category
// A category still referenced by stock items cannot be deleted
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.stockItemRepo.ExistsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category "+category.Name+" is referenced by stock items and cannot be deleted")
	}

	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
