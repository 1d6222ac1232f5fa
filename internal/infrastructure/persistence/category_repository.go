package persistence

import (
	"context"
	"errors"

	"github.com/farmstock/backend/internal/domain/catalog"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockCategoryRepository implements StockCategoryRepository using GORM
type GormStockCategoryRepository struct {
	db *gorm.DB
}

// NewGormStockCategoryRepository creates a new GormStockCategoryRepository
func NewGormStockCategoryRepository(db *gorm.DB) *GormStockCategoryRepository {
	return &GormStockCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormStockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockCategory, error) {
	var category catalog.StockCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its name
func (r *GormStockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.StockCategory, error) {
	var category catalog.StockCategory
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds categories with filtering
func (r *GormStockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.StockCategory, error) {
	query := r.db.WithContext(ctx).Model(&catalog.StockCategory{})
	query = r.applyFilter(query, filter)

	var categories []catalog.StockCategory
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormStockCategoryRepository) Save(ctx context.Context, category *catalog.StockCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete hard-deletes a category
func (r *GormStockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.StockCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *GormStockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.StockCategory{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a category name is already taken
func (r *GormStockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.StockCategory{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormStockCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, CategorySortFields, "")
	if sortField != "" {
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// Ensure GormStockCategoryRepository implements StockCategoryRepository
var _ catalog.StockCategoryRepository = (*GormStockCategoryRepository)(nil)
