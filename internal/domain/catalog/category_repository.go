package catalog

import (
	"context"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockCategoryRepository defines persistence operations for stock categories
type StockCategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockCategory, error)

	// FindByName finds a category by its name
	FindByName(ctx context.Context, name string) (*StockCategory, error)

	// FindAll finds categories with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]StockCategory, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *StockCategory) error

	// Delete hard-deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a category name is already taken
	ExistsByName(ctx context.Context, name string) (bool, error)
}
