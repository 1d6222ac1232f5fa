package catalog

import (
	"strings"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
)

// StockCategory represents a grouping of stock items
type StockCategory struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StockCategory) TableName() string {
	return "stock_categories"
}

// NewStockCategory creates a new stock category
func NewStockCategory(name, description string) (*StockCategory, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &StockCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}

	category.AddDomainEvent(NewStockCategoryCreatedEvent(category))

	return category, nil
}

// Update updates the category's name and description
func (c *StockCategory) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewStockCategoryUpdatedEvent(c))

	return nil
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
