package partner

import (
	"strings"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
)

// Store represents a storage location holding stock items
type Store struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Location    string `gorm:"type:varchar(200)"`
	ManagerName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store
func NewStore(name, location, managerName, phone string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 100 characters")
	}

	store := &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Location:          location,
		ManagerName:       managerName,
		Phone:             phone,
	}

	store.AddDomainEvent(NewStoreCreatedEvent(store))

	return store, nil
}

// Update updates the store's details
func (s *Store) Update(name, location, managerName, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}

	s.Name = name
	s.Location = location
	s.ManagerName = managerName
	s.Phone = phone
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStoreUpdatedEvent(s))

	return nil
}
