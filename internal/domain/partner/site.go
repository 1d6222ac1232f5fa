package partner

import (
	"strings"
	"time"

	"github.com/farmstock/backend/internal/domain/shared"
)

// Site represents a farm site that requests and consumes materials
type Site struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Location string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Site) TableName() string {
	return "sites"
}

// NewSite creates a new site
func NewSite(name, location string) (*Site, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Site name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Site name cannot exceed 100 characters")
	}

	site := &Site{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Location:          location,
	}

	site.AddDomainEvent(NewSiteCreatedEvent(site))

	return site, nil
}

// Update updates the site's details
func (s *Site) Update(name, location string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Site name cannot be empty")
	}

	s.Name = name
	s.Location = location
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSiteUpdatedEvent(s))

	return nil
}
