package partner

import (
	"context"

	"github.com/farmstock/backend/internal/domain/partner"
	"github.com/farmstock/backend/internal/domain/requisition"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SiteService handles farm site management operations
type SiteService struct {
	siteRepo       partner.SiteRepository
	requestRepo    requisition.StockRequestRepository
	eventPublisher shared.EventPublisher
}

// NewSiteService creates a new site service
func NewSiteService(siteRepo partner.SiteRepository, requestRepo requisition.StockRequestRepository) *SiteService {
	return &SiteService{
		siteRepo:    siteRepo,
		requestRepo: requestRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SiteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateSite creates a new site
func (s *SiteService) CreateSite(ctx context.Context, req CreateSiteRequest) (*SiteResponse, error) {
	exists, err := s.siteRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A site named "+req.Name+" already exists")
	}

	site, err := partner.NewSite(req.Name, req.Location)
	if err != nil {
		return nil, err
	}

	events := site.GetDomainEvents()
	site.ClearDomainEvents()

	if err := s.siteRepo.Save(ctx, site); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToSiteResponse(site)
	return &response, nil
}

// GetSite retrieves a site by ID
func (s *SiteService) GetSite(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToSiteResponse(site)
	return &response, nil
}

// ListSites lists sites with pagination
func (s *SiteService) ListSites(ctx context.Context, filter ListFilter) (*shared.Paginated[SiteResponse], error) {
	domainFilter := toDomainFilter(filter)

	sites, err := s.siteRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.siteRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToSiteResponses(sites), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateSite updates a site's details
func (s *SiteService) UpdateSite(ctx context.Context, id uuid.UUID, req UpdateSiteRequest) (*SiteResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if site.Name != req.Name {
		exists, err := s.siteRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_NAME", "A site named "+req.Name+" already exists")
		}
	}

	if err := site.Update(req.Name, req.Location); err != nil {
		return nil, err
	}

	events := site.GetDomainEvents()
	site.ClearDomainEvents()

	if err := s.siteRepo.Save(ctx, site); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToSiteResponse(site)
	return &response, nil
}

// DeleteSite hard-deletes a site
// A site with stock requests on record cannot be deleted
func (s *SiteService) DeleteSite(ctx context.Context, id uuid.UUID) error {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	filter := shared.DefaultFilter()
	filter.Filters["site_id"] = id
	count, err := s.requestRepo.Count(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("SITE_IN_USE", "Site "+site.Name+" has stock requests and cannot be deleted")
	}

	return s.siteRepo.Delete(ctx, id)
}

func (s *SiteService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
