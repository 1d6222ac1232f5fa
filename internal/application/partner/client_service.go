package partner

import (
	"context"

	"github.com/farmstock/backend/internal/domain/partner"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client management operations
type ClientService struct {
	clientRepo     partner.ClientRepository
	eventPublisher shared.EventPublisher
}

// NewClientService creates a new client service
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ClientService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.Name, req.Phone, req.Email, req.Address)
	if err != nil {
		return nil, err
	}

	events := client.GetDomainEvents()
	client.ClearDomainEvents()

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToClientResponse(client)
	return &response, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// ListClients lists clients with pagination
func (s *ClientService) ListClients(ctx context.Context, filter ListFilter) (*shared.Paginated[ClientResponse], error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToClientResponses(clients), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateClient updates a client's details
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.Update(req.Name, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}

	events := client.GetDomainEvents()
	client.ClearDomainEvents()

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToClientResponse(client)
	return &response, nil
}

// DeleteClient hard-deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *ClientService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
