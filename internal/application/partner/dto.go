package partner

import (
	"time"

	"github.com/farmstock/backend/internal/domain/partner"
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter is the shared query filter for partner listings
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// CreateStoreRequest is the payload for creating a store
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Location    string `json:"location" binding:"max=200"`
	ManagerName string `json:"manager_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=30"`
}

// UpdateStoreRequest is the payload for updating a store
type UpdateStoreRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Location    string `json:"location" binding:"max=200"`
	ManagerName string `json:"manager_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=30"`
}

// StoreResponse is the representation of a store
type StoreResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location,omitempty"`
	ManagerName string    `json:"manager_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateSiteRequest is the payload for creating a site
type CreateSiteRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Location string `json:"location" binding:"max=200"`
}

// UpdateSiteRequest is the payload for updating a site
type UpdateSiteRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Location string `json:"location" binding:"max=200"`
}

// SiteResponse is the representation of a site
type SiteResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClientRequest is the payload for creating a client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Phone   string `json:"phone" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=100"`
	Address string `json:"address" binding:"max=300"`
}

// UpdateClientRequest is the payload for updating a client
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Phone   string `json:"phone" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=100"`
	Address string `json:"address" binding:"max=300"`
}

// ClientResponse is the representation of a client
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStoreResponse maps a domain store to its response DTO
func ToStoreResponse(store *partner.Store) StoreResponse {
	return StoreResponse{
		ID:          store.ID,
		Name:        store.Name,
		Location:    store.Location,
		ManagerName: store.ManagerName,
		Phone:       store.Phone,
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}
}

// ToStoreResponses maps domain stores to response DTOs
func ToStoreResponses(stores []partner.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses
}

// ToSiteResponse maps a domain site to its response DTO
func ToSiteResponse(site *partner.Site) SiteResponse {
	return SiteResponse{
		ID:        site.ID,
		Name:      site.Name,
		Location:  site.Location,
		CreatedAt: site.CreatedAt,
		UpdatedAt: site.UpdatedAt,
	}
}

// ToSiteResponses maps domain sites to response DTOs
func ToSiteResponses(sites []partner.Site) []SiteResponse {
	responses := make([]SiteResponse, len(sites))
	for i := range sites {
		responses[i] = ToSiteResponse(&sites[i])
	}
	return responses
}

// ToClientResponse maps a domain client to its response DTO
func ToClientResponse(client *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Phone:     client.Phone,
		Email:     client.Email,
		Address:   client.Address,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ToClientResponses maps domain clients to response DTOs
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

func toDomainFilter(filter ListFilter) shared.Filter {
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
	return domainFilter
}
