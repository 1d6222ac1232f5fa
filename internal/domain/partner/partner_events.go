package partner

import (
	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeStore  = "Store"
	AggregateTypeSite   = "Site"
	AggregateTypeClient = "Client"
)

// Event type constants
const (
	EventTypeStoreCreated  = "StoreCreated"
	EventTypeStoreUpdated  = "StoreUpdated"
	EventTypeStoreDeleted  = "StoreDeleted"
	EventTypeSiteCreated   = "SiteCreated"
	EventTypeSiteUpdated   = "SiteUpdated"
	EventTypeSiteDeleted   = "SiteDeleted"
	EventTypeClientCreated = "ClientCreated"
	EventTypeClientUpdated = "ClientUpdated"
	EventTypeClientDeleted = "ClientDeleted"
)

// PartnerEvent is the shared payload for store, site and client events
type PartnerEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID `json:"partner_id"`
	Name      string    `json:"name"`
}

func newPartnerEvent(eventType, aggregateType string, id uuid.UUID, name string) *PartnerEvent {
	return &PartnerEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggregateType, id),
		PartnerID:       id,
		Name:            name,
	}
}

// NewStoreCreatedEvent creates a store created event
func NewStoreCreatedEvent(store *Store) *PartnerEvent {
	return newPartnerEvent(EventTypeStoreCreated, AggregateTypeStore, store.ID, store.Name)
}

// NewStoreUpdatedEvent creates a store updated event
func NewStoreUpdatedEvent(store *Store) *PartnerEvent {
	return newPartnerEvent(EventTypeStoreUpdated, AggregateTypeStore, store.ID, store.Name)
}

// NewStoreDeletedEvent creates a store deleted event
func NewStoreDeletedEvent(store *Store) *PartnerEvent {
	return newPartnerEvent(EventTypeStoreDeleted, AggregateTypeStore, store.ID, store.Name)
}

// NewSiteCreatedEvent creates a site created event
func NewSiteCreatedEvent(site *Site) *PartnerEvent {
	return newPartnerEvent(EventTypeSiteCreated, AggregateTypeSite, site.ID, site.Name)
}

// NewSiteUpdatedEvent creates a site updated event
func NewSiteUpdatedEvent(site *Site) *PartnerEvent {
	return newPartnerEvent(EventTypeSiteUpdated, AggregateTypeSite, site.ID, site.Name)
}

// NewSiteDeletedEvent creates a site deleted event
func NewSiteDeletedEvent(site *Site) *PartnerEvent {
	return newPartnerEvent(EventTypeSiteDeleted, AggregateTypeSite, site.ID, site.Name)
}

// NewClientCreatedEvent creates a client created event
func NewClientCreatedEvent(client *Client) *PartnerEvent {
	return newPartnerEvent(EventTypeClientCreated, AggregateTypeClient, client.ID, client.Name)
}

// NewClientUpdatedEvent creates a client updated event
func NewClientUpdatedEvent(client *Client) *PartnerEvent {
	return newPartnerEvent(EventTypeClientUpdated, AggregateTypeClient, client.ID, client.Name)
}

// NewClientDeletedEvent creates a client deleted event
func NewClientDeletedEvent(client *Client) *PartnerEvent {
	return newPartnerEvent(EventTypeClientDeleted, AggregateTypeClient, client.ID, client.Name)
}
