package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ActorKind identifies which kind of user an Actor refers to
type ActorKind string

const (
	ActorKindAdmin    ActorKind = "ADMIN"
	ActorKindEmployee ActorKind = "EMPLOYEE"
)

// IsValid checks if the actor kind is valid
func (k ActorKind) IsValid() bool {
	return k == ActorKindAdmin || k == ActorKindEmployee
}

// Actor is a value object identifying who performed an action.
// It is a tagged reference: exactly one kind and one user id, never both empty.
// It is immutable - construct it through NewActor or the kind-specific helpers.
type Actor struct {
	kind ActorKind
	id   uuid.UUID
}

// NewActor creates an actor of the given kind
func NewActor(kind ActorKind, id uuid.UUID) (Actor, error) {
	if !kind.IsValid() {
		return Actor{}, fmt.Errorf("invalid actor kind: %s", kind)
	}
	if id == uuid.Nil {
		return Actor{}, fmt.Errorf("actor id cannot be empty")
	}
	return Actor{kind: kind, id: id}, nil
}

// NewAdminActor creates an actor referring to an admin user
func NewAdminActor(id uuid.UUID) (Actor, error) {
	return NewActor(ActorKindAdmin, id)
}

// NewEmployeeActor creates an actor referring to an employee user
func NewEmployeeActor(id uuid.UUID) (Actor, error) {
	return NewActor(ActorKindEmployee, id)
}

// ParseActor parses an actor from its string parts (e.g. persistence columns)
func ParseActor(kind string, id string) (Actor, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Actor{}, fmt.Errorf("invalid actor id: %w", err)
	}
	return NewActor(ActorKind(strings.ToUpper(strings.TrimSpace(kind))), parsed)
}

// Kind returns the actor kind
func (a Actor) Kind() ActorKind {
	return a.kind
}

// UserID returns the id of the referenced user
func (a Actor) UserID() uuid.UUID {
	return a.id
}

// IsAdmin returns true if the actor is an admin
func (a Actor) IsAdmin() bool {
	return a.kind == ActorKindAdmin
}

// IsZero returns true if the actor has not been set
func (a Actor) IsZero() bool {
	return a.kind == "" && a.id == uuid.Nil
}

// Equals checks if two actors refer to the same user
func (a Actor) Equals(other Actor) bool {
	return a.kind == other.kind && a.id == other.id
}

// String returns a human-readable representation
func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.kind, a.id)
}

type actorJSON struct {
	Kind ActorKind `json:"kind"`
	ID   uuid.UUID `json:"id"`
}

// MarshalJSON implements json.Marshaler
func (a Actor) MarshalJSON() ([]byte, error) {
	return json.Marshal(actorJSON{Kind: a.kind, ID: a.id})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Actor) UnmarshalJSON(data []byte) error {
	var raw actorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	actor, err := NewActor(raw.Kind, raw.ID)
	if err != nil {
		return err
	}
	*a = actor
	return nil
}
