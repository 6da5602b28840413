package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamps every stored record has
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps a fresh id with matching created and updated times
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// Aggregate is a root whose pending events a service publishes after saving
type Aggregate interface {
	PullEvents() []DomainEvent
}

// BaseAggregateRoot queues the events raised by an aggregate root
type BaseAggregateRoot struct {
	BaseEntity
	events []DomainEvent
}

// NewBaseAggregateRoot creates a root with a new identity and no events
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// Raise queues an event until PullEvents
func (a *BaseAggregateRoot) Raise(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns the queued events without removing them
func (a *BaseAggregateRoot) Events() []DomainEvent {
	return a.events
}

// PullEvents returns the queued events and empties the queue
func (a *BaseAggregateRoot) PullEvents() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
