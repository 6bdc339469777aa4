package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// MaterialUploadedEvent is emitted when a material is submitted for review.
type MaterialUploadedEvent struct {
	MaterialID string    `json:"materialId"`
	Title      string    `json:"title"`
	CategoryID string    `json:"categoryId"`
	OwnerID    string    `json:"ownerId"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (e *MaterialUploadedEvent) EventType() string   { return "material.uploaded" }
func (e *MaterialUploadedEvent) AggregateID() string { return e.MaterialID }

// MaterialApprovedEvent is emitted when an administrator approves a material.
type MaterialApprovedEvent struct {
	MaterialID string    `json:"materialId"`
	OwnerID    string    `json:"ownerId"`
	ApprovedAt time.Time `json:"approvedAt"`
}

func (e *MaterialApprovedEvent) EventType() string   { return "material.approved" }
func (e *MaterialApprovedEvent) AggregateID() string { return e.MaterialID }

// MaterialRejectedEvent is emitted when an administrator rejects a material.
type MaterialRejectedEvent struct {
	MaterialID string    `json:"materialId"`
	OwnerID    string    `json:"ownerId"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejectedAt"`
}

func (e *MaterialRejectedEvent) EventType() string   { return "material.rejected" }
func (e *MaterialRejectedEvent) AggregateID() string { return e.MaterialID }

// MaterialDeletedEvent is emitted when a material is removed.
type MaterialDeletedEvent struct {
	MaterialID string    `json:"materialId"`
	OwnerID    string    `json:"ownerId"`
	DeletedBy  string    `json:"deletedBy"`
	DeletedAt  time.Time `json:"deletedAt"`
}

func (e *MaterialDeletedEvent) EventType() string   { return "material.deleted" }
func (e *MaterialDeletedEvent) AggregateID() string { return e.MaterialID }
