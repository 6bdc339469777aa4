package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// Outbox event statuses
const (
	OutboxPending    = "pending"
	OutboxProcessing = "processing"
	OutboxCompleted  = "completed"
	OutboxFailed     = "failed"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
	RetryCount  int64
}

// EnrichEvents serializes domain events into pending outbox events.
func EnrichEvents(events []domain.DomainEvent) ([]*OutboxEvent, error) {
	out := make([]*OutboxEvent, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", event.EventType(), err)
		}
		out = append(out, &OutboxEvent{
			EventID:     uuid.New().String(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     string(payload),
			Status:      OutboxPending,
		})
	}
	return out, nil
}

// EventFilter narrows an outbox listing. Nil fields are not applied.
type EventFilter struct {
	EventType   *string
	AggregateID *string
	Status      *string
	Limit       int
}

// EventsReadModel lists outbox events, newest first.
type EventsReadModel interface {
	ListEvents(ctx context.Context, f *EventFilter) ([]*OutboxEvent, int64, error)
}
