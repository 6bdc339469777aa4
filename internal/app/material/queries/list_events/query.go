package list_events

import (
	"context"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   *string // Filter by event type (e.g., "material.approved")
	AggregateID *string // Filter by material ID
	Status      *string // Filter by status ("pending", "completed", "failed")
	Limit       int     // Max number of events to return (default: 100)
}

// Query handles the list events query use case.
type Query struct {
	readModel contracts.EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel contracts.EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves outbox events, newest first, with the total number of
// matching events.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.OutboxEvent, int64, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return q.readModel.ListEvents(ctx, &contracts.EventFilter{
		EventType:   req.EventType,
		AggregateID: req.AggregateID,
		Status:      req.Status,
		Limit:       limit,
	})
}
