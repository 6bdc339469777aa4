package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_outbox"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/query"
)

// EventsReadModel lists outbox events stored in Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{client: client}
}

// ListEvents retrieves events from the outbox_events table with filtering.
func (r *EventsReadModel) ListEvents(ctx context.Context, f *contracts.EventFilter) ([]*contracts.OutboxEvent, int64, error) {
	q := query.From(m_outbox.TableName).Select(m_outbox.Columns...)
	if f.EventType != nil {
		q = q.Where(query.Eq(m_outbox.EventType, *f.EventType))
	}
	if f.AggregateID != nil {
		q = q.Where(query.Eq(m_outbox.AggregateID, *f.AggregateID))
	}
	if f.Status != nil {
		q = q.Where(query.Eq(m_outbox.Status, *f.Status))
	}

	total, err := count(ctx, r.client.Single(), q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	q = q.OrderBy(m_outbox.CreatedAt, query.Desc).ThenBy(m_outbox.EventID, query.Asc)
	if f.Limit > 0 {
		q = q.Limit(int64(f.Limit))
	}

	iter := r.client.Single().Query(ctx, q.Build())
	defer iter.Stop()

	events := make([]*contracts.OutboxEvent, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}

		event := &contracts.OutboxEvent{
			EventID:     data.EventID,
			EventType:   data.EventType,
			AggregateID: data.AggregateID,
			Status:      data.Status,
			CreatedAt:   data.CreatedAt,
			RetryCount:  data.RetryCount,
		}
		if data.Payload.Valid {
			event.Payload = data.Payload.String()
		}
		if data.ProcessedAt.Valid {
			processedAt := data.ProcessedAt.Time
			event.ProcessedAt = &processedAt
		}
		events = append(events, event)
	}

	return events, total, nil
}

// count runs the COUNT(*) form of q.
func count(ctx context.Context, txn *spanner.ReadOnlyTransaction, q *query.Builder) (int64, error) {
	iter := txn.Query(ctx, q.Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}
	var total int64
	if err := row.Column(0, &total); err != nil {
		return 0, err
	}
	return total, nil
}
