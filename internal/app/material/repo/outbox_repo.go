package repo

import (
	"encoding/json"

	"cloud.google.com/go/spanner"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_outbox"
)

// OutboxRepo builds outbox_events mutations so events commit together with
// the aggregate change that produced them.
type OutboxRepo struct {
	model *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{model: m_outbox.NewModel()}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	data := &m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     spanner.NullJSON{Value: rawJSON(event.Payload), Valid: event.Payload != ""},
		Status:      event.Status,
		RetryCount:  event.RetryCount,
	}
	return r.model.InsertMut(data)
}

// InsertMuts creates one mutation per event.
func (r *OutboxRepo) InsertMuts(events []*contracts.OutboxEvent) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, e := range events {
		muts = append(muts, r.InsertMut(e))
	}
	return muts
}

// rawJSON keeps an already serialized payload from being encoded twice.
func rawJSON(payload string) json.RawMessage {
	return json.RawMessage(payload)
}
