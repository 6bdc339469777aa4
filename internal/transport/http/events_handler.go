package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_events"
)

// Event represents an outbox event in the HTTP response.
type Event struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// listEvents handles GET /api/v1/admin/events.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req := &list_events.Request{Limit: limit}
	if eventType := stringParam(r, "event_type"); eventType != "" {
		req.EventType = &eventType
	}
	if aggregateID := stringParam(r, "aggregate_id"); aggregateID != "" {
		req.AggregateID = &aggregateID
	}
	if status := stringParam(r, "status"); status != "" {
		req.Status = &status
	}

	events, total, err := s.deps.ListEvents.Execute(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]Event, 0, len(events))
	for _, e := range events {
		event := Event{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.Payload,
			Status:      e.Status,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
		if e.ProcessedAt != nil {
			processedAt := e.ProcessedAt.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		out = append(out, event)
	}

	render.JSON(w, r, ListEventsResponse{Events: out, TotalCount: total})
}
