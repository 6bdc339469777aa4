package moderate_material

import (
	"context"
	"fmt"
	"time"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Action is a moderation decision.
type Action string

const (
	Approve Action = "approve"
	Reject  Action = "reject"
)

// Request contains the moderation decision.
type Request struct {
	MaterialID string
	Caller     domain.Caller
	Action     Action
	Reason     string // required for Reject
}

// Result is the moderation outcome.
type Result struct {
	MaterialID   string    `json:"materialId"`
	Status       string    `json:"status"`
	RejectReason string    `json:"rejectReason,omitempty"`
	ModeratedAt  time.Time `json:"moderatedAt"`
}

// Interactor handles the moderate material use case.
type Interactor struct {
	repo   contracts.MaterialRepository
	clock  clock.Clock
	logger *logger.Logger
}

// NewInteractor creates a new moderate material interactor.
func NewInteractor(repo contracts.MaterialRepository, clk clock.Clock, log *logger.Logger) *Interactor {
	return &Interactor{
		repo:   repo,
		clock:  clk,
		logger: log.With("component", "moderate_material"),
	}
}

// Execute approves or rejects a material. The write is guarded by the
// material version read in step 2.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	// 1. Only administrators moderate
	if !req.Caller.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if !req.Caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	// 2. Load aggregate
	material, err := i.repo.GetByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}

	// 3. Call domain method
	now := i.clock.Now()
	switch req.Action {
	case Approve:
		err = material.Approve(now)
	case Reject:
		err = material.Reject(req.Reason, now)
	default:
		return nil, fmt.Errorf("unknown moderation action %q", req.Action)
	}
	if err != nil {
		return nil, err
	}

	// 4. Persist with outbox events
	events, err := contracts.EnrichEvents(material.DomainEvents())
	if err != nil {
		return nil, err
	}
	if err := i.repo.SaveModeration(ctx, material, events); err != nil {
		return nil, fmt.Errorf("failed to save moderation: %w", err)
	}

	// Clear events only after successful commit
	material.ClearEvents()

	i.logger.Info("material moderated",
		"material_id", material.ID(),
		"status", material.Status(),
		"admin_id", req.Caller.UserID,
	)

	return &Result{
		MaterialID:   material.ID(),
		Status:       string(material.Status()),
		RejectReason: material.RejectReason(),
		ModeratedAt:  now,
	}, nil
}
