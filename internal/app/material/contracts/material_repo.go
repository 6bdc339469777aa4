package contracts

import (
	"context"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// MaterialRepository persists the material aggregate. Every write stores the
// aggregate and its outbox events in one commit.
type MaterialRepository interface {
	// GetByID loads a material. Returns domain.ErrMaterialNotFound.
	GetByID(ctx context.Context, materialID string) (*domain.Material, error)

	// Create inserts a new material.
	Create(ctx context.Context, material *domain.Material, events []*OutboxEvent) error

	// SaveModeration writes status changes if the stored version still equals
	// material.Version(). Returns domain.ErrVersionConflict otherwise.
	SaveModeration(ctx context.Context, material *domain.Material, events []*OutboxEvent) error

	// Delete removes a material together with its favorite relations.
	Delete(ctx context.Context, material *domain.Material, events []*OutboxEvent) error

	// IncrementViews adds one to the view counter.
	IncrementViews(ctx context.Context, materialID string) error
}
