package delete_material

import (
	"context"
	"fmt"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Request contains the material ID to delete.
type Request struct {
	MaterialID string
	Caller     domain.Caller
}

// Interactor handles the delete material use case.
type Interactor struct {
	repo   contracts.MaterialRepository
	blobs  contracts.BlobStorage
	clock  clock.Clock
	logger *logger.Logger
}

// NewInteractor creates a new delete material interactor.
func NewInteractor(repo contracts.MaterialRepository, blobs contracts.BlobStorage, clk clock.Clock, log *logger.Logger) *Interactor {
	return &Interactor{
		repo:   repo,
		blobs:  blobs,
		clock:  clk,
		logger: log.With("component", "delete_material"),
	}
}

// Execute removes a material with its favorites. Only the owner or an
// administrator may delete; others get not found for hidden materials and
// forbidden for public ones.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Require an identity
	if !req.Caller.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	// 2. Load aggregate and check permission
	material, err := i.repo.GetByID(ctx, req.MaterialID)
	if err != nil {
		return err
	}
	if !material.VisibleTo(req.Caller) {
		return domain.ErrMaterialNotFound
	}
	if !domain.MayDelete(req.Caller, material.OwnerID()) {
		return domain.ErrForbidden
	}

	// 3. Call domain method
	material.MarkDeleted(req.Caller.UserID, i.clock.Now())

	// 4. Persist with outbox events
	events, err := contracts.EnrichEvents(material.DomainEvents())
	if err != nil {
		return err
	}
	if err := i.repo.Delete(ctx, material, events); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	material.ClearEvents()

	// 5. Drop files; the row is already gone so failures are only logged
	for _, url := range uniqueURLs(material.ImageURL(), material.ThumbURL()) {
		if err := i.blobs.Remove(ctx, url); err != nil {
			i.logger.Warn("blob removal failed", "material_id", material.ID(), "url", url, "error", err)
		}
	}

	i.logger.Info("material deleted", "material_id", material.ID(), "actor_id", req.Caller.UserID)
	return nil
}

func uniqueURLs(urls ...string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
