// Package committer collects Spanner mutations from several sources and
// applies them atomically.
//
// The usual flow in a use case is:
//
//	// 1. Load the aggregate
//	material, err := repo.GetByID(ctx, materialID)
//
//	// 2. Run domain logic
//	if err := material.Approve(now); err != nil {
//	    return err
//	}
//
//	// 3. Collect mutations (repositories never apply them)
//	plan := committer.NewPlan()
//	plan.Add(repo.UpdateMut(material))
//	for _, event := range material.DomainEvents() {
//	    plan.Add(outboxRepo.InsertMut(outboxRepo.EnrichEvent(event, payload)))
//	}
//
//	// 4. Apply everything in one commit
//	return committer.ApplyWithVersionCheck(ctx, committer.VersionedRow{...}, material.Version(), plan)
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrVersionConflict is returned when the stored version differs from the
// version the aggregate was loaded with.
var ErrVersionConflict = errors.New("optimistic lock conflict")

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionedRow identifies the row whose "version" column guards a commit.
type VersionedRow struct {
	Table string
	Key   spanner.Key
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyWithReadWriteTransaction runs fn inside a read-write transaction.
// Spanner retries fn when the transaction is aborted, so fn must not keep
// side effects outside the transaction.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	if _, err := c.client.ReadWriteTransaction(ctx, fn); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck applies the plan only if row still carries
// expectedVersion. Returns ErrVersionConflict otherwise.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, row VersionedRow, expectedVersion int64, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		r, err := txn.ReadRow(ctx, row.Table, row.Key, []string{"version"})
		if err != nil {
			return fmt.Errorf("failed to read %s version: %w", row.Table, err)
		}

		var currentVersion int64
		if err := r.Column(0, &currentVersion); err != nil {
			return fmt.Errorf("failed to parse version: %w", err)
		}

		if currentVersion != expectedVersion {
			return fmt.Errorf("%w: expected version %d, got %d", ErrVersionConflict, expectedVersion, currentVersion)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}
	return nil
}
