package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/committer"
)

// MaterialRepo implements MaterialRepository for Spanner.
type MaterialRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_material.Model
	outbox    *OutboxRepo
}

// NewMaterialRepo creates a new MaterialRepo.
func NewMaterialRepo(client *spanner.Client, comm *committer.Committer, outbox *OutboxRepo) *MaterialRepo {
	return &MaterialRepo{
		client:    client,
		committer: comm,
		model:     m_material.NewModel(),
		outbox:    outbox,
	}
}

var _ contracts.MaterialRepository = (*MaterialRepo)(nil)

// GetByID retrieves a material by ID, reconstructing the domain aggregate.
func (r *MaterialRepo) GetByID(ctx context.Context, materialID string) (*domain.Material, error) {
	row, err := r.client.Single().ReadRow(ctx, m_material.TableName, spanner.Key{materialID}, m_material.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to read material: %w", err)
	}

	var data m_material.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse material: %w", err)
	}

	return domain.ReconstructMaterial(dataToRecord(&data)), nil
}

// Create inserts the material and its events in one commit.
func (r *MaterialRepo) Create(ctx context.Context, material *domain.Material, events []*contracts.OutboxEvent) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(recordToData(material.Record())))
	plan.AddMultiple(r.outbox.InsertMuts(events))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

// UpdateMut creates a mutation for the dirty moderation fields.
func (r *MaterialRepo) UpdateMut(material *domain.Material) *spanner.Mutation {
	changes := material.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldStatus) {
		updates[m_material.Status] = string(material.Status())
	}
	if changes.Dirty(domain.FieldRejectReason) {
		updates[m_material.RejectReason] = nullString(material.RejectReason())
	}
	if len(updates) == 0 {
		return nil
	}

	updates[m_material.Version] = material.Version() + 1
	return r.model.UpdateMut(material.ID(), updates)
}

// SaveModeration applies the status change guarded by the version column.
func (r *MaterialRepo) SaveModeration(ctx context.Context, material *domain.Material, events []*contracts.OutboxEvent) error {
	plan := committer.NewPlan()
	plan.Add(r.UpdateMut(material))
	if plan.IsEmpty() {
		return nil
	}
	plan.AddMultiple(r.outbox.InsertMuts(events))

	row := committer.VersionedRow{Table: m_material.TableName, Key: spanner.Key{material.ID()}}
	err := r.committer.ApplyWithVersionCheck(ctx, row, material.Version(), plan)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, committer.ErrVersionConflict):
		return fmt.Errorf("%w: %v", domain.ErrVersionConflict, err)
	case spanner.ErrCode(err) == codes.NotFound:
		return domain.ErrMaterialNotFound
	default:
		return fmt.Errorf("failed to save material: %w", err)
	}
}

// Delete removes the material. Interleaved favorites go with it.
func (r *MaterialRepo) Delete(ctx context.Context, material *domain.Material, events []*contracts.OutboxEvent) error {
	plan := committer.NewPlan()
	plan.Add(r.model.DeleteMut(material.ID()))
	plan.AddMultiple(r.outbox.InsertMuts(events))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

// IncrementViews bumps the counter with a single DML statement.
func (r *MaterialRepo) IncrementViews(ctx context.Context, materialID string) error {
	stmt := spanner.Statement{
		SQL:    "UPDATE materials SET view_count = view_count + 1 WHERE material_id = @id",
		Params: map[string]interface{}{"id": materialID},
	}

	var updated int64
	err := r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		updated = n
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if updated == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

func recordToData(rec domain.MaterialRecord) *m_material.Data {
	return &m_material.Data{
		MaterialID:    rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		ImageURL:      rec.ImageURL,
		ThumbURL:      rec.ThumbURL,
		CategoryID:    rec.CategoryID,
		OwnerID:       rec.OwnerID,
		ViewCount:     rec.ViewCount,
		FavoriteCount: rec.FavoriteCount,
		Tags:          rec.Tags,
		License:       rec.License,
		Status:        string(rec.Status),
		RejectReason:  nullString(rec.RejectReason),
		Version:       rec.Version,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func dataToRecord(data *m_material.Data) domain.MaterialRecord {
	return domain.MaterialRecord{
		ID:            data.MaterialID,
		Title:         data.Title,
		Description:   data.Description,
		ImageURL:      data.ImageURL,
		ThumbURL:      data.ThumbURL,
		CategoryID:    data.CategoryID,
		OwnerID:       data.OwnerID,
		ViewCount:     data.ViewCount,
		FavoriteCount: data.FavoriteCount,
		Tags:          data.Tags,
		License:       data.License,
		Status:        domain.ModerationStatus(data.Status),
		RejectReason:  data.RejectReason.StringVal,
		Version:       data.Version,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}
