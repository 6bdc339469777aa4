package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/filter"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/query"
)

// materialRow is one joined row of the listing query.
type materialRow struct {
	MaterialID     string             `spanner:"material_id"`
	Title          string             `spanner:"title"`
	Description    string             `spanner:"description"`
	ImageURL       string             `spanner:"image_url"`
	ThumbURL       string             `spanner:"thumb_url"`
	CategoryID     string             `spanner:"category_id"`
	CategoryName   string             `spanner:"category_name"`
	OwnerID        string             `spanner:"owner_id"`
	OwnerUsername  string             `spanner:"owner_username"`
	OwnerAvatarURL spanner.NullString `spanner:"owner_avatar_url"`
	ViewCount      int64              `spanner:"view_count"`
	FavoriteCount  int64              `spanner:"favorite_count"`
	Tags           []string           `spanner:"tags"`
	License        string             `spanner:"license"`
	Status         string             `spanner:"status"`
	RejectReason   spanner.NullString `spanner:"reject_reason"`
	CreatedAt      time.Time          `spanner:"created_at"`
	UpdatedAt      time.Time          `spanner:"updated_at"`
}

var materialSelect = []string{
	"m.material_id",
	"m.title",
	"m.description",
	"m.image_url",
	"m.thumb_url",
	"m.category_id",
	"c.name AS category_name",
	"m.owner_id",
	"u.username AS owner_username",
	"u.avatar_url AS owner_avatar_url",
	"m.view_count",
	"m.favorite_count",
	"m.tags",
	"m.license",
	"m.status",
	"m.reject_reason",
	"m.created_at",
	"m.updated_at",
}

var orderColumns = map[filter.Field]string{
	filter.FieldCreatedAt: "m.created_at",
	filter.FieldViewCount: "m.view_count",
	filter.FieldTitle:     "m.title",
	filter.FieldID:        "m.material_id",
}

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) *ReadModelImpl {
	return &ReadModelImpl{client: client}
}

var _ contracts.ReadModel = (*ReadModelImpl)(nil)

// GetMaterialByID retrieves one joined material row.
func (rm *ReadModelImpl) GetMaterialByID(ctx context.Context, materialID string) (*contracts.MaterialDTO, error) {
	stmt := baseQuery().Where(query.Eq("m.material_id", materialID)).Limit(1).Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrMaterialNotFound
	}
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to read material: %w", err)
	}

	var data materialRow
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse material: %w", err)
	}
	return rowToDTO(&data), nil
}

// ListMaterials executes plan inside one read-only transaction so the page
// and the total come from the same snapshot.
func (rm *ReadModelImpl) ListMaterials(ctx context.Context, plan *filter.Plan, page paging.Request) ([]*contracts.MaterialDTO, int64, error) {
	q := listQuery(plan)

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := count(ctx, txn, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count materials: %w", err)
	}
	if total == 0 || page.Offset() < 0 || page.Offset() >= total {
		return []*contracts.MaterialDTO{}, total, nil
	}

	q = orderedQuery(q, plan.Sort()).Limit(page.Limit()).Offset(page.Offset())

	iter := txn.Query(ctx, q.Build())
	defer iter.Stop()

	items := make([]*contracts.MaterialDTO, 0, page.Limit())
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate materials: %w", err)
		}

		var data materialRow
		if err := row.ToStruct(&data); err != nil {
			return nil, 0, fmt.Errorf("failed to parse material: %w", err)
		}
		items = append(items, rowToDTO(&data))
	}

	return items, total, nil
}

func baseQuery() *query.Builder {
	return query.From("materials m").
		Select(materialSelect...).
		Join("categories c", "c.category_id = m.category_id").
		Join("users u", "u.user_id = m.owner_id")
}

// listQuery translates every clause of plan into a WHERE condition.
func listQuery(plan *filter.Plan) *query.Builder {
	q := baseQuery()
	for _, c := range plan.Clauses() {
		q = q.Where(clauseCondition(c))
	}
	return q
}

func clauseCondition(c filter.Clause) query.Condition {
	switch c.Kind {
	case filter.KindVisibility:
		switch c.Visibility {
		case filter.ApprovedOnly:
			return query.Eq("m.status", string(domain.StatusApproved))
		case filter.OwnedBy:
			return query.Eq("m.owner_id", c.Value)
		case filter.ApprovedOrOwnedBy:
			return query.AnyOf(
				query.Eq("m.status", string(domain.StatusApproved)),
				query.Eq("m.owner_id", c.Value),
			)
		case filter.AllStatuses:
			return nil
		}
		// Unknown scopes match nothing.
		return query.AnyOf()
	case filter.KindCategory:
		return query.Eq("m.category_id", c.Value)
	case filter.KindKeyword:
		return query.AnyOf(
			query.ContainsFold("m.title", c.Value),
			query.ContainsFold("m.description", c.Value),
		)
	case filter.KindStatus:
		return query.Eq("m.status", c.Value)
	case filter.KindFavoritedBy:
		return query.InSelect("m.material_id", m_favorite.TableName, m_favorite.MaterialID,
			query.Eq(m_favorite.UserID, c.Value))
	}
	return query.AnyOf()
}

func orderedQuery(q *query.Builder, sort filter.SortKey) *query.Builder {
	for i, o := range sort.Orders() {
		dir := query.Asc
		if o.Desc {
			dir = query.Desc
		}
		if i == 0 {
			q = q.OrderBy(orderColumns[o.Field], dir)
		} else {
			q = q.ThenBy(orderColumns[o.Field], dir)
		}
	}
	return q
}

func rowToDTO(data *materialRow) *contracts.MaterialDTO {
	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}
	return &contracts.MaterialDTO{
		ID:             data.MaterialID,
		Title:          data.Title,
		Description:    data.Description,
		ImageURL:       data.ImageURL,
		ThumbURL:       data.ThumbURL,
		CategoryID:     data.CategoryID,
		CategoryName:   data.CategoryName,
		OwnerID:        data.OwnerID,
		OwnerUsername:  data.OwnerUsername,
		OwnerAvatarURL: data.OwnerAvatarURL.StringVal,
		ViewCount:      data.ViewCount,
		FavoriteCount:  data.FavoriteCount,
		Tags:           tags,
		License:        data.License,
		Status:         domain.ModerationStatus(data.Status),
		RejectReason:   data.RejectReason.StringVal,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
