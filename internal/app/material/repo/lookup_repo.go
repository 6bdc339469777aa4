package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_category"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_user"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/query"
)

// CategoryRepo reads categories.
type CategoryRepo struct {
	client *spanner.Client
	model  *m_category.Model
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(client *spanner.Client) *CategoryRepo {
	return &CategoryRepo{client: client, model: m_category.NewModel()}
}

var _ contracts.CategoryStore = (*CategoryRepo)(nil)

func (r *CategoryRepo) FindByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	row, err := r.client.Single().ReadRow(ctx, m_category.TableName, spanner.Key{categoryID}, m_category.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to read category: %w", err)
	}

	var data m_category.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	return categoryToDomain(&data), nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	stmt := query.From(m_category.TableName).
		Select(m_category.Columns...).
		OrderBy(m_category.SortOrder, query.Asc).
		ThenBy(m_category.Name, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*domain.Category, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}
		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		out = append(out, categoryToDomain(&data))
	}
	return out, nil
}

// Save upserts a category. Used for seeding.
func (r *CategoryRepo) Save(ctx context.Context, c domain.Category) error {
	mut := r.model.InsertMut(&m_category.Data{
		CategoryID:  c.ID,
		Name:        c.Name,
		Description: nullString(c.Description),
		IconURL:     nullString(c.IconURL),
		Color:       nullString(c.Color),
		SortOrder:   c.SortOrder,
	})
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mut}); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func categoryToDomain(data *m_category.Data) *domain.Category {
	return &domain.Category{
		ID:          data.CategoryID,
		Name:        data.Name,
		Description: data.Description.StringVal,
		IconURL:     data.IconURL.StringVal,
		Color:       data.Color.StringVal,
		SortOrder:   data.SortOrder,
		CreatedAt:   data.CreatedAt,
	}
}

// UserRepo reads accounts.
type UserRepo struct {
	client *spanner.Client
	model  *m_user.Model
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(client *spanner.Client) *UserRepo {
	return &UserRepo{client: client, model: m_user.NewModel()}
}

var _ contracts.UserStore = (*UserRepo)(nil)

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	stmt := query.From(m_user.TableName).
		Select(m_user.Columns...).
		Where(query.Eq(m_user.Username, username)).
		Limit(1).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	var data m_user.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &domain.User{
		ID:        data.UserID,
		Username:  data.Username,
		Email:     data.Email,
		AvatarURL: data.AvatarURL.StringVal,
		Role:      domain.Role(data.Role),
		Status:    domain.AccountStatus(data.Status),
		CreatedAt: data.CreatedAt,
	}, nil
}

// Save upserts a user. Used for seeding.
func (r *UserRepo) Save(ctx context.Context, u domain.User) error {
	mut := r.model.InsertMut(&m_user.Data{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: nullString(u.AvatarURL),
		Role:      string(u.Role),
		Status:    string(u.Status),
	})
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mut}); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
