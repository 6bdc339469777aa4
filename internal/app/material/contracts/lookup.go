package contracts

import (
	"context"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// CategoryStore resolves categories.
type CategoryStore interface {
	// FindByID returns domain.ErrCategoryNotFound when absent.
	FindByID(ctx context.Context, categoryID string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

// UserStore resolves accounts.
type UserStore interface {
	// FindByUsername returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
