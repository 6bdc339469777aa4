// Package projection turns stored material rows into the views returned to a
// caller. It is the only place that decides which fields a caller may see.
package projection

import (
	"context"
	"time"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Summary is the list representation of a material.
type Summary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"imageUrl"`
	ThumbURL       string    `json:"thumbUrl"`
	CategoryID     string    `json:"categoryId"`
	CategoryName   string    `json:"categoryName"`
	OwnerID        string    `json:"ownerId"`
	OwnerUsername  string    `json:"ownerUsername"`
	OwnerAvatarURL string    `json:"ownerAvatarUrl,omitempty"`
	ViewCount      int64     `json:"viewCount"`
	FavoriteCount  int64     `json:"favoriteCount"`
	Status         string    `json:"status"`
	RejectReason   string    `json:"rejectReason,omitempty"`
	IsFavorited    bool      `json:"isFavorited"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Detail is the single-item representation of a material.
type Detail struct {
	Summary
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	License     string    `json:"license"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Shaper builds caller-specific views.
type Shaper struct {
	favorites contracts.FavoriteStore
	logger    *logger.Logger
}

// NewShaper creates a new Shaper.
func NewShaper(favorites contracts.FavoriteStore, log *logger.Logger) *Shaper {
	return &Shaper{
		favorites: favorites,
		logger:    log.With("component", "projection"),
	}
}

// Summaries shapes a page of rows with one batch favorite lookup.
func (s *Shaper) Summaries(ctx context.Context, caller domain.Caller, rows []*contracts.MaterialDTO) []*Summary {
	favorited := s.favoritedAmong(ctx, caller, rows)

	out := make([]*Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, summary(caller, row, favorited[row.ID]))
	}
	return out
}

// Detail shapes one row.
func (s *Shaper) Detail(ctx context.Context, caller domain.Caller, row *contracts.MaterialDTO) *Detail {
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Detail{
		Summary:     *summary(caller, row, s.isFavorited(ctx, caller, row.ID)),
		Description: row.Description,
		Tags:        tags,
		License:     row.License,
		UpdatedAt:   row.UpdatedAt,
	}
}

func summary(caller domain.Caller, row *contracts.MaterialDTO, favorited bool) *Summary {
	v := &Summary{
		ID:             row.ID,
		Title:          row.Title,
		ImageURL:       row.ImageURL,
		ThumbURL:       row.ThumbURL,
		CategoryID:     row.CategoryID,
		CategoryName:   row.CategoryName,
		OwnerID:        row.OwnerID,
		OwnerUsername:  row.OwnerUsername,
		OwnerAvatarURL: row.OwnerAvatarURL,
		ViewCount:      row.ViewCount,
		FavoriteCount:  row.FavoriteCount,
		Status:         string(row.Status),
		IsFavorited:    favorited,
		CreatedAt:      row.CreatedAt,
	}
	if row.Status == domain.StatusRejected && domain.MaySeeRejectReason(caller, row.OwnerID) {
		v.RejectReason = row.RejectReason
	}
	return v
}

// isFavorited never fails the request; a broken lookup reads as false.
func (s *Shaper) isFavorited(ctx context.Context, caller domain.Caller, materialID string) bool {
	if !caller.IsAuthenticated() {
		return false
	}
	ok, err := s.favorites.IsFavorited(ctx, materialID, caller.UserID)
	if err != nil {
		s.logger.Warn("favorite lookup failed", "material_id", materialID, "user_id", caller.UserID, "error", err)
		return false
	}
	return ok
}

func (s *Shaper) favoritedAmong(ctx context.Context, caller domain.Caller, rows []*contracts.MaterialDTO) map[string]bool {
	if !caller.IsAuthenticated() || len(rows) == 0 {
		return map[string]bool{}
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	favorited, err := s.favorites.FavoritedAmong(ctx, caller.UserID, ids)
	if err != nil {
		s.logger.Warn("batch favorite lookup failed", "user_id", caller.UserID, "count", len(ids), "error", err)
		return map[string]bool{}
	}
	return favorited
}
