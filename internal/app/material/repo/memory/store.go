// Package memory is an in-process implementation of the material store
// contracts. One mutex guards all tables so every write, including a favorite
// toggle and its counter adjustment, is atomic.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/filter"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
)

type favoriteKey struct {
	materialID string
	userID     string
}

// Store holds materials, favorites, categories, users and outbox events.
type Store struct {
	mu    sync.RWMutex
	clock clock.Clock

	materials  map[string]domain.MaterialRecord
	favorites  map[favoriteKey]time.Time
	categories map[string]domain.Category
	users      map[string]domain.User
	usernames  map[string]string
	events     []*contracts.OutboxEvent
}

var (
	_ contracts.MaterialRepository = (*Store)(nil)
	_ contracts.ReadModel          = (*Store)(nil)
	_ contracts.FavoriteStore      = (*Store)(nil)
	_ contracts.CategoryStore      = (*Store)(nil)
	_ contracts.UserStore          = (*Store)(nil)
	_ contracts.EventsReadModel    = (*Store)(nil)
)

// NewStore creates an empty Store.
func NewStore(clk clock.Clock) *Store {
	return &Store{
		clock:      clk,
		materials:  make(map[string]domain.MaterialRecord),
		favorites:  make(map[favoriteKey]time.Time),
		categories: make(map[string]domain.Category),
		users:      make(map[string]domain.User),
		usernames:  make(map[string]string),
	}
}

// AddCategory inserts or replaces a category.
func (s *Store) AddCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// AddUser inserts or replaces a user.
func (s *Store) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.users[u.ID]; ok {
		delete(s.usernames, old.Username)
	}
	s.users[u.ID] = u
	s.usernames[u.Username] = u.ID
}

// AddMaterial inserts or replaces a material record as-is.
func (s *Store) AddMaterial(rec domain.MaterialRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Tags = append([]string(nil), rec.Tags...)
	s.materials[rec.ID] = rec
}

// FavoriteCount returns the stored counter and the number of relations for a
// material. Both are read under the same lock.
func (s *Store) FavoriteCount(materialID string) (counter int64, relations int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k := range s.favorites {
		if k.materialID == materialID {
			relations++
		}
	}
	return s.materials[materialID].FavoriteCount, relations
}

// --- MaterialRepository ---

func (s *Store) GetByID(ctx context.Context, materialID string) (*domain.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.materials[materialID]
	if !ok {
		return nil, domain.ErrMaterialNotFound
	}
	return domain.ReconstructMaterial(rec), nil
}

func (s *Store) Create(ctx context.Context, material *domain.Material, events []*contracts.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.materials[material.ID()]; exists {
		return fmt.Errorf("material %s already exists", material.ID())
	}
	s.materials[material.ID()] = material.Record()
	s.appendEvents(events)
	return nil
}

func (s *Store) SaveModeration(ctx context.Context, material *domain.Material, events []*contracts.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.materials[material.ID()]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	if rec.Version != material.Version() {
		return fmt.Errorf("%w: expected version %d, got %d", domain.ErrVersionConflict, material.Version(), rec.Version)
	}
	if !material.Changes().HasChanges() {
		return nil
	}

	rec.Status = material.Status()
	rec.RejectReason = material.RejectReason()
	rec.Version++
	rec.UpdatedAt = s.clock.Now()
	s.materials[rec.ID] = rec
	s.appendEvents(events)
	return nil
}

func (s *Store) Delete(ctx context.Context, material *domain.Material, events []*contracts.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.materials[material.ID()]; !ok {
		return domain.ErrMaterialNotFound
	}
	delete(s.materials, material.ID())
	for k := range s.favorites {
		if k.materialID == material.ID() {
			delete(s.favorites, k)
		}
	}
	s.appendEvents(events)
	return nil
}

func (s *Store) IncrementViews(ctx context.Context, materialID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.materials[materialID]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	rec.ViewCount++
	s.materials[materialID] = rec
	return nil
}

func (s *Store) appendEvents(events []*contracts.OutboxEvent) {
	now := s.clock.Now()
	for _, e := range events {
		stored := *e
		stored.CreatedAt = now
		s.events = append(s.events, &stored)
	}
}

// --- ReadModel ---

func (s *Store) GetMaterialByID(ctx context.Context, materialID string) (*contracts.MaterialDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.materials[materialID]
	if !ok {
		return nil, domain.ErrMaterialNotFound
	}
	return s.toDTO(rec), nil
}

func (s *Store) ListMaterials(ctx context.Context, plan *filter.Plan, page paging.Request) ([]*contracts.MaterialDTO, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.MaterialRecord, 0)
	for _, rec := range s.materials {
		if plan.Match(rec, s.isFavoritedLocked) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return plan.Less(matched[i], matched[j]) })

	total := int64(len(matched))
	start := page.Offset()
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}

	items := make([]*contracts.MaterialDTO, 0, end-start)
	for _, rec := range matched[start:end] {
		items = append(items, s.toDTO(rec))
	}
	return items, total, nil
}

func (s *Store) toDTO(rec domain.MaterialRecord) *contracts.MaterialDTO {
	dto := &contracts.MaterialDTO{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		ImageURL:      rec.ImageURL,
		ThumbURL:      rec.ThumbURL,
		CategoryID:    rec.CategoryID,
		OwnerID:       rec.OwnerID,
		ViewCount:     rec.ViewCount,
		FavoriteCount: rec.FavoriteCount,
		Tags:          append([]string{}, rec.Tags...),
		License:       rec.License,
		Status:        rec.Status,
		RejectReason:  rec.RejectReason,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	if c, ok := s.categories[rec.CategoryID]; ok {
		dto.CategoryName = c.Name
	}
	if u, ok := s.users[rec.OwnerID]; ok {
		dto.OwnerUsername = u.Username
		dto.OwnerAvatarURL = u.AvatarURL
	}
	return dto
}

// --- FavoriteStore ---

func (s *Store) Toggle(ctx context.Context, materialID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.materials[materialID]
	if !ok {
		return false, domain.ErrMaterialNotFound
	}

	key := favoriteKey{materialID: materialID, userID: userID}
	if _, exists := s.favorites[key]; exists {
		delete(s.favorites, key)
		if rec.FavoriteCount > 0 {
			rec.FavoriteCount--
		}
		s.materials[materialID] = rec
		return false, nil
	}

	s.favorites[key] = s.clock.Now()
	rec.FavoriteCount++
	s.materials[materialID] = rec
	return true, nil
}

func (s *Store) IsFavorited(ctx context.Context, materialID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isFavoritedLocked(materialID, userID), nil
}

func (s *Store) FavoritedAmong(ctx context.Context, userID string, materialIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool)
	for _, id := range materialIDs {
		if s.isFavoritedLocked(id, userID) {
			out[id] = true
		}
	}
	return out, nil
}

func (s *Store) isFavoritedLocked(materialID, userID string) bool {
	_, ok := s.favorites[favoriteKey{materialID: materialID, userID: userID}]
	return ok
}

// --- CategoryStore / UserStore ---

func (s *Store) FindByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernames[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

// --- EventsReadModel ---

func (s *Store) ListEvents(ctx context.Context, f *contracts.EventFilter) ([]*contracts.OutboxEvent, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*contracts.OutboxEvent, 0)
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if f.EventType != nil && e.EventType != *f.EventType {
			continue
		}
		if f.AggregateID != nil && e.AggregateID != *f.AggregateID {
			continue
		}
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		copied := *e
		matched = append(matched, &copied)
	}

	total := int64(len(matched))
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}
