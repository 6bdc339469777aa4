// Package materialtest provides fixtures shared by the material query, use
// case and transport tests.
package materialtest

import (
	"time"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/repo/memory"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
)

// T0 is the fixed time seeded stores start at.
var T0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Seeded accounts.
var (
	Alice   = domain.User{ID: "u-alice", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser, Status: domain.AccountActive}
	Bob     = domain.User{ID: "u-bob", Username: "bob", Email: "bob@example.com", Role: domain.RoleUser, Status: domain.AccountActive}
	Root    = domain.User{ID: "u-root", Username: "root", Email: "root@example.com", Role: domain.RoleAdmin, Status: domain.AccountActive}
	Mallory = domain.User{ID: "u-mallory", Username: "mallory", Email: "mallory@example.com", Role: domain.RoleUser, Status: domain.AccountBlocked}
)

// Seeded categories.
var (
	LivingRoom = domain.Category{ID: "cat-living", Name: "Living room", SortOrder: 1}
	Kitchen    = domain.Category{ID: "cat-kitchen", Name: "Kitchen", SortOrder: 2}
)

// Caller returns the caller of a seeded account.
func Caller(u domain.User) domain.Caller {
	return domain.CallerFor(&u)
}

// NewStore returns a memory store with the seeded accounts and categories
// and a mock clock at T0.
func NewStore() (*memory.Store, *clock.MockClock) {
	clk := clock.NewMockClock(T0)
	s := memory.NewStore(clk)
	for _, c := range []domain.Category{LivingRoom, Kitchen} {
		s.AddCategory(c)
	}
	for _, u := range []domain.User{Alice, Bob, Root, Mallory} {
		s.AddUser(u)
	}
	return s, clk
}

// MaterialBuilder creates material records with a fluent interface.
type MaterialBuilder struct {
	rec domain.MaterialRecord
}

// NewMaterial starts an approved material owned by Alice in LivingRoom.
func NewMaterial(id string) *MaterialBuilder {
	return &MaterialBuilder{rec: domain.MaterialRecord{
		ID:          id,
		Title:       "Material " + id,
		Description: "A sample material",
		ImageURL:    "/files/materials/" + id + ".jpg",
		ThumbURL:    "/files/materials/" + id + "_thumb.jpg",
		CategoryID:  LivingRoom.ID,
		OwnerID:     Alice.ID,
		Tags:        []string{},
		License:     domain.DefaultLicense,
		Status:      domain.StatusApproved,
		CreatedAt:   T0,
		UpdatedAt:   T0,
	}}
}

func (b *MaterialBuilder) Title(title string) *MaterialBuilder {
	b.rec.Title = title
	return b
}

func (b *MaterialBuilder) Description(description string) *MaterialBuilder {
	b.rec.Description = description
	return b
}

func (b *MaterialBuilder) Owner(u domain.User) *MaterialBuilder {
	b.rec.OwnerID = u.ID
	return b
}

func (b *MaterialBuilder) Category(c domain.Category) *MaterialBuilder {
	b.rec.CategoryID = c.ID
	return b
}

func (b *MaterialBuilder) Status(s domain.ModerationStatus) *MaterialBuilder {
	b.rec.Status = s
	return b
}

// Rejected sets the status to REJECTED with reason.
func (b *MaterialBuilder) Rejected(reason string) *MaterialBuilder {
	b.rec.Status = domain.StatusRejected
	b.rec.RejectReason = reason
	return b
}

func (b *MaterialBuilder) Views(n int64) *MaterialBuilder {
	b.rec.ViewCount = n
	return b
}

// CreatedAfter offsets the creation time from T0.
func (b *MaterialBuilder) CreatedAfter(d time.Duration) *MaterialBuilder {
	b.rec.CreatedAt = T0.Add(d)
	b.rec.UpdatedAt = b.rec.CreatedAt
	return b
}

// Build returns the record.
func (b *MaterialBuilder) Build() domain.MaterialRecord {
	return b.rec
}

// In adds the record to s.
func (b *MaterialBuilder) In(s *memory.Store) domain.MaterialRecord {
	s.AddMaterial(b.rec)
	return b.rec
}
