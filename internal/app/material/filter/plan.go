// Package filter turns loosely typed listing parameters and a caller identity
// into an ordered, role-scoped filter plan. Stores execute plans; they never
// interpret raw request parameters themselves.
package filter

import (
	"strings"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// Kind tags a clause.
type Kind int

const (
	KindVisibility Kind = iota
	KindCategory
	KindKeyword
	KindStatus
	KindFavoritedBy
)

func (k Kind) String() string {
	switch k {
	case KindVisibility:
		return "visibility"
	case KindCategory:
		return "category"
	case KindKeyword:
		return "keyword"
	case KindStatus:
		return "status"
	case KindFavoritedBy:
		return "favorited_by"
	default:
		return "unknown"
	}
}

// Visibility is the moderation scope of a plan.
type Visibility int

const (
	// ApprovedOnly restricts results to public materials.
	ApprovedOnly Visibility = iota
	// OwnedBy restricts results to one owner, any status.
	OwnedBy
	// ApprovedOrOwnedBy allows public materials plus the user's own.
	ApprovedOrOwnedBy
	// AllStatuses applies no moderation restriction.
	AllStatuses
)

func (v Visibility) String() string {
	switch v {
	case ApprovedOnly:
		return "approved_only"
	case OwnedBy:
		return "owned_by"
	case ApprovedOrOwnedBy:
		return "approved_or_owned_by"
	case AllStatuses:
		return "all_statuses"
	default:
		return "unknown"
	}
}

// Clause is one conjunct of a plan. Value holds the category id, keyword,
// status, or user id depending on Kind. For visibility clauses, Value is the
// user id of OwnedBy and ApprovedOrOwnedBy scopes.
type Clause struct {
	Kind       Kind
	Visibility Visibility
	Value      string
}

// SortKey selects a result order.
type SortKey string

const (
	SortLatest  SortKey = "latest"
	SortOldest  SortKey = "oldest"
	SortPopular SortKey = "popular"
	SortName    SortKey = "name"
)

// ParseSort matches keys exactly. Anything else falls back to latest with
// ok set to false.
func ParseSort(raw string) (SortKey, bool) {
	switch SortKey(raw) {
	case SortLatest, SortOldest, SortPopular, SortName:
		return SortKey(raw), true
	default:
		return SortLatest, false
	}
}

// Field is a sortable material attribute.
type Field int

const (
	FieldCreatedAt Field = iota
	FieldViewCount
	FieldTitle
	FieldID
)

// Order is one sort term.
type Order struct {
	Field Field
	Desc  bool
}

// Orders returns the sort terms for the key. Every order ends with the
// material id so offset paging is deterministic.
func (s SortKey) Orders() []Order {
	var primary Order
	switch s {
	case SortOldest:
		primary = Order{Field: FieldCreatedAt}
	case SortPopular:
		primary = Order{Field: FieldViewCount, Desc: true}
	case SortName:
		primary = Order{Field: FieldTitle}
	default:
		primary = Order{Field: FieldCreatedAt, Desc: true}
	}
	return []Order{primary, {Field: FieldID}}
}

// Plan is an immutable filter specification. The visibility clause is always
// first and cannot be removed.
type Plan struct {
	clauses       []Clause
	sort          SortKey
	ignoredStatus string
	ignoredSort   string
}

// Clauses returns a copy of the clause list, visibility first.
func (p *Plan) Clauses() []Clause {
	out := make([]Clause, len(p.clauses))
	copy(out, p.clauses)
	return out
}

// Visibility returns the mandatory visibility clause.
func (p *Plan) Visibility() Clause {
	return p.clauses[0]
}

// Sort returns the effective sort key.
func (p *Plan) Sort() SortKey { return p.sort }

// IgnoredStatus returns a caller-supplied status value that was not applied,
// either because it was unrecognized or because the caller may not choose one.
func (p *Plan) IgnoredStatus() string { return p.ignoredStatus }

// IgnoredSort returns an unrecognized sort key that fell back to latest.
func (p *Plan) IgnoredSort() string { return p.ignoredSort }

// Has reports whether the plan contains a clause of the given kind.
func (p *Plan) Has(kind Kind) bool {
	_, ok := p.find(kind)
	return ok
}

// Value returns the value of the first clause of the given kind.
func (p *Plan) Value(kind Kind) (string, bool) {
	c, ok := p.find(kind)
	return c.Value, ok
}

func (p *Plan) find(kind Kind) (Clause, bool) {
	for _, c := range p.clauses {
		if c.Kind == kind {
			return c, true
		}
	}
	return Clause{}, false
}

// FavoriteLookup reports whether userID favorited materialID.
type FavoriteLookup func(materialID, userID string) bool

// Match evaluates the plan against one material. It is the in-memory
// counterpart of the SQL translation in the Spanner read model.
func (p *Plan) Match(m domain.MaterialRecord, favorited FavoriteLookup) bool {
	for _, c := range p.clauses {
		if !c.match(m, favorited) {
			return false
		}
	}
	return true
}

func (c Clause) match(m domain.MaterialRecord, favorited FavoriteLookup) bool {
	switch c.Kind {
	case KindVisibility:
		switch c.Visibility {
		case ApprovedOnly:
			return m.Status == domain.StatusApproved
		case OwnedBy:
			return m.OwnerID == c.Value
		case ApprovedOrOwnedBy:
			return m.Status == domain.StatusApproved || m.OwnerID == c.Value
		case AllStatuses:
			return true
		}
		return false
	case KindCategory:
		return m.CategoryID == c.Value
	case KindKeyword:
		kw := strings.ToLower(c.Value)
		return strings.Contains(strings.ToLower(m.Title), kw) ||
			strings.Contains(strings.ToLower(m.Description), kw)
	case KindStatus:
		return string(m.Status) == c.Value
	case KindFavoritedBy:
		return favorited != nil && favorited(m.ID, c.Value)
	}
	return false
}

// Less orders two materials according to the plan's sort key.
func (p *Plan) Less(a, b domain.MaterialRecord) bool {
	for _, o := range p.sort.Orders() {
		cmp := compare(a, b, o.Field)
		if cmp == 0 {
			continue
		}
		if o.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func compare(a, b domain.MaterialRecord, f Field) int {
	switch f {
	case FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case FieldViewCount:
		switch {
		case a.ViewCount < b.ViewCount:
			return -1
		case a.ViewCount > b.ViewCount:
			return 1
		}
		return 0
	case FieldTitle:
		return strings.Compare(a.Title, b.Title)
	default:
		return strings.Compare(a.ID, b.ID)
	}
}
