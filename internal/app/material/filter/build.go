package filter

import (
	"strings"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// Input carries raw listing parameters. Only Caller and the scope flags are
// trusted; everything else is normalized.
type Input struct {
	Caller     domain.Caller
	CategoryID string
	StatusRaw  string
	Keyword    string
	SortKey    string

	// OwnerScope restricts the listing to the caller's own materials.
	OwnerScope bool
	// FavoritesOnly restricts the listing to materials the caller favorited.
	FavoritesOnly bool
	// AllStatuses lifts the approved-only default for admins when no status
	// is chosen. Other callers ignore it.
	AllStatuses bool
}

// Build resolves the effective visibility for the caller and assembles the
// plan. Unknown status and sort values are ignored, never rejected. Scoped
// listings require an authenticated caller.
func Build(in Input) (*Plan, error) {
	if (in.OwnerScope || in.FavoritesOnly) && !in.Caller.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	var (
		status       domain.ModerationStatus
		statusChosen bool
		ignored      string
	)
	if raw := strings.TrimSpace(in.StatusRaw); raw != "" {
		parsed, ok := domain.ParseStatus(raw)
		if ok && domain.MayChooseStatus(in.Caller, in.OwnerScope) {
			status, statusChosen = parsed, true
		} else {
			ignored = in.StatusRaw
		}
	}

	p := &Plan{
		clauses:       []Clause{visibilityFor(in, statusChosen)},
		ignoredStatus: ignored,
	}

	if category := strings.TrimSpace(in.CategoryID); category != "" {
		p.clauses = append(p.clauses, Clause{Kind: KindCategory, Value: category})
	}

	if keyword := strings.TrimSpace(in.Keyword); keyword != "" {
		p.clauses = append(p.clauses, Clause{Kind: KindKeyword, Value: keyword})
	}

	if statusChosen {
		p.clauses = append(p.clauses, Clause{Kind: KindStatus, Value: string(status)})
	}

	if in.FavoritesOnly {
		p.clauses = append(p.clauses, Clause{Kind: KindFavoritedBy, Value: in.Caller.UserID})
	}

	sort, ok := ParseSort(in.SortKey)
	if !ok && in.SortKey != "" {
		p.ignoredSort = in.SortKey
	}
	p.sort = sort

	return p, nil
}

// visibilityFor picks the moderation scope. Admins see every status only when
// they pick one or ask for all; otherwise they browse like everyone else.
func visibilityFor(in Input, statusChosen bool) Clause {
	switch {
	case in.OwnerScope:
		return Clause{Kind: KindVisibility, Visibility: OwnedBy, Value: in.Caller.UserID}
	case in.Caller.IsAdmin() && (statusChosen || in.AllStatuses || in.FavoritesOnly):
		return Clause{Kind: KindVisibility, Visibility: AllStatuses}
	case in.FavoritesOnly:
		return Clause{Kind: KindVisibility, Visibility: ApprovedOrOwnedBy, Value: in.Caller.UserID}
	default:
		return Clause{Kind: KindVisibility, Visibility: ApprovedOnly}
	}
}
