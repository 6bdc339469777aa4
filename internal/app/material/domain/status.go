package domain

import "strings"

// ModerationStatus is the review state of a material.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "PENDING"
	StatusApproved ModerationStatus = "APPROVED"
	StatusRejected ModerationStatus = "REJECTED"
)

// ParseStatus maps free-form input to a status. Matching ignores case and
// surrounding whitespace. ok is false for anything unrecognized; callers
// decide the fallback.
func ParseStatus(raw string) (ModerationStatus, bool) {
	switch ModerationStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

func (s ModerationStatus) String() string { return string(s) }

// IsPublic reports whether materials in this state are visible to everyone.
func (s ModerationStatus) IsPublic() bool { return s == StatusApproved }
