package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field names for change tracking
const (
	FieldStatus       = "status"
	FieldRejectReason = "reject_reason"
)

const (
	DefaultLicense = "own"

	minTitleLen       = 3
	maxTitleLen       = 100
	minDescriptionLen = 3
	maxDescriptionLen = 1000
	maxTags           = 20
	MaxRejectReason   = 500
)

// NewMaterialParams carries the fields of a fresh upload.
type NewMaterialParams struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	ThumbURL    string
	CategoryID  string
	OwnerID     string
	Tags        []string
	License     string
}

// MaterialRecord is the persisted state of a material.
type MaterialRecord struct {
	ID            string
	Title         string
	Description   string
	ImageURL      string
	ThumbURL      string
	CategoryID    string
	OwnerID       string
	ViewCount     int64
	FavoriteCount int64
	Tags          []string
	License       string
	Status        ModerationStatus
	RejectReason  string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Material is the aggregate root for a user-submitted media item.
// View and favorite counters are maintained by the store and are read-only here.
type Material struct {
	id            string
	title         string
	description   string
	imageURL      string
	thumbURL      string
	categoryID    string
	ownerID       string
	viewCount     int64
	favoriteCount int64
	tags          []string
	license       string
	status        ModerationStatus
	rejectReason  string
	version       int64
	createdAt     time.Time
	updatedAt     time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// ValidateTitle checks the trimmed title length.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < minTitleLen || n > maxTitleLen {
		return ErrInvalidTitle
	}
	return nil
}

// ValidateDescription checks an optional description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}
	n := utf8.RuneCountInString(description)
	if n < minDescriptionLen || n > maxDescriptionLen {
		return ErrInvalidDescription
	}
	return nil
}

// NormalizeTags trims tags, drops blanks and duplicates, keeping order.
func NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) > maxTags {
		return nil, ErrTooManyTags
	}
	return out, nil
}

// NewMaterial creates a material awaiting review.
func NewMaterial(p NewMaterialParams, now time.Time) (*Material, error) {
	if err := ValidateTitle(p.Title); err != nil {
		return nil, err
	}
	if err := ValidateDescription(p.Description); err != nil {
		return nil, err
	}
	if p.CategoryID == "" {
		return nil, ErrMissingCategory
	}
	if p.OwnerID == "" {
		return nil, ErrMissingOwner
	}
	tags, err := NormalizeTags(p.Tags)
	if err != nil {
		return nil, err
	}
	license := strings.TrimSpace(p.License)
	if license == "" {
		license = DefaultLicense
	}

	m := &Material{
		id:          p.ID,
		title:       strings.TrimSpace(p.Title),
		description: strings.TrimSpace(p.Description),
		imageURL:    p.ImageURL,
		thumbURL:    p.ThumbURL,
		categoryID:  p.CategoryID,
		ownerID:     p.OwnerID,
		tags:        tags,
		license:     license,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}

	m.recordEvent(&MaterialUploadedEvent{
		MaterialID: m.id,
		Title:      m.title,
		CategoryID: m.categoryID,
		OwnerID:    m.ownerID,
		Status:     string(m.status),
		UploadedAt: now,
	})

	return m, nil
}

// ReconstructMaterial reconstitutes a Material from storage.
func ReconstructMaterial(r MaterialRecord) *Material {
	return &Material{
		id:            r.ID,
		title:         r.Title,
		description:   r.Description,
		imageURL:      r.ImageURL,
		thumbURL:      r.ThumbURL,
		categoryID:    r.CategoryID,
		ownerID:       r.OwnerID,
		viewCount:     r.ViewCount,
		favoriteCount: r.FavoriteCount,
		tags:          append([]string(nil), r.Tags...),
		license:       r.License,
		status:        r.Status,
		rejectReason:  r.RejectReason,
		version:       r.Version,
		createdAt:     r.CreatedAt,
		updatedAt:     r.UpdatedAt,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}
}

// Getters
func (m *Material) ID() string                 { return m.id }
func (m *Material) Title() string              { return m.title }
func (m *Material) Description() string        { return m.description }
func (m *Material) ImageURL() string           { return m.imageURL }
func (m *Material) ThumbURL() string           { return m.thumbURL }
func (m *Material) CategoryID() string         { return m.categoryID }
func (m *Material) OwnerID() string            { return m.ownerID }
func (m *Material) ViewCount() int64           { return m.viewCount }
func (m *Material) FavoriteCount() int64       { return m.favoriteCount }
func (m *Material) Tags() []string             { return append([]string(nil), m.tags...) }
func (m *Material) License() string            { return m.license }
func (m *Material) Status() ModerationStatus   { return m.status }
func (m *Material) RejectReason() string       { return m.rejectReason }
func (m *Material) Version() int64             { return m.version }
func (m *Material) CreatedAt() time.Time       { return m.createdAt }
func (m *Material) UpdatedAt() time.Time       { return m.updatedAt }
func (m *Material) Changes() *ChangeTracker    { return m.changes }
func (m *Material) DomainEvents() []DomainEvent { return m.events }

// Record returns a copy of the material's state.
func (m *Material) Record() MaterialRecord {
	return MaterialRecord{
		ID:            m.id,
		Title:         m.title,
		Description:   m.description,
		ImageURL:      m.imageURL,
		ThumbURL:      m.thumbURL,
		CategoryID:    m.categoryID,
		OwnerID:       m.ownerID,
		ViewCount:     m.viewCount,
		FavoriteCount: m.favoriteCount,
		Tags:          m.Tags(),
		License:       m.license,
		Status:        m.status,
		RejectReason:  m.rejectReason,
		Version:       m.version,
		CreatedAt:     m.createdAt,
		UpdatedAt:     m.updatedAt,
	}
}

// VisibleTo reports whether caller may see this material.
func (m *Material) VisibleTo(caller Caller) bool {
	return CanView(caller, m.ownerID, m.status)
}

// Approve publishes the material and clears any previous rejection note.
func (m *Material) Approve(now time.Time) error {
	if m.status == StatusApproved {
		return ErrAlreadyApproved
	}

	m.status = StatusApproved
	m.rejectReason = ""
	m.updatedAt = now
	m.changes.MarkDirty(FieldStatus)
	m.changes.MarkDirty(FieldRejectReason)

	m.recordEvent(&MaterialApprovedEvent{
		MaterialID: m.id,
		OwnerID:    m.ownerID,
		ApprovedAt: now,
	})

	return nil
}

// Reject hides the material and stores the moderator's reason.
func (m *Material) Reject(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectReasonMissing
	}
	if utf8.RuneCountInString(reason) > MaxRejectReason {
		return ErrRejectReasonTooLong
	}
	if m.status == StatusRejected {
		return ErrAlreadyRejected
	}

	m.status = StatusRejected
	m.rejectReason = reason
	m.updatedAt = now
	m.changes.MarkDirty(FieldStatus)
	m.changes.MarkDirty(FieldRejectReason)

	m.recordEvent(&MaterialRejectedEvent{
		MaterialID: m.id,
		OwnerID:    m.ownerID,
		Reason:     reason,
		RejectedAt: now,
	})

	return nil
}

// MarkDeleted records the deletion of the material by actor.
func (m *Material) MarkDeleted(actorID string, now time.Time) {
	m.recordEvent(&MaterialDeletedEvent{
		MaterialID: m.id,
		OwnerID:    m.ownerID,
		DeletedBy:  actorID,
		DeletedAt:  now,
	})
}

// recordEvent adds a domain event to the list of events.
func (m *Material) recordEvent(event DomainEvent) {
	m.events = append(m.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (m *Material) ClearEvents() {
	m.events = make([]DomainEvent, 0)
}
