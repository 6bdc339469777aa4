package domain

import "time"

// Category groups materials. Categories are managed elsewhere; the catalog
// only resolves them.
type Category struct {
	ID          string
	Name        string
	Description string
	IconURL     string
	Color       string
	SortOrder   int64
	CreatedAt   time.Time
}
