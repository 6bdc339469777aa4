package m_category

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the categories table.
type Data struct {
	CategoryID  string             `spanner:"category_id"`
	Name        string             `spanner:"name"`
	Description spanner.NullString `spanner:"description"`
	IconURL     spanner.NullString `spanner:"icon_url"`
	Color       spanner.NullString `spanner:"color"`
	SortOrder   int64              `spanner:"sort_order"`
	CreatedAt   time.Time          `spanner:"created_at"`
}
