package m_material

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the materials table.
type Data struct {
	MaterialID    string             `spanner:"material_id"`
	Title         string             `spanner:"title"`
	Description   string             `spanner:"description"`
	ImageURL      string             `spanner:"image_url"`
	ThumbURL      string             `spanner:"thumb_url"`
	CategoryID    string             `spanner:"category_id"`
	OwnerID       string             `spanner:"owner_id"`
	ViewCount     int64              `spanner:"view_count"`
	FavoriteCount int64              `spanner:"favorite_count"`
	Tags          []string           `spanner:"tags"`
	License       string             `spanner:"license"`
	Status        string             `spanner:"status"`
	RejectReason  spanner.NullString `spanner:"reject_reason"`
	Version       int64              `spanner:"version"`
	CreatedAt     time.Time          `spanner:"created_at"`
	UpdatedAt     time.Time          `spanner:"updated_at"`
}
