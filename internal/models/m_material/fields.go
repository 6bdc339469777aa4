package m_material

// Field name constants for the materials table.
const (
	TableName = "materials"

	MaterialID    = "material_id"
	Title         = "title"
	Description   = "description"
	ImageURL      = "image_url"
	ThumbURL      = "thumb_url"
	CategoryID    = "category_id"
	OwnerID       = "owner_id"
	ViewCount     = "view_count"
	FavoriteCount = "favorite_count"
	Tags          = "tags"
	License       = "license"
	Status        = "status"
	RejectReason  = "reject_reason"
	Version       = "version"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// Columns lists every materials column in insert order.
var Columns = []string{
	MaterialID,
	Title,
	Description,
	ImageURL,
	ThumbURL,
	CategoryID,
	OwnerID,
	ViewCount,
	FavoriteCount,
	Tags,
	License,
	Status,
	RejectReason,
	Version,
	CreatedAt,
	UpdatedAt,
}
