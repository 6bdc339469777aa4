package m_favorite

// Field name constants for the favorites table.
// favorites is interleaved in materials, keyed by (material_id, user_id).
const (
	TableName   = "favorites"
	ByUserIndex = "favorites_by_user"

	MaterialID = "material_id"
	UserID     = "user_id"
	CreatedAt  = "created_at"
)
