package m_category

// Field name constants for the categories table.
const (
	TableName = "categories"

	CategoryID  = "category_id"
	Name        = "name"
	Description = "description"
	IconURL     = "icon_url"
	Color       = "color"
	SortOrder   = "sort_order"
	CreatedAt   = "created_at"
)

// Columns lists every categories column.
var Columns = []string{CategoryID, Name, Description, IconURL, Color, SortOrder, CreatedAt}
