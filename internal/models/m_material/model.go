package m_material

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the materials table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a material.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.MaterialID,
			data.Title,
			data.Description,
			data.ImageURL,
			data.ThumbURL,
			data.CategoryID,
			data.OwnerID,
			data.ViewCount,
			data.FavoriteCount,
			data.Tags,
			data.License,
			data.Status,
			data.RejectReason,
			data.Version,
			data.CreatedAt,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific material fields.
func (m *Model) UpdateMut(materialID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, MaterialID)
	values = append(values, materialID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a material.
// Interleaved favorites rows are removed by ON DELETE CASCADE.
func (m *Model) DeleteMut(materialID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{materialID})
}

// FavoriteCountMut sets the denormalized favorite counter.
func (m *Model) FavoriteCountMut(materialID string, count int64) *spanner.Mutation {
	return spanner.Update(TableName, []string{MaterialID, FavoriteCount}, []interface{}{materialID, count})
}
