package m_favorite

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the favorites table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Key returns the primary key of a favorite relation.
func (m *Model) Key(materialID, userID string) spanner.Key {
	return spanner.Key{materialID, userID}
}

// InsertMut creates a Spanner mutation for inserting a favorite relation.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{MaterialID, UserID, CreatedAt},
		[]interface{}{data.MaterialID, data.UserID, data.CreatedAt},
	)
}

// DeleteMut creates a Spanner mutation for deleting a favorite relation.
func (m *Model) DeleteMut(materialID, userID string) *spanner.Mutation {
	return spanner.Delete(TableName, m.Key(materialID, userID))
}
