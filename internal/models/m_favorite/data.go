package m_favorite

import "time"

// Data represents the database model for the favorites table.
type Data struct {
	MaterialID string    `spanner:"material_id"`
	UserID     string    `spanner:"user_id"`
	CreatedAt  time.Time `spanner:"created_at"`
}
