package m_user

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the users table.
type Data struct {
	UserID    string             `spanner:"user_id"`
	Username  string             `spanner:"username"`
	Email     string             `spanner:"email"`
	AvatarURL spanner.NullString `spanner:"avatar_url"`
	Role      string             `spanner:"role"`
	Status    string             `spanner:"status"`
	CreatedAt time.Time          `spanner:"created_at"`
}
