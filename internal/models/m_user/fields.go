package m_user

// Field name constants for the users table.
const (
	TableName       = "users"
	ByUsernameIndex = "users_by_username"

	UserID    = "user_id"
	Username  = "username"
	Email     = "email"
	AvatarURL = "avatar_url"
	Role      = "role"
	Status    = "status"
	CreatedAt = "created_at"
)

// Columns lists every users column.
var Columns = []string{UserID, Username, Email, AvatarURL, Role, Status, CreatedAt}
