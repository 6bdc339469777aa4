package domain

// Role is the authorization role of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AccountStatus tells whether a user may act on the catalog.
type AccountStatus string

const (
	AccountActive  AccountStatus = "ACTIVE"
	AccountBlocked AccountStatus = "BLOCKED"
)

// Caller is the identity a query or command runs on behalf of.
// The zero value is an anonymous caller.
type Caller struct {
	UserID   string
	Username string
	Role     Role
}

// Anonymous returns a caller without identity.
func Anonymous() Caller {
	return Caller{}
}

// CallerFor builds the caller for a resolved user. Blocked accounts are
// treated as anonymous.
func CallerFor(u *User) Caller {
	if u == nil || u.Status == AccountBlocked {
		return Anonymous()
	}
	return Caller{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func (c Caller) IsAuthenticated() bool { return c.UserID != "" }

func (c Caller) IsAdmin() bool { return c.IsAuthenticated() && c.Role == RoleAdmin }

// Owns reports whether the caller is the owner of the given user id.
func (c Caller) Owns(ownerID string) bool {
	return c.IsAuthenticated() && c.UserID == ownerID
}
