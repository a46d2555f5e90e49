package model

// UserRole represents the role of a user account.
type UserRole string

const (
	// RoleUser is a standard account that can view and chart files.
	RoleUser UserRole = "user"
	// RoleAdmin can additionally upload and delete files and manage accounts.
	RoleAdmin UserRole = "admin"
)

// User represents an account as reported by the admin user listing.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

// IsAdmin returns true if the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
