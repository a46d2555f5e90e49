package model

// Session is the client-side view of an authenticated identity.
// The role is decoded from an unverified token claim and gates UI
// surfaces only; the server makes the real authorization decision.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.Role == string(RoleAdmin)
}
