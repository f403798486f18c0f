package models

// Role determines the authorization tier of a user.
type Role string

const (
	RoleAgent     Role = "agen"
	RoleHeadAgent Role = "ketua agen"
	RoleP3SRS     Role = "p3srs"
	RolePKJ       Role = "pkj"
)

// Roles lists every role accepted at signup.
var Roles = []Role{RoleAgent, RoleHeadAgent, RoleP3SRS, RolePKJ}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAgent, RoleHeadAgent, RoleP3SRS, RolePKJ:
		return true
	}
	return false
}

// IsAdminTier reports whether r sees every agent's data and may use the
// administrative operations (unit management, violations, agent reports).
func (r Role) IsAdminTier() bool {
	switch r {
	case RoleHeadAgent, RoleP3SRS, RolePKJ:
		return true
	}
	return false
}

// Actor is the authenticated caller of a request. It is built by the session
// middleware and passed explicitly to every service operation.
type Actor struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// IsAdmin is shorthand for a.Role.IsAdminTier().
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role.IsAdminTier()
}
