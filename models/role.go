package models

// Role is an authorization label assigned to every [User].
// The set of roles is closed; see [Role.IsValid].
type Role string

const (
	// RoleUser is the default, non-privileged role given at registration.
	RoleUser Role = "user"

	// RoleAdmin grants access to administrative routes.
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned to newly registered users.
const DefaultRole = RoleUser

// IsValid reports whether r belongs to the closed set of known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// String implements [fmt.Stringer].
func (r Role) String() string {
	return string(r)
}
