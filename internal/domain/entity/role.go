// Package entity contains the core business objects of the project.
package entity

// Role represents the authorization level of an account.
type Role string

const (
	// RoleUser indicates a regular account.
	RoleUser Role = "USER"
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleFromString parses a role string, falling back to RoleUser for anything unknown.
func RoleFromString(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleUser
	}

	return role
}
