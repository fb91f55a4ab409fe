// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the platform role a member can have.
type Role string

const (
	// RoleStudent is the default role for new members.
	RoleStudent Role = "student"
	// RoleLecturer indicates teaching staff.
	RoleLecturer Role = "lecturer"
	// RoleAlumni indicates a graduated member.
	RoleAlumni Role = "alumni"
	// RoleModerator can review documents and moderate the forum.
	RoleModerator Role = "moderator"
	// RoleAdmin has full administrative access.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAlumni, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
