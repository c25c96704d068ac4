package catalog

import "strings"

// Role is one of the fixed profile roles records are created under. It scopes
// what a reader sees; it is not an authorization boundary.
type Role string

const (
	RoleSuperAdmin Role = "Super Admin"
	RoleMaterials  Role = "Materials"
	RoleLogistics  Role = "Logistics"
	RolePayroll    Role = "Payroll"
)

// RoleOptions lists every role in display order.
var RoleOptions = []Role{
	RoleSuperAdmin,
	RoleMaterials,
	RoleLogistics,
	RolePayroll,
}

// ParseRole resolves a stored role string, falling back to the administrative
// role for anything unrecognized. Read contexts use this permissive form.
func ParseRole(s string) Role {
	if role, ok := FindRole(s); ok {
		return role
	}
	return RoleSuperAdmin
}

// FindRole resolves a role string strictly. Write contexts must use this form:
// an unrecognized role is an error, never a silent default.
func FindRole(s string) (Role, bool) {
	for _, role := range RoleOptions {
		if string(role) == s {
			return role, true
		}
	}
	return "", false
}

// Slug returns the role in object-path form, e.g. "Super Admin" -> "super-admin".
func (r Role) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(r)), " ", "-")
}

// Unscoped reports whether the role reads every record rather than only its own.
func (r Role) Unscoped() bool {
	return r == RoleSuperAdmin
}
