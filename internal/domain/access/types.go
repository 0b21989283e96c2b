package access

import "strings"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEditor     Role = "EDITOR"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor:
		return true
	}
	return false
}

// ParseRole accepts any casing; ok is false for unknown roles.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	return r, r.IsValid()
}

type Permission string

const (
	PermListingsEdit   Permission = "listings:edit"
	PermListingsDelete Permission = "listings:delete"
	PermListingsPurge  Permission = "listings:purge"
	PermContentEdit    Permission = "content:edit"
	PermContentDelete  Permission = "content:delete"
	PermMessages       Permission = "messages:manage"
	PermSettings       Permission = "settings:manage"
	PermSettingsInit   Permission = "settings:init"
	PermUsers          Permission = "users:manage"
	PermDashboard      Permission = "dashboard:view"
)
