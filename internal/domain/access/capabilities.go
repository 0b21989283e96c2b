package access

// grants lists, per permission, the roles holding it.
var grants = map[Permission][]Role{
	PermListingsEdit:   {RoleSuperAdmin, RoleAdmin, RoleEditor},
	PermListingsDelete: {RoleSuperAdmin, RoleAdmin},
	PermListingsPurge:  {RoleSuperAdmin},
	PermContentEdit:    {RoleSuperAdmin, RoleAdmin, RoleEditor},
	PermContentDelete:  {RoleSuperAdmin, RoleAdmin},
	PermMessages:       {RoleSuperAdmin, RoleAdmin},
	PermSettings:       {RoleSuperAdmin, RoleAdmin},
	PermSettingsInit:   {RoleSuperAdmin},
	PermUsers:          {RoleSuperAdmin},
	PermDashboard:      {RoleSuperAdmin, RoleAdmin},
}

var permissionOrder = []Permission{
	PermListingsEdit, PermListingsDelete, PermListingsPurge,
	PermContentEdit, PermContentDelete,
	PermMessages, PermSettings, PermSettingsInit,
	PermUsers, PermDashboard,
}

// CapabilitiesFor lists the permissions of a role in a stable order.
func CapabilitiesFor(role Role) []Permission {
	out := []Permission{}
	for _, p := range permissionOrder {
		if Authorize(role, p) {
			out = append(out, p)
		}
	}
	return out
}
