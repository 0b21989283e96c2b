package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleEditor, PermListingsEdit, true},
		{RoleEditor, PermListingsDelete, false},
		{RoleAdmin, PermListingsDelete, true},
		{RoleAdmin, PermListingsPurge, false},
		{RoleSuperAdmin, PermListingsPurge, true},
		{RoleEditor, PermContentEdit, true},
		{RoleEditor, PermContentDelete, false},
		{RoleEditor, PermMessages, false},
		{RoleAdmin, PermSettings, true},
		{RoleAdmin, PermSettingsInit, false},
		{RoleAdmin, PermUsers, false},
		{RoleSuperAdmin, PermUsers, true},
		{RoleAdmin, PermDashboard, true},
		{Role("GUEST"), PermListingsEdit, false},
		{RoleSuperAdmin, Permission("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.role, tt.perm))
		})
	}
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Equal(t, []Permission{PermListingsEdit, PermContentEdit}, CapabilitiesFor(RoleEditor))
	assert.Len(t, CapabilitiesFor(RoleSuperAdmin), 10)
	assert.Empty(t, CapabilitiesFor(Role("")))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" super_admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleSuperAdmin, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}
