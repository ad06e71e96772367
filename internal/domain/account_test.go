package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleClient, CapabilityBorrow, true},
		{RoleClient, CapabilityManageCatalog, false},
		{RoleClient, CapabilityViewStats, false},
		{RoleClient, CapabilityManageAccounts, false},

		{RoleAdmin, CapabilityBorrow, true},
		{RoleAdmin, CapabilityManageCatalog, true},
		{RoleAdmin, CapabilityViewStats, true},
		{RoleAdmin, CapabilityManageAccounts, false},

		{RoleSuperAdmin, CapabilityBorrow, true},
		{RoleSuperAdmin, CapabilityManageCatalog, true},
		{RoleSuperAdmin, CapabilityViewStats, true},
		{RoleSuperAdmin, CapabilityManageAccounts, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Can(tt.cap), "%s / %s", tt.role, tt.cap)
	}
}

func TestRoleHierarchyIsSupersets(t *testing.T) {
	// Each step up the ladder keeps every capability of the step below.
	for _, c := range []Capability{CapabilityBorrow, CapabilityManageCatalog, CapabilityViewStats, CapabilityManageAccounts} {
		if RoleClient.Can(c) {
			assert.True(t, RoleAdmin.Can(c), "admin lost client capability %s", c)
		}
		if RoleAdmin.Can(c) {
			assert.True(t, RoleSuperAdmin.Can(c), "superadmin lost admin capability %s", c)
		}
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleClient.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	for _, c := range []Capability{CapabilityBorrow, CapabilityManageCatalog, CapabilityViewStats, CapabilityManageAccounts} {
		assert.False(t, Role("ghost").Can(c))
	}
}
