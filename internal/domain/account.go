package domain

import (
	"slices"
	"time"
)

// Role represents an account's permission level in the system.
type Role string

const (
	// RoleClient grants standard borrower access.
	RoleClient Role = "client"
	// RoleAdmin additionally grants catalog management and statistics.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin additionally grants account management.
	RoleSuperAdmin Role = "superadmin"
)

// Roles returns every valid role.
func Roles() []Role {
	return []Role{RoleClient, RoleAdmin, RoleSuperAdmin}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains(Roles(), r)
}

// Capability is a named action an account may be permitted to perform.
// Permissions are looked up once per action from the role's capability set
// rather than re-derived from role comparisons at each call site.
type Capability string

const (
	// CapabilityBorrow allows toggling a record between available and borrowed.
	CapabilityBorrow Capability = "borrow"
	// CapabilityManageCatalog allows adding, updating and deleting catalog records.
	CapabilityManageCatalog Capability = "catalog.manage"
	// CapabilityViewStats allows viewing the statistics overview.
	CapabilityViewStats Capability = "stats.view"
	// CapabilityManageAccounts allows listing, creating and deleting accounts.
	CapabilityManageAccounts Capability = "accounts.manage"
)

// roleCapabilities is the complete permission table. Higher roles are
// supersets of lower ones.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleClient: {
		CapabilityBorrow: true,
	},
	RoleAdmin: {
		CapabilityBorrow:        true,
		CapabilityManageCatalog: true,
		CapabilityViewStats:     true,
	},
	RoleSuperAdmin: {
		CapabilityBorrow:         true,
		CapabilityManageCatalog:  true,
		CapabilityViewStats:      true,
		CapabilityManageAccounts: true,
	},
}

// Can reports whether the role is permitted to perform the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Account represents an authenticated user account in the system.
// Username doubles as the primary key.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (a *Account) InitTimestamps() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp to the current time.
func (a *Account) Touch() {
	a.UpdatedAt = time.Now()
}

// Can reports whether the account is permitted to perform the capability.
func (a *Account) Can(c Capability) bool {
	return a.Role.Can(c)
}
