package entity

import "slices"

// Role represents the role carried by an ordinary user account.
type Role string

const (
	// RoleBuyer indicates a buyer account.
	RoleBuyer Role = "buyer"
	// RoleStoreAdmin indicates a store owner account.
	RoleStoreAdmin Role = "store-admin"
	// RoleFactoryAdmin indicates a factory owner account.
	RoleFactoryAdmin Role = "factory-admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleStoreAdmin, RoleFactoryAdmin:
		return true
	default:
		return false
	}
}

// AdminRole represents the role carried by an administrative account.
type AdminRole string

const (
	// AdminRoleSuper is the only role allowed to perform moderation transitions.
	AdminRoleSuper AdminRole = "super-admin"
	// AdminRoleAnalyst is a read-only analytics role.
	AdminRoleAnalyst AdminRole = "admin-analyst"
	// AdminRoleFactory moderates factory support requests.
	AdminRoleFactory AdminRole = "admin-factory"
	// AdminRoleStore moderates store support requests.
	AdminRoleStore AdminRole = "admin-store"
	// AdminRoleBuyer moderates buyer support requests.
	AdminRoleBuyer AdminRole = "admin-buyer"
)

// String returns the string representation of the AdminRole.
func (r AdminRole) String() string {
	return string(r)
}

// IsValid checks if the AdminRole is a valid value.
func (r AdminRole) IsValid() bool {
	switch r {
	case AdminRoleSuper, AdminRoleAnalyst, AdminRoleFactory, AdminRoleStore, AdminRoleBuyer:
		return true
	default:
		return false
	}
}

// Roles is a slice of role strings for convenience in allow-list checks.
type Roles []string

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role string) bool {
	return slices.Contains(rs, role)
}
