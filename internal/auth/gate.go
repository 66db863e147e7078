package auth

import "micromon/internal/entity"

// Capability is a named permission checked by the authorization gate before a
// handler runs. Keeping the role grants in one table avoids per-route role
// string comparisons drifting apart.
type Capability string

const (
	// CapViewDashboard covers every read surface of the console.
	CapViewDashboard Capability = "view-dashboard"
	// CapManageAlerts covers alert creation, mutation and deletion.
	CapManageAlerts Capability = "manage-alerts"
	// CapManageUsers covers account creation and mutation.
	CapManageUsers Capability = "manage-users"
	// CapManageSettings covers system settings mutation.
	CapManageSettings Capability = "manage-settings"
)

var roleCapabilities = map[string]map[Capability]struct{}{
	entity.UserRoleAdmin: {
		CapViewDashboard:  {},
		CapManageAlerts:   {},
		CapManageUsers:    {},
		CapManageSettings: {},
	},
	entity.UserRoleManager: {
		CapViewDashboard: {},
		CapManageAlerts:  {},
	},
	entity.UserRoleUser: {
		CapViewDashboard: {},
	},
}

// RoleAllows reports whether the given role holds the capability. Unknown
// roles hold nothing.
func RoleAllows(role string, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[cap]
	return ok
}
