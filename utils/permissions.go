package utils

import "strings"

// RolePermissions maps each role to its permission patterns.
// Resources: material, supplier, warehouse, pricing, route, tradeoff,
// dashboard, export, snapshot, user.
var RolePermissions = map[string][]string{
	"admin":   {"*:*:*"},
	"analyst": {"*:read", "tradeoff:*", "export:*", "material:*", "supplier:*", "warehouse:*", "pricing:*", "route:*"},
	"viewer":  {"*:read"},
}

// HasPermission reports whether the role grants the required
// permission under any of its patterns.
func HasPermission(role, requiredPerm string) bool {
	for _, p := range RolePermissions[role] {
		if MatchesPermission(p, requiredPerm) {
			return true
		}
	}
	return false
}

// MatchesPermission checks if a user permission matches the required permission
// Supports wildcard patterns:
//
// Examples:
//   - "*:*:*" or "*" matches everything (admin wildcard)
//   - "material:*" matches all actions on the material resource (e.g., material:create, material:read, material:delete)
//   - "*:read" matches read action on all resources (e.g., material:read, supplier:read, pricing:read)
//   - "material:create" exact match
//
// Permission format: "resource:action" or "resource:action:scope"
func MatchesPermission(userPerm, requiredPerm string) bool {
	// Exact match (fastest path)
	if userPerm == requiredPerm {
		return true
	}

	// Full wildcard - grants everything
	if userPerm == "*:*:*" || userPerm == "*" {
		return true
	}

	// Split permissions into parts (format: resource:action or resource:action:scope)
	userParts := strings.Split(userPerm, ":")
	reqParts := strings.Split(requiredPerm, ":")

	// Ensure both have at least 2 parts (resource:action)
	if len(userParts) < 2 || len(reqParts) < 2 {
		// Old format (no colons): only exact match works
		return userPerm == requiredPerm
	}

	// Check resource match (first part)
	resourceMatch := userParts[0] == "*" || userParts[0] == reqParts[0]

	// Check action match (second part)
	actionMatch := userParts[1] == "*" || userParts[1] == reqParts[1]

	return resourceMatch && actionMatch
}
