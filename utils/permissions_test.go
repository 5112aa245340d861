package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name         string
		userPerm     string
		requiredPerm string
		expected     bool
	}{
		// Exact matches
		{"exact match same permission", "material:create", "material:create", true},
		{"exact match different action", "material:create", "material:read", false},
		{"exact match different resource", "material:create", "supplier:create", false},

		// Full wildcard tests
		{"full wildcard *:*:*", "*:*:*", "material:create", true},
		{"full wildcard *", "*", "anything:goes", true},
		{"full wildcard matches all resources", "*:*:*", "supplier:delete", true},
		{"full wildcard matches all actions", "*:*:*", "export:download", true},

		// Resource wildcard tests
		{"resource wildcard matches create", "material:*", "material:create", true},
		{"resource wildcard matches read", "material:*", "material:read", true},
		{"resource wildcard matches associate", "material:*", "material:associate", true},
		{"resource wildcard doesn't match different resource", "material:*", "supplier:create", false},

		// Action wildcard tests
		{"action wildcard matches material", "*:read", "material:read", true},
		{"action wildcard matches pricing", "*:read", "pricing:read", true},
		{"action wildcard doesn't match different action", "*:read", "material:create", false},

		// Old format backward compatibility
		{"old format exact match", "read_reports", "read_reports", true},
		{"old format no match", "read_reports", "create_reports", false},
		{"old format with wildcard", "*:*:*", "old_format_perm", true},

		// Edge cases
		{"empty required permission", "material:create", "", false},
		{"empty user permission", "", "material:create", false},
		{"both empty", "", "", true},
		{"single part permission", "admin", "admin", true},
		{"single part vs multi-part", "admin", "admin:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.userPerm, tt.requiredPerm)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.userPerm, tt.requiredPerm, result, tt.expected)
			}
		})
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required string
		expected bool
	}{
		{"admin can do anything", "admin", "snapshot:restore", true},
		{"analyst can run tradeoff", "analyst", "tradeoff:optimize", true},
		{"analyst can write materials", "analyst", "material:create", true},
		{"analyst cannot restore snapshots", "analyst", "snapshot:restore", false},
		{"analyst cannot manage users", "analyst", "user:create", false},
		{"viewer is read-only", "viewer", "material:read", true},
		{"viewer cannot write", "viewer", "material:create", false},
		{"unknown role has nothing", "intern", "material:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.required); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, expected %v",
					tt.role, tt.required, got, tt.expected)
			}
		})
	}
}

func BenchmarkMatchesPermission_ExactMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("material:create", "material:create")
	}
}

func BenchmarkMatchesPermission_WildcardMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("*:*:*", "material:create")
	}
}
