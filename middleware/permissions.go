package middleware

import (
	"net/http"

	"github.com/fontaine-sante/scos/utils"
)

// RequirePermission gates a handler on a "resource:action" permission
// resolved from the caller's role.
func RequirePermission(perm string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.HasPermission(GetRole(r), perm) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
