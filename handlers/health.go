package handlers

import (
	"net/http"
)

// Healthz reports liveness plus database reachability.
func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := a.db(r).DB()
	if err != nil {
		dbStatus = err.Error()
		status = "degraded"
	} else if err := sqlDB.PingContext(r.Context()); err != nil {
		dbStatus = err.Error()
		status = "degraded"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]interface{}{
		"status":   status,
		"database": dbStatus,
		"cache":    a.Cache.Stats(),
	})
}
