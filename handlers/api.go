// Package handlers holds the HTTP handlers for every API resource.
package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/cache"
	"github.com/fontaine-sante/scos/filestore"
)

// API bundles the dependencies the handlers need. The cache and the
// JSON mirror are passed in here instead of living as package globals.
type API struct {
	DB    *gorm.DB
	Cache *cache.TTLCache
	Store *filestore.Store
}

func New(db *gorm.DB, c *cache.TTLCache, store *filestore.Store) *API {
	return &API{DB: db, Cache: c, Store: store}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// cachedList serves a list endpoint through the TTL cache. load runs on
// a miss and its result is stored under the request path.
func (a *API) cachedList(w http.ResponseWriter, r *http.Request, load func() (interface{}, error)) {
	key := r.URL.Path
	if v, ok := a.Cache.Get(key); ok {
		respondJSON(w, http.StatusOK, v)
		return
	}
	v, err := load()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Cache.Set(key, v)
	respondJSON(w, http.StatusOK, v)
}

// invalidate drops cached reads for the given prefixes plus the derived
// dashboard and map views, which aggregate every entity.
func (a *API) invalidate(prefixes ...string) {
	for _, p := range prefixes {
		a.Cache.Invalidate(p)
	}
	a.Cache.Invalidate(dashboardCachePrefix)
	a.Cache.Invalidate(mapCachePrefix)
}

// db scopes queries to the request's context so a dropped client cancels
// in-flight statements.
func (a *API) db(r *http.Request) *gorm.DB {
	return a.DB.WithContext(r.Context())
}
