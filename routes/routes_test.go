package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/fontaine-sante/scos/cache"
	"github.com/fontaine-sante/scos/handlers"
	"github.com/fontaine-sante/scos/middleware"
)

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	api := handlers.New(nil, cache.New(cache.DefaultTTL), nil)
	h := RegisterRoutes(api, middleware.NewHTTPMetrics("scos_test"))
	r, ok := h.(*mux.Router)
	if !ok {
		t.Fatalf("RegisterRoutes returned %T, want *mux.Router", h)
	}
	return r
}

func TestRouteRegistration(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/register"},
		{"POST", "/login"},
		{"GET", "/healthz"},
		{"GET", "/metrics"},
		{"GET", "/api/v1/materials"},
		{"POST", "/api/v1/materials/associate"},
		{"GET", "/api/v1/warehouses"},
		// id-less sync targets the oldest warehouse
		{"POST", "/api/v1/warehouses/sync"},
		{"POST", "/api/v1/warehouses/wh-1/sync"},
		{"POST", "/api/v1/tradeoff/optimize"},
		{"GET", "/api/v1/export/materials.xlsx"},
		{"GET", "/api/v1/admin/snapshots"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			var match mux.RouteMatch
			if !r.Match(req, &match) || match.MatchErr != nil {
				t.Errorf("%s %s did not match any route (err %v)", tt.method, tt.path, match.MatchErr)
			}
		})
	}
}

func TestQueryParamRoutes(t *testing.T) {
	r := testRouter(t)

	for _, tt := range []struct {
		method string
		path   string
	}{
		{"PUT", "/api/v1/materials?id=mat-1"},
		{"DELETE", "/api/v1/materials?id=mat-1"},
		{"PUT", "/api/v1/suppliers?id=sup-1"},
		{"DELETE", "/api/v1/suppliers?id=sup-1"},
	} {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		var match mux.RouteMatch
		if !r.Match(req, &match) || match.MatchErr != nil {
			t.Errorf("%s %s did not match any route (err %v)", tt.method, tt.path, match.MatchErr)
		}
	}

	// Without the id query the patch routes must not match.
	req := httptest.NewRequest(http.MethodPut, "/api/v1/materials", nil)
	var match mux.RouteMatch
	if r.Match(req, &match) && match.MatchErr == nil {
		t.Error("PUT /api/v1/materials without ?id matched a route")
	}
}
