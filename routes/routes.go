package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fontaine-sante/scos/handlers"
	"github.com/fontaine-sante/scos/middleware"
	"github.com/fontaine-sante/scos/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(api *handlers.API, metrics *middleware.HTTPMetrics) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.SecurityHeaders)
	r.Use(metrics.Middleware)
	r.Use(middleware.RequestLogger)

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", api.Register).Methods("POST")
	r.HandleFunc("/login", api.Login).Methods("POST")
	r.HandleFunc("/healthz", api.Healthz).Methods("GET")
	r.Handle("/metrics", middleware.PrometheusHandler()).Methods("GET")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Use(middleware.JWTMiddleware)

	v1.HandleFunc("/me", api.GetCurrentUser).Methods("GET")
	v1.HandleFunc("/me/preferences", api.UpdatePreferences).Methods("PUT")

	write := func(perm string, h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(perm, h)
	}

	// Materials
	v1.HandleFunc("/materials", api.GetMaterials).Methods("GET")
	v1.Handle("/materials", write("material:create", api.CreateMaterial)).Methods("POST")
	// PUT /materials?id=<id> is the partial-patch path the associate
	// flow falls back to.
	v1.Handle("/materials", write("material:update", api.UpdateMaterial)).Methods("PUT").Queries("id", "{id}")
	v1.Handle("/materials", write("material:delete", api.DeleteMaterial)).Methods("DELETE").Queries("id", "{id}")
	v1.Handle("/materials/associate", write("material:associate", api.AssociateSuppliers)).Methods("POST")
	v1.HandleFunc("/materials/{id}", api.GetMaterial).Methods("GET")
	v1.Handle("/materials/{id}", write("material:delete", api.DeleteMaterial)).Methods("DELETE")

	// Suppliers
	v1.HandleFunc("/suppliers", api.GetSuppliers).Methods("GET")
	v1.Handle("/suppliers", write("supplier:create", api.CreateSupplier)).Methods("POST")
	v1.Handle("/suppliers", write("supplier:update", api.UpdateSupplier)).Methods("PUT").Queries("id", "{id}")
	v1.Handle("/suppliers", write("supplier:delete", api.DeleteSupplier)).Methods("DELETE").Queries("id", "{id}")
	v1.HandleFunc("/suppliers/{id}", api.GetSupplier).Methods("GET")
	v1.Handle("/suppliers/{id}", write("supplier:update", api.UpdateSupplier)).Methods("PUT")
	v1.Handle("/suppliers/{id}", write("supplier:delete", api.DeleteSupplier)).Methods("DELETE")

	// Warehouses
	v1.HandleFunc("/warehouses", api.GetWarehouses).Methods("GET")
	v1.Handle("/warehouses", write("warehouse:create", api.CreateWarehouse)).Methods("POST")
	// Without an id the sync targets the oldest warehouse.
	v1.Handle("/warehouses/sync", write("warehouse:sync", api.SyncWarehouse)).Methods("POST")
	v1.HandleFunc("/warehouses/{id}", api.GetWarehouse).Methods("GET")
	v1.Handle("/warehouses/{id}", write("warehouse:update", api.UpdateWarehouse)).Methods("PUT")
	v1.Handle("/warehouses/{id}", write("warehouse:delete", api.DeleteWarehouse)).Methods("DELETE")
	v1.Handle("/warehouses/{id}/sync", write("warehouse:sync", api.SyncWarehouse)).Methods("POST")

	// Pricing
	v1.HandleFunc("/pricing", api.GetPricing).Methods("GET")
	v1.Handle("/pricing", write("pricing:create", api.CreatePricing)).Methods("POST")
	v1.HandleFunc("/pricing/{id}", api.GetPricingRecord).Methods("GET")
	v1.Handle("/pricing/{id}", write("pricing:update", api.UpdatePricing)).Methods("PUT")
	v1.Handle("/pricing/{id}", write("pricing:delete", api.DeletePricing)).Methods("DELETE")

	// Routes
	v1.HandleFunc("/routes", api.GetRoutes).Methods("GET")
	v1.Handle("/routes", write("route:create", api.CreateRoute)).Methods("POST")
	v1.HandleFunc("/routes/{id}", api.GetRoute).Methods("GET")
	v1.Handle("/routes/{id}", write("route:update", api.UpdateRoute)).Methods("PUT")
	v1.Handle("/routes/{id}", write("route:delete", api.DeleteRoute)).Methods("DELETE")

	// Analysis
	v1.Handle("/tradeoff/optimize", write("tradeoff:optimize", api.OptimizeTradeoff)).Methods("POST")
	v1.HandleFunc("/dashboard/overview", api.DashboardOverview).Methods("GET")
	v1.HandleFunc("/analysis/costs", api.CostAnalysis).Methods("GET")
	v1.HandleFunc("/map", api.SupplyChainMap).Methods("GET")

	// Exports
	v1.Handle("/export/{entity}.xlsx", write("export:download", api.ExportExcel)).Methods("GET")
	v1.Handle("/export/{entity}.csv", write("export:download", api.ExportCSV)).Methods("GET")

	// =====================================================
	// Admin Routes (mirror snapshots)
	// =====================================================
	admin := v1.PathPrefix("/admin").Subrouter()
	adminOnly := []string{models.RoleAdmin}
	admin.Handle("/snapshots", middleware.RequireRole(adminOnly, http.HandlerFunc(api.ListSnapshots))).Methods("GET")
	admin.Handle("/snapshots", middleware.RequireRole(adminOnly, http.HandlerFunc(api.CreateSnapshot))).Methods("POST")
	admin.Handle("/snapshots/restore", middleware.RequireRole(adminOnly, http.HandlerFunc(api.RestoreSnapshot))).Methods("POST")

	return r
}
