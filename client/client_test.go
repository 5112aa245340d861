package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/fontaine-sante/scos/models"
)

// fakeAPI is an in-memory stand-in for the materials endpoints. When
// associateFails is set the dedicated endpoint answers 500 so the client
// has to take the direct-patch path.
type fakeAPI struct {
	material       models.RawMaterial
	associateFails bool
	associateCalls int
	patchCalls     int
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/materials/associate", func(w http.ResponseWriter, r *http.Request) {
		f.associateCalls++
		if f.associateFails {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "association unavailable"})
			return
		}
		var req struct {
			MaterialID  string   `json:"materialId"`
			SupplierIDs []string `json:"supplierIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.material.Suppliers = req.SupplierIDs
		json.NewEncoder(w).Encode(map[string]interface{}{"material": f.material})
	})
	mux.HandleFunc("/api/v1/materials", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.patchCalls++
		var patch struct {
			Suppliers []string `json:"suppliers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.material.Suppliers = patch.Suppliers
		json.NewEncoder(w).Encode(f.material)
	})
	mux.HandleFunc("/api/v1/materials/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.material)
	})
	return mux
}

func TestAssociateSuppliersPrimaryPath(t *testing.T) {
	api := &fakeAPI{material: models.RawMaterial{ID: "mat-1", Name: "Organic Oats", Suppliers: []string{}}}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := New(srv.URL, "")
	m, err := c.AssociateSuppliers(context.Background(), "mat-1", []string{"sup-1", "sup-2"})
	if err != nil {
		t.Fatalf("AssociateSuppliers: %v", err)
	}
	if !reflect.DeepEqual(m.Suppliers, []string{"sup-1", "sup-2"}) {
		t.Errorf("suppliers = %v, want [sup-1 sup-2]", m.Suppliers)
	}
	if api.associateCalls != 1 || api.patchCalls != 0 {
		t.Errorf("calls = associate %d, patch %d; want 1, 0", api.associateCalls, api.patchCalls)
	}
}

func TestAssociateSuppliersFallsBackToPatch(t *testing.T) {
	api := &fakeAPI{
		material:       models.RawMaterial{ID: "mat-1", Suppliers: []string{}},
		associateFails: true,
	}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := New(srv.URL, "")
	m, err := c.AssociateSuppliers(context.Background(), "mat-1", []string{"sup-1", "sup-2"})
	if err != nil {
		t.Fatalf("AssociateSuppliers: %v", err)
	}
	if !reflect.DeepEqual(m.Suppliers, []string{"sup-1", "sup-2"}) {
		t.Errorf("suppliers = %v, want [sup-1 sup-2]", m.Suppliers)
	}
	if api.associateCalls != 1 || api.patchCalls != 1 {
		t.Errorf("calls = associate %d, patch %d; want 1, 1", api.associateCalls, api.patchCalls)
	}
}

// Successive associate calls replace the whole list rather than appending,
// on either code path.
func TestAssociateSuppliersReplaceSemantics(t *testing.T) {
	for _, fails := range []bool{false, true} {
		name := "primary"
		if fails {
			name = "fallback"
		}
		t.Run(name, func(t *testing.T) {
			api := &fakeAPI{
				material:       models.RawMaterial{ID: "mat-1", Suppliers: []string{}},
				associateFails: fails,
			}
			srv := httptest.NewServer(api.handler())
			defer srv.Close()

			c := New(srv.URL, "")
			m, err := c.AssociateSuppliers(context.Background(), "mat-1", []string{"s1"})
			if err != nil {
				t.Fatalf("first associate: %v", err)
			}
			if !reflect.DeepEqual(m.Suppliers, []string{"s1"}) {
				t.Fatalf("after first call suppliers = %v, want [s1]", m.Suppliers)
			}

			m, err = c.AssociateSuppliers(context.Background(), "mat-1", []string{"s1", "s2"})
			if err != nil {
				t.Fatalf("second associate: %v", err)
			}
			if !reflect.DeepEqual(m.Suppliers, []string{"s1", "s2"}) {
				t.Fatalf("after second call suppliers = %v, want [s1 s2]", m.Suppliers)
			}

			got, err := c.GetMaterial(context.Background(), "mat-1")
			if err != nil {
				t.Fatalf("GetMaterial: %v", err)
			}
			if !reflect.DeepEqual(got.Suppliers, []string{"s1", "s2"}) {
				t.Errorf("read back suppliers = %v, want [s1 s2]", got.Suppliers)
			}
		})
	}
}

func TestAssociateSuppliersBothPathsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "upstream down"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.AssociateSuppliers(context.Background(), "mat-1", []string{"s1"})
	if err == nil {
		t.Fatal("expected error when both paths fail")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", apiErr.StatusCode, http.StatusBadGateway)
	}
}

func TestClientSendsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.RawMaterial{ID: "mat-1"})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token")
	if _, err := c.GetMaterial(context.Background(), "mat-1"); err != nil {
		t.Fatalf("GetMaterial: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret-token")
	}
}
