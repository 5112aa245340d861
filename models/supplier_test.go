package models

import (
	"encoding/json"
	"testing"
)

func TestContactInfoWireShape(t *testing.T) {
	c := ContactInfo{Name: "Jean Tremblay", Email: "contact@ecofarm.com", Phone: "+1-514-555-1234"}
	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]string
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	want := map[string]string{
		"name":  "Jean Tremblay",
		"email": "contact@ecofarm.com",
		"phone": "+1-514-555-1234",
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("contactInfo[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestSupplierResolveMaterials(t *testing.T) {
	s := Supplier{
		ID: "sup-1",
		MaterialLinks: []MaterialSupplier{
			{MaterialID: "mat-1", SupplierID: "sup-1"},
			{MaterialID: "mat-2", SupplierID: "sup-1"},
		},
	}
	s.ResolveMaterials()
	if len(s.Materials) != 2 || s.Materials[0] != "mat-1" || s.Materials[1] != "mat-2" {
		t.Errorf("materials = %v, want [mat-1 mat-2]", s.Materials)
	}
}
