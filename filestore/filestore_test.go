package filestore

import (
	"testing"
)

type testMaterial struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := []testMaterial{{ID: "mat-1", Name: "Organic Oats"}}
	if err := s.Save(MaterialsFile, in); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var out []testMaterial
	ok, err := s.Load(MaterialsFile, &out)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if len(out) != 1 || out[0].ID != "mat-1" {
		t.Errorf("got %+v", out)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	var out []testMaterial
	ok, err := s.Load(SuppliersFile, &out)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ok {
		t.Error("missing file reported as present")
	}
}

func TestSnapshotAndRestore(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(MaterialsFile, []testMaterial{{ID: "mat-1", Name: "before"}}); err != nil {
		t.Fatal(err)
	}

	name, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}

	if err := s.Save(MaterialsFile, []testMaterial{{ID: "mat-1", Name: "after"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Restore(name); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	var out []testMaterial
	if _, err := s.Load(MaterialsFile, &out); err != nil {
		t.Fatal(err)
	}
	if out[0].Name != "before" {
		t.Errorf("restore did not roll back: got %q", out[0].Name)
	}

	names, err := s.Snapshots()
	if err != nil {
		t.Fatalf("Snapshots() error: %v", err)
	}
	if len(names) != 1 || names[0] != name {
		t.Errorf("snapshots = %v, want [%s]", names, name)
	}
}

func TestRestoreRejectsPathTraversal(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"", "..", "../outside", `a\b`} {
		if err := s.Restore(name); err == nil {
			t.Errorf("Restore(%q) accepted an invalid name", name)
		}
	}
}
