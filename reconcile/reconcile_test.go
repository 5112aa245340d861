package reconcile

import (
	"reflect"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		current []string
		desired []string
		want    Diff
	}{
		{
			name:    "no change",
			current: []string{"sup-1", "sup-2"},
			desired: []string{"sup-2", "sup-1"},
			want:    Diff{},
		},
		{
			name:    "pure addition",
			current: []string{"sup-1"},
			desired: []string{"sup-1", "sup-2"},
			want:    Diff{Added: []string{"sup-2"}},
		},
		{
			name:    "pure removal",
			current: []string{"sup-1", "sup-2"},
			desired: []string{"sup-1"},
			want:    Diff{Removed: []string{"sup-2"}},
		},
		{
			name:    "offsetting add and remove with equal sizes",
			current: []string{"sup-1", "sup-2"},
			desired: []string{"sup-1", "sup-3"},
			want:    Diff{Added: []string{"sup-3"}, Removed: []string{"sup-2"}},
		},
		{
			name:    "duplicates count once",
			current: []string{"sup-1", "sup-1"},
			desired: []string{"sup-1"},
			want:    Diff{},
		},
		{
			name:    "empty current",
			current: nil,
			desired: []string{"sup-1"},
			want:    Diff{Added: []string{"sup-1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.current, tt.desired)
			if !reflect.DeepEqual(got.Added, tt.want.Added) || !reflect.DeepEqual(got.Removed, tt.want.Removed) {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnion(t *testing.T) {
	got := Union([]string{"wh-2", "wh-1"}, []string{"wh-1", "wh-3"})
	want := []string{"wh-1", "wh-2", "wh-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}

func TestPlanWarehouseSyncGrowsOnly(t *testing.T) {
	plan := PlanWarehouseSync("wh-1",
		[]string{"sup-1", "sup-gone"},
		[]string{"mat-1"},
		[]string{"sup-1", "sup-2"},
		[]string{"mat-1", "mat-2"},
	)
	if !plan.NeedsUpdate() {
		t.Fatal("expected an update")
	}
	if !reflect.DeepEqual(plan.Suppliers.Added, []string{"sup-2"}) {
		t.Errorf("suppliers added = %v, want [sup-2]", plan.Suppliers.Added)
	}
	// sup-gone no longer exists anywhere but the sync must not drop it.
	if len(plan.Suppliers.Removed) != 0 {
		t.Errorf("sync planned removals: %v", plan.Suppliers.Removed)
	}
	if !reflect.DeepEqual(plan.Materials.Added, []string{"mat-2"}) {
		t.Errorf("materials added = %v, want [mat-2]", plan.Materials.Added)
	}
}

func TestPlanWarehouseSyncIdempotent(t *testing.T) {
	current := []string{"sup-1", "sup-2"}
	known := []string{"sup-1", "sup-2"}

	first := PlanWarehouseSync("wh-1", current, nil, known, nil)
	if first.NeedsUpdate() {
		t.Fatalf("no change expected, got %+v", first)
	}

	// Apply an addition, then plan again against the same known set.
	grown := Union(current, []string{"sup-3"})
	second := PlanWarehouseSync("wh-1", grown, nil, append(known, "sup-3"), nil)
	if second.NeedsUpdate() {
		t.Errorf("second sync against unchanged sets planned an update: %+v", second)
	}
}
