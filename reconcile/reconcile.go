// Package reconcile computes the link changes needed to keep warehouse
// associations consistent with the suppliers and materials known to the
// system.
package reconcile

import "sort"

// Diff is the set difference between a desired and a current ID list.
type Diff struct {
	Added   []string
	Removed []string
}

// Empty reports whether the diff describes no change at all.
func (d Diff) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Compute returns desired\current as Added and current\desired as
// Removed, both sorted. Duplicates in either input count once. Unlike a
// length comparison, this catches an add and a remove that offset each
// other.
func Compute(current, desired []string) Diff {
	cur := toSet(current)
	des := toSet(desired)

	var d Diff
	for id := range des {
		if _, ok := cur[id]; !ok {
			d.Added = append(d.Added, id)
		}
	}
	for id := range cur {
		if _, ok := des[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	return d
}

// Union merges two ID lists into a sorted list without duplicates.
func Union(a, b []string) []string {
	set := toSet(a)
	for _, id := range b {
		set[id] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// SyncPlan is the outcome of planning a warehouse link sync.
type SyncPlan struct {
	WarehouseID string
	Suppliers   Diff
	Materials   Diff
}

// NeedsUpdate reports whether either link set changed.
func (p SyncPlan) NeedsUpdate() bool { return !p.Suppliers.Empty() || !p.Materials.Empty() }

// PlanWarehouseSync grows a warehouse's supplier and material links to
// cover every known ID. The sync only ever adds; links to entities that
// have since disappeared are reported in Removed but left in place, so
// callers apply Added only.
func PlanWarehouseSync(warehouseID string, currentSuppliers, currentMaterials, knownSuppliers, knownMaterials []string) SyncPlan {
	return SyncPlan{
		WarehouseID: warehouseID,
		Suppliers:   Compute(currentSuppliers, Union(currentSuppliers, knownSuppliers)),
		Materials:   Compute(currentMaterials, Union(currentMaterials, knownMaterials)),
	}
}
