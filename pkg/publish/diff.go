package publish

import (
	"sort"

	"github.com/wickers-data/catalog/pkg/types"
)

// FieldChange names the fields that differ for one style code.
type FieldChange struct {
	StyleCode string   `json:"styleCode"`
	Changes   []string `json:"changes"`
}

// Diff is the structural difference between the working set and a
// published snapshot, keyed by style code. Added and Removed are disjoint
// by construction. Transient; never persisted.
type Diff struct {
	Added    []types.Product `json:"added"`
	Removed  []types.Product `json:"removed"`
	Modified []FieldChange   `json:"modified"`
}

// Compare diffs two product collections by style code identity. A style
// code present only in wip is added; only in published, removed; present
// on both sides, compared field by field. Products with an empty style
// code all share the "" key and collapse into one entry — a correctness
// gap carried from the data, not guarded here.
//
// Output order is deterministic: added follows wip order, removed follows
// published order, modified follows wip order with changed field names
// sorted.
func Compare(wip, published []types.Product) Diff {
	wipMap, wipOrder := indexByStyleCode(wip)
	pubMap, pubOrder := indexByStyleCode(published)

	diff := Diff{
		Added:    []types.Product{},
		Removed:  []types.Product{},
		Modified: []FieldChange{},
	}

	for _, styleCode := range wipOrder {
		wp := wipMap[styleCode]
		pp, ok := pubMap[styleCode]
		if !ok {
			diff.Added = append(diff.Added, wp)
			continue
		}
		if changes := changedFields(wp, pp); len(changes) > 0 {
			diff.Modified = append(diff.Modified, FieldChange{StyleCode: styleCode, Changes: changes})
		}
	}

	for _, styleCode := range pubOrder {
		if _, ok := wipMap[styleCode]; !ok {
			diff.Removed = append(diff.Removed, pubMap[styleCode])
		}
	}

	return diff
}

// indexByStyleCode builds an identity map and remembers first-seen key
// order. A duplicate style code keeps its first position but the later
// product wins, matching map-construction semantics.
func indexByStyleCode(products []types.Product) (map[string]types.Product, []string) {
	m := make(map[string]types.Product, len(products))
	var order []string
	for _, p := range products {
		key := p.StyleCode()
		if _, seen := m[key]; !seen {
			order = append(order, key)
		}
		m[key] = p
	}
	return m, order
}

// changedFields compares two products over the union of their top-level
// field names. Two field values are equal iff their canonical serialized
// forms match, so heterogeneous types degrade gracefully instead of
// failing. Returns the sorted changed field names, empty when identical.
func changedFields(a, b types.Product) []string {
	union := make(map[string]bool)
	for _, k := range a.Keys() {
		union[k] = true
	}
	for _, k := range b.Keys() {
		union[k] = true
	}

	var changes []string
	for key := range union {
		av, aok := a.Field(key)
		bv, bok := b.Field(key)
		if aok != bok || av != bv {
			changes = append(changes, key)
		}
	}
	sort.Strings(changes)
	return changes
}
