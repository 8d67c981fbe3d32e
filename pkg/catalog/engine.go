package catalog

import (
	"sort"

	"github.com/wickers-data/catalog/pkg/types"
)

// Engine answers attribute metadata queries and applies filter/search
// predicates over product collections. Construct once per attribute set;
// the engine is read-only and safe for concurrent use.
type Engine struct {
	set       *types.AttributeSet
	byID      map[string]types.AttributeDefinition
	byKey     map[string]types.AttributeDefinition
	sentinels map[string]bool
}

// NewEngine builds an Engine over the given attribute set.
func NewEngine(set *types.AttributeSet) *Engine {
	e := &Engine{
		set:       set,
		byID:      make(map[string]types.AttributeDefinition, len(set.Attributes)),
		byKey:     make(map[string]types.AttributeDefinition, len(set.Attributes)),
		sentinels: make(map[string]bool, len(set.EmptyValues)),
	}
	for _, attr := range set.Attributes {
		e.byID[attr.ID] = attr
		if attr.Key != "" {
			e.byKey[attr.Key] = attr
		}
	}
	for _, v := range set.EmptyValues {
		e.sentinels[v] = true
	}
	return e
}

// All returns every attribute definition in document order.
func (e *Engine) All() []types.AttributeDefinition {
	out := make([]types.AttributeDefinition, len(e.set.Attributes))
	copy(out, e.set.Attributes)
	return out
}

// Filterable returns the filterable attributes sorted by display order.
func (e *Engine) Filterable() []types.AttributeDefinition {
	return e.selectSorted(func(a types.AttributeDefinition) bool { return a.Filterable })
}

// Searchable returns the searchable attributes in document order.
func (e *Engine) Searchable() []types.AttributeDefinition {
	var out []types.AttributeDefinition
	for _, a := range e.set.Attributes {
		if a.Searchable {
			out = append(out, a)
		}
	}
	return out
}

// ListAttributes returns the attributes shown in the product list view,
// sorted by display order.
func (e *Engine) ListAttributes() []types.AttributeDefinition {
	return e.selectSorted(func(a types.AttributeDefinition) bool { return a.ShowInList })
}

// ForTab returns the detail attributes belonging to the given tab, sorted
// by display order.
func (e *Engine) ForTab(tab string) []types.AttributeDefinition {
	return e.selectSorted(func(a types.AttributeDefinition) bool {
		return a.ShowInDetail && a.DetailTab == tab
	})
}

// ByID returns the attribute definition with the given ID.
func (e *Engine) ByID(id string) (types.AttributeDefinition, bool) {
	a, ok := e.byID[id]
	return a, ok
}

// ByKey returns the attribute definition with the given legacy field name.
func (e *Engine) ByKey(key string) (types.AttributeDefinition, bool) {
	a, ok := e.byKey[key]
	return a, ok
}

// Value resolves a product's value for the attribute with the given ID.
// An unknown attribute ID returns nil.
func (e *Engine) Value(p types.Product, attrID string) any {
	attr, ok := e.byID[attrID]
	if !ok {
		return nil
	}
	return p.AttributeValue(attr)
}

func (e *Engine) selectSorted(keep func(types.AttributeDefinition) bool) []types.AttributeDefinition {
	var out []types.AttributeDefinition
	for _, a := range e.set.Attributes {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
