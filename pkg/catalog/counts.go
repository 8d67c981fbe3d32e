package catalog

import (
	"sort"

	"github.com/wickers-data/catalog/pkg/types"
)

// ValueCount is one row of an attribute value distribution.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// UniqueValues returns the sorted distinct non-empty values of an attribute
// across the collection. Array values contribute each element. An unknown
// attribute ID returns an empty slice.
func (e *Engine) UniqueValues(products []types.Product, attrID string) []string {
	attr, ok := e.byID[attrID]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	for _, p := range products {
		value := p.AttributeValue(attr)
		if e.IsEmpty(value) {
			continue
		}
		if arr, ok := value.([]any); ok {
			for _, el := range arr {
				if !e.IsEmpty(el) {
					seen[stringify(el)] = true
				}
			}
			continue
		}
		seen[stringify(value)] = true
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ValueCounts returns the value distribution of an attribute across the
// collection, sorted by count descending (value ascending on ties).
//
// Each array element counts independently toward both its value's count
// and the shared total, so percentages are over attribute-value
// occurrences, not over products.
func (e *Engine) ValueCounts(products []types.Product, attrID string) []ValueCount {
	attr, ok := e.byID[attrID]
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	total := 0

	for _, p := range products {
		value := p.AttributeValue(attr)
		if e.IsEmpty(value) {
			continue
		}
		if arr, ok := value.([]any); ok {
			for _, el := range arr {
				if !e.IsEmpty(el) {
					counts[stringify(el)]++
					total++
				}
			}
			continue
		}
		counts[stringify(value)]++
		total++
	}

	out := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		vc := ValueCount{Value: value, Count: count}
		if total > 0 {
			vc.Percentage = float64(count) / float64(total) * 100
		}
		out = append(out, vc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
