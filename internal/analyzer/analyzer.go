package analyzer

import (
	"github.com/mcncl/json2table/internal/models"
)

// Layout is the way an array is laid out in a table cell.
type Layout int

const (
	// LayoutEmpty renders nothing.
	LayoutEmpty Layout = iota
	// LayoutVertical renders one table with a shared header row and a row
	// per element.
	LayoutVertical
	// LayoutStacked renders every element as its own table, one after another.
	LayoutStacked
	// LayoutList renders each element's text followed by a line break.
	LayoutList
)

func (l Layout) String() string {
	switch l {
	case LayoutEmpty:
		return "empty"
	case LayoutVertical:
		return "vertical"
	case LayoutStacked:
		return "stacked"
	case LayoutList:
		return "list"
	default:
		return "unknown"
	}
}

// ClassifyArray picks the layout for items. keys is only set for
// LayoutVertical and holds the column order.
//
// The first element decides: an object leads to a vertical table when
// UniformKeys agrees and to stacked tables otherwise, even when later
// elements are not objects. Anything else is listed.
func ClassifyArray(items models.Array) (Layout, []string) {
	if len(items) == 0 {
		return LayoutEmpty, nil
	}
	if _, ok := items[0].(models.Object); !ok {
		return LayoutList, nil
	}
	if keys, ok := UniformKeys(items); ok {
		return LayoutVertical, keys
	}
	return LayoutStacked, nil
}

// UniformKeys reports whether every element of items is an object and all
// of them have the same key set, ignoring order. The returned keys are the
// first object's keys in insertion order.
func UniformKeys(items models.Array) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}

	var baseline map[string]struct{}
	for _, item := range items {
		obj, ok := item.(models.Object)
		if !ok {
			return nil, false
		}
		keys := keySet(obj)
		if baseline == nil {
			baseline = keys
			continue
		}
		if !sameKeys(baseline, keys) {
			return nil, false
		}
	}

	return items[0].(models.Object).Keys(), true
}

func keySet(obj models.Object) map[string]struct{} {
	set := make(map[string]struct{}, len(obj))
	for _, m := range obj {
		set[m.Key] = struct{}{}
	}
	return set
}

func sameKeys(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
