package schema

import "github.com/google/go-cmp/cmp"

// Equal implements spec.md §4.4.2's merge-collision test: two
// declarations of the same name collide unless they are "structurally
// equal (by value, ignoring spans)". Declaration types carry no spans,
// and Schema's Spans side table is excluded by ignoreSpans; intern.Symbol
// and *omap.Map both expose an Equal method go-cmp picks up
// automatically, so symbol identity compares by text and ordered maps
// compare by key/value content rather than insertion order.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, ignoreSpans)
}

// ignoreSpans treats any two span tables as equal, so a *Schema
// compared wholesale is compared by content only.
var ignoreSpans = cmp.Comparer(func(x, y *SpanTable) bool { return true })

// EqualClass, EqualSlot, EqualType, EqualEnum, EqualSubset are typed
// convenience wrappers for the declaration kinds resolve's merge needs
// to collision-check (§4.4.2).
func EqualClass(a, b Class) bool   { return cmp.Equal(a, b) }
func EqualSlot(a, b Slot) bool     { return cmp.Equal(a, b) }
func EqualType(a, b Type) bool     { return cmp.Equal(a, b) }
func EqualEnum(a, b Enum) bool     { return cmp.Equal(a, b) }
func EqualSubset(a, b Subset) bool { return cmp.Equal(a, b) }
