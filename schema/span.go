package schema

import "github.com/linkml-go/linkml/token"

// SpanTable is the "side table keyed by element path" spec.md §4.3
// calls for: canonical values themselves carry no span, but diagnostics
// that need one (an unresolved is_a, an ImportError collision) can look
// it up by a stable path like "class:Person" or "slot:name".
type SpanTable struct {
	entries map[string]token.Span
}

func NewSpanTable() *SpanTable {
	return &SpanTable{entries: make(map[string]token.Span)}
}

// Set records the span for path, overwriting any previous entry.
func (t *SpanTable) Set(path string, span token.Span) {
	if t == nil {
		return
	}
	t.entries[path] = span
}

// Get returns the span recorded for path, if any.
func (t *SpanTable) Get(path string) (token.Span, bool) {
	if t == nil {
		return token.NoSpan, false
	}
	s, ok := t.entries[path]
	return s, ok
}

// Merge copies into t every entry of other whose path t does not
// already hold (t's own entries win); resolve uses it to fold a
// promoted import's span table into the importer's (§4.4).
func (t *SpanTable) Merge(other *SpanTable) {
	if t == nil || other == nil {
		return
	}
	for k, v := range other.entries {
		if _, exists := t.entries[k]; !exists {
			t.entries[k] = v
		}
	}
}

// Equal compares two span tables by content. Spans are diagnostics
// metadata, not schema content, so this exists only so google/go-cmp
// never has to reflect into SpanTable's unexported field when a
// *Schema ends up compared wholesale.
func (t *SpanTable) Equal(other *SpanTable) bool {
	if t == nil || other == nil {
		return t.Len() == other.Len()
	}
	if len(t.entries) != len(other.entries) {
		return false
	}
	for k, v := range t.entries {
		if ov, ok := other.entries[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Len returns the number of recorded spans.
func (t *SpanTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// ClassPath, SlotPath, etc. build the element-path keys used above;
// centralising them here keeps resolve/promote from hand-formatting
// strings in more than one place.
func ClassPath(name string) string { return "class:" + name }
func SlotPath(name string) string  { return "slot:" + name }
func TypePath(name string) string  { return "type:" + name }
func EnumPath(name string) string  { return "enum:" + name }
func SubsetPath(name string) string { return "subset:" + name }
func ClassSlotPath(class, slot string) string { return "class:" + class + ".slot:" + slot }
