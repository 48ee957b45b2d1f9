// Package omap implements a small insertion-order-preserving map,
// used throughout ast and schema wherever spec.md calls for an
// "ordered map" (§3.2, §3.4, §4.4.3, §9). Go has no builtin analogue
// of an IndexMap; this is the minimal generic type that fills the gap.
package omap

import (
	"reflect"

	"gopkg.in/yaml.v3"
)

// Map is an insertion-order-preserving map from K to V. The zero value
// is not usable; use New.
type Map[K comparable, V any] struct {
	order []K
	items map[K]V
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{items: make(map[K]V)}
}

// Set inserts or updates the value for k. Updating an existing key
// does not change its position in iteration order.
func (m *Map[K, V]) Set(k K, v V) {
	if _, ok := m.items[k]; !ok {
		m.order = append(m.order, k)
	}
	m.items[k] = v
}

// Get returns the value for k and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.items[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.items[k]
	return ok
}

// Delete removes k, if present.
func (m *Map[K, V]) Delete(k K) {
	if _, ok := m.items[k]; !ok {
		return
	}
	delete(m.items, k)
	for i, key := range m.order {
		if key == k {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Range calls fn for every entry in insertion order, stopping early if
// fn returns false.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.order {
		if !fn(k, m.items[k]) {
			return
		}
	}
}

// Equal reports whether m and other hold the same set of keys mapped
// to deeply-equal values. Order is deliberately ignored: spec.md
// §4.4.2's merge-collision rule asks whether two declarations are
// "structurally equal (by value, ignoring spans)", not whether they
// were declared in the same order. google/go-cmp picks this method up
// automatically wherever a *Map[K, V] field is compared.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	if m == nil || other == nil {
		return m.Len() == other.Len()
	}
	if len(m.items) != len(other.items) {
		return false
	}
	for k, v := range m.items {
		ov, ok := other.items[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// MarshalYAML renders m as a mapping node with keys in insertion
// order, so round-tripping a canonical schema through YAML preserves
// the source order spec.md §9 calls out as significant for
// permissible_values (and, by the same rule, every other ordered map).
// gopkg.in/yaml.v3's map marshaling otherwise sorts keys, which would
// silently discard that order on every re-serialisation.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}
	for _, k := range m.order {
		kn := &yaml.Node{}
		if err := kn.Encode(k); err != nil {
			return nil, err
		}
		vn := &yaml.Node{}
		if err := vn.Encode(m.items[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, kn, vn)
	}
	return node, nil
}

// Values returns the values in insertion order.
func (m *Map[K, V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out
}
