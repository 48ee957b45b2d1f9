// Package intern implements the append-only string interner spec.md
// §3.3 and §9 call for: "identifiers that recur thousands of times
// (names, prefixes, ranges) must be interned; expose them as opaque
// handles that compare by reference to make map lookup O(1)
// amortised."
//
// No example repo or common ecosystem library offers a reusable
// string-interning component for this; DESIGN.md records why stdlib
// (a mutex-guarded map[string]*string) is the grounded choice
// here rather than a fallback.
package intern

import "sync"

// Symbol is an opaque interned string handle. Two Symbols from the same
// Pool are == iff their underlying strings are equal; == is a pointer
// compare, not a string compare (use Equal to compare by text).
type Symbol struct {
	s *string
}

// String returns the interned string.
func (sym Symbol) String() string {
	if sym.s == nil {
		return ""
	}
	return *sym.s
}

// IsZero reports whether sym is the zero Symbol (never interned).
func (sym Symbol) IsZero() bool { return sym.s == nil }

// MarshalYAML renders a Symbol as its plain string, so a canonical
// schema re-serialises to the same text an un-interned field would
// (SPEC_FULL.md ADDENDUM C's canonical-form round-trip test).
func (sym Symbol) MarshalYAML() (any, error) { return sym.String(), nil }

// Equal compares by string value, not by pointer: two Symbols interned
// from different Pools (e.g. two independently promoted schemas, before
// merge) are equal iff their text matches. google/go-cmp picks this
// method up automatically wherever a Symbol is compared.
func (sym Symbol) Equal(other Symbol) bool { return sym.String() == other.String() }

// Pool is an append-only, concurrency-safe string interner. The zero
// value is ready to use.
type Pool struct {
	mu   sync.RWMutex
	data map[string]*string
}

// NewPool creates an empty interning pool.
func NewPool() *Pool {
	return &Pool{data: make(map[string]*string)}
}

// Intern returns the Symbol for s, reusing an existing entry if one
// exists.
func (p *Pool) Intern(s string) Symbol {
	p.mu.RLock()
	if existing, ok := p.data[s]; ok {
		p.mu.RUnlock()
		return Symbol{s: existing}
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.data[s]; ok {
		return Symbol{s: existing}
	}
	if p.data == nil {
		p.data = make(map[string]*string)
	}
	cp := s
	p.data[s] = &cp
	return Symbol{s: &cp}
}

// Len returns the number of distinct interned strings, for
// diagnostics/tests.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.data)
}
