package resolve

import (
	"strings"

	"github.com/kr/pretty"

	lmlerrors "github.com/linkml-go/linkml/errors"
	"github.com/linkml-go/linkml/internal/omap"
	"github.com/linkml-go/linkml/intern"
	"github.com/linkml-go/linkml/schema"
)

// PrefixConflictPolicy resolves spec.md §9's "duplicate prefixes
// between importer/importee" open question, which §4.4.2 itself
// answers (silent-keep-importer) but §9 recommends making
// configurable.
type PrefixConflictPolicy int

const (
	// PrefixConflictKeepImporter is spec.md §4.4.2's rule: "the
	// target's existing mapping wins silently".
	PrefixConflictKeepImporter PrefixConflictPolicy = iota
	// PrefixConflictKeepImported lets a later-processed import
	// override an earlier prefix definition instead.
	PrefixConflictKeepImported
)

// mergeDecl implements spec.md §4.4.2's per-declaration-kind merge
// rule, generically over the five declaration maps (classes, slots,
// types, enums, subsets): copy names unique to src, and for a name
// present in both, collide unless the two declarations are
// structurally equal (ignoring spans).
func mergeDecl[V any](kind string, dst, src *omap.Map[string, V], equal func(a, b V) bool) error {
	var collideErr error
	src.Range(func(k string, v V) bool {
		existing, ok := dst.Get(k)
		if !ok {
			dst.Set(k, v)
			return true
		}
		if equal(existing, v) {
			return true // structurally equal: the import is a no-op for this name
		}
		diff := strings.Join(pretty.Diff(existing, v), "\n")
		collideErr = lmlerrors.Newf(lmlerrors.ImportError, k,
			"%s %q collides across imports:\n%s", kind, k, diff)
		return false
	})
	return collideErr
}

// mergePrefixes implements §4.4.2's prefix-map merge: imported
// prefixes merge by insertion; on conflict, policy decides the winner
// (default: the importer's existing mapping, per spec).
func mergePrefixes(dst, src *schema.Schema, policy PrefixConflictPolicy) {
	src.Prefixes.Range(func(k string, v schema.PrefixDefinition) bool {
		if !dst.Prefixes.Has(k) {
			dst.Prefixes.Set(k, v)
			return true
		}
		if policy == PrefixConflictKeepImported {
			dst.Prefixes.Set(k, v)
		}
		return true
	})
}

// mergeSettings implements §4.4.2's "merged like prefixes" rule for
// pattern-definition settings: target wins on conflict.
func mergeSettings(dst, src *schema.Schema) {
	src.Settings.Range(func(k, v string) bool {
		if !dst.Settings.Has(k) {
			dst.Settings.Set(k, v)
		}
		return true
	})
}

// merge folds src (an already recursively-resolved import) into dst
// (the schema being built), applying every rule in §4.4.2. Ordering
// falls out of omap.Map.Set's append-only-on-new-key behaviour applied
// to dst (already source-ordered locally) followed by src's own
// source-ordered Range: local-first, then imports in source order,
// satisfying §4.4.3's determinism requirement without extra
// bookkeeping. Metadata (title, description, version, ...) is never
// touched here, so it is never overwritten by an import, per §4.4.2.
func merge(dst, src *schema.Schema, policy PrefixConflictPolicy) error {
	if err := mergeDecl("class", dst.Classes, src.Classes, schema.EqualClass); err != nil {
		return err
	}
	if err := mergeDecl("slot", dst.Slots, src.Slots, schema.EqualSlot); err != nil {
		return err
	}
	if err := mergeDecl("type", dst.Types, src.Types, schema.EqualType); err != nil {
		return err
	}
	if err := mergeDecl("enum", dst.Enums, src.Enums, schema.EqualEnum); err != nil {
		return err
	}
	if err := mergeDecl("subset", dst.Subsets, src.Subsets, schema.EqualSubset); err != nil {
		return err
	}
	mergePrefixes(dst, src, policy)
	mergeSettings(dst, src)
	dst.Imports = appendNewSymbols(dst.Imports, src.Imports)
	dst.Spans.Merge(src.Spans)
	return nil
}

// appendNewSymbols appends the elements of add not already present in
// base, preserving add's order. schema.imports is a provenance list
// (§6.3); a diamond import graph must not duplicate an entry merged
// through two different paths.
func appendNewSymbols(base, add []intern.Symbol) []intern.Symbol {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s.String()] = true
	}
	for _, s := range add {
		if !seen[s.String()] {
			seen[s.String()] = true
			base = append(base, s)
		}
	}
	return base
}
