// Package pattern implements spec.md §4.4.4's structured-pattern
// interpolation: expanding a `{name}` placeholder in a
// structured_pattern's syntax string against the merged settings map,
// by fixed-point iteration bounded by the map's size, with cycle
// detection. The promoter deliberately leaves patterns unexpanded
// (§4.3); this package is what the (external) validation engine calls
// once it has a merged schema and a concrete slot in hand.
package pattern

import (
	"regexp"

	lmlerrors "github.com/linkml-go/linkml/errors"
	"github.com/linkml-go/linkml/internal/omap"
	"github.com/linkml-go/linkml/schema"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Interpolate expands every `{name}` placeholder in syntax by looking
// `name` up in settings, repeating until no placeholder remains. The
// number of rounds is bounded by settings.Len()+1 (spec.md §4.4.4:
// "bound equal to the settings map size"); a syntax string that still
// contains a placeholder, or whose expansion revisits a string already
// seen this round, reports a PatternError rather than looping forever.
func Interpolate(syntax string, settings *omap.Map[string, string]) (string, error) {
	bound := settings.Len() + 1
	seen := map[string]bool{syntax: true}
	cur := syntax

	for i := 0; i < bound; i++ {
		if !placeholderRe.MatchString(cur) {
			return cur, nil
		}

		var missing string
		next := placeholderRe.ReplaceAllStringFunc(cur, func(m string) string {
			name := m[1 : len(m)-1]
			v, ok := settings.Get(name)
			if !ok {
				missing = name
				return m
			}
			return v
		})
		if missing != "" {
			return "", lmlerrors.Newf(lmlerrors.PatternError, syntax,
				"unresolved placeholder {%s} interpolating pattern %q", missing, syntax)
		}
		if seen[next] {
			return "", lmlerrors.Newf(lmlerrors.PatternError, syntax,
				"cycle detected interpolating pattern %q", syntax)
		}
		seen[next] = true
		cur = next
	}

	return "", lmlerrors.Newf(lmlerrors.PatternError, syntax,
		"pattern %q did not reach a fixed point within %d rounds", syntax, bound)
}

// CompileSlotPattern resolves sp against settings (if sp.Interpolated)
// and compiles the result, the "computing a final regex for a slot"
// operation spec.md §4.4.4 assigns to the validation engine.
func CompileSlotPattern(sp *schema.StructuredPattern, settings *omap.Map[string, string]) (*regexp.Regexp, error) {
	if sp == nil {
		return nil, nil
	}
	syntax := sp.Syntax
	if sp.Interpolated {
		expanded, err := Interpolate(syntax, settings)
		if err != nil {
			return nil, err
		}
		syntax = expanded
	}
	re, err := regexp.Compile(syntax)
	if err != nil {
		return nil, lmlerrors.Wrap(lmlerrors.PatternError, syntax, err)
	}
	return re, nil
}
