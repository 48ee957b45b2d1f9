// Package literal decodes the numeric literal forms of spec.md §3.2's
// ValueAst/AnnotationValueAst sums. String/block scalar decoding is
// delegated to the front-end libraries (gopkg.in/yaml.v3, encoding/json)
// that already resolve quoting and indentation for us (see DESIGN.md,
// parser package entry); this package is left to the one thing neither
// front end decides for us: which of {integer, float, string} a bare
// scalar actually is, per spec.md §4.2's "most specific matching
// variant (integer preferred over float if lossless)" rule.
package literal

import "strconv"

// NumberKind distinguishes which ValueAst variant ParseNumber chose.
type NumberKind int

const (
	NotANumber NumberKind = iota
	IntegerKind
	FloatKind
)

// ParseNumber recognises integer and floating point literals,
// preferring the integer variant when the literal is lossless as an
// integer, per spec.md §4.2.
func ParseNumber(s string) (i int64, f float64, kind NumberKind) {
	if iv, err := strconv.ParseInt(s, 10, 64); err == nil {
		return iv, float64(iv), IntegerKind
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return 0, fv, FloatKind
	}
	return 0, 0, NotANumber
}

// LooksNumeric is a fast lookahead test used by the annotation-value
// parser (spec.md §4.2 "numeric recognition accepts integers and
// floats") to decide whether a bare, unquoted scalar should be
// attempted as a number before falling back to a string.
func LooksNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	sawDigit := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
			// allowed inside a float literal
		default:
			return false
		}
	}
	return sawDigit
}
