package parser

import lmlerrors "github.com/linkml-go/linkml/errors"

// ParseRawFile decodes src into plain Go values (map[string]any for
// mappings, []any for sequences, string for scalars) rather than a
// *ast.SchemaAst. Instance documents (spec.md §4.5) don't share the
// schema's shape, so C5 reuses the two dialect front ends through this
// path instead of buildSchema, the same way build.go reuses them for
// SchemaAst — one decoder, two different tree shapes on top of it.
func ParseRawFile(filename string, src []byte) (any, error) {
	return ParseRawFileDialect(filename, src, DetectDialect(filename, src))
}

// ParseRawFileDialect is ParseRawFile with an explicit dialect.
func ParseRawFileDialect(filename string, src []byte, dialect Dialect) (any, error) {
	var (
		root *rawNode
		err  error
	)
	switch dialect {
	case DialectJSON:
		root, err = parseJSONDialect(filename, src)
	case DialectYAML, DialectUnknown:
		root, err = parseYAMLDialect(filename, src)
	default:
		return nil, lmlerrors.New(lmlerrors.ParseError, filename, "unknown dialect")
	}
	if err != nil {
		return nil, err
	}
	return toPlain(root), nil
}

func toPlain(n *rawNode) any {
	switch {
	case n.isNull():
		return nil
	case n.isScalar():
		return n.text
	case n.isSequence():
		out := make([]any, len(n.items))
		for i, it := range n.items {
			out[i] = toPlain(it)
		}
		return out
	case n.isMapping():
		out := make(map[string]any, len(n.keys))
		for i, k := range n.keys {
			out[k.text] = toPlain(n.values[i])
		}
		return out
	default:
		return nil
	}
}
