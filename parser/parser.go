// Package parser implements C2 (spec.md §4.2): turning schema source
// text into an *ast.SchemaAst. Two dialect front ends (yaml.go for
// indent-based YAML, json.go for brace/bracket JSON) each produce the
// same intermediate rawNode tree; build.go promotes that tree into the
// typed AST exactly once, regardless of which dialect produced it.
package parser

import (
	"strings"

	"github.com/linkml-go/linkml/ast"
	lmlerrors "github.com/linkml-go/linkml/errors"
)

// Dialect names the concrete source syntax a document was written in
// (spec.md §4.1 "Dialect A" / "Dialect B").
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectYAML
	DialectJSON
)

func (d Dialect) String() string {
	switch d {
	case DialectYAML:
		return "yaml"
	case DialectJSON:
		return "json"
	default:
		return "unknown"
	}
}

// DetectDialect implements spec.md §6.1's dialect selection: the file
// extension decides when it is recognised, and content sniffing (the
// first non-blank byte) is the fallback for extension-less references
// such as a bare URL path component or an in-memory buffer.
func DetectDialect(filename string, src []byte) Dialect {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return DialectYAML
	case strings.HasSuffix(lower, ".json"):
		return DialectJSON
	}
	trimmed := strings.TrimLeft(string(src), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return DialectJSON
	}
	return DialectYAML
}

// ParseFile parses src as a schema document, selecting a dialect per
// DetectDialect and promoting the result into a typed *ast.SchemaAst.
func ParseFile(filename string, src []byte) (*ast.SchemaAst, error) {
	return ParseFileDialect(filename, src, DetectDialect(filename, src))
}

// ParseFileDialect parses src under an explicitly chosen dialect,
// bypassing DetectDialect — used by callers (e.g. an HTTP fetch that
// already knows the Content-Type) that have a dialect from elsewhere.
func ParseFileDialect(filename string, src []byte, dialect Dialect) (*ast.SchemaAst, error) {
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
	schema, err := buildSchema(root)
	if err != nil {
		return nil, err
	}
	if schema.SourceFile == nil {
		schema.SourceFile = ptrSpan(filename, schema.Span)
	}
	return schema, nil
}
