package parser

import "github.com/linkml-go/linkml/token"

// rawNode is the dialect-agnostic intermediate tree both the Dialect A
// (YAML-like) and Dialect B (brace/JSON-like) front ends produce. A
// single shared builder (build.go) walks this tree into the typed
// ast.SchemaAst, so the two dialects share every field-level promotion
// rule and only differ in how bytes become a rawNode tree — the same
// division of labour the teacher's YAML decoder draws between
// "decode library node" and "extract CUE syntax node".
type rawKind int

const (
	rawNull rawKind = iota
	rawScalar
	rawMapping
	rawSequence
)

type rawNode struct {
	kind rawKind
	span token.Span

	// scalar
	text    string // decoded text: quotes stripped, block dedent applied
	quoted  bool   // was this an explicitly quoted (or JSON string) scalar
	block   bool   // was this a block/multi-line scalar

	// mapping: parallel key/value slices, in source order
	keys   []rawNode
	values []*rawNode

	// sequence
	items []*rawNode
}

func (n *rawNode) isScalar() bool  { return n != nil && n.kind == rawScalar }
func (n *rawNode) isMapping() bool { return n != nil && n.kind == rawMapping }
func (n *rawNode) isSequence() bool { return n != nil && n.kind == rawSequence }
func (n *rawNode) isNull() bool    { return n == nil || n.kind == rawNull }
