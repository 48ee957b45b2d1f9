package parser

import (
	yaml "gopkg.in/yaml.v3"

	lmlerrors "github.com/linkml-go/linkml/errors"
	"github.com/linkml-go/linkml/token"
)

// yamlFront turns Dialect A (indent-based YAML) source into a rawNode
// tree, using gopkg.in/yaml.v3 to do the actual indentation-sensitive
// tokenising and recovering byte offsets from the Line/Column it
// reports via a token.File — the same technique
// cue/internal/encoding/yaml/decode.go uses to give CUE syntax nodes a
// byte-accurate span from a library that only hands back line/column.
type yamlFront struct {
	file     *token.File
	filename string
}

func parseYAMLDialect(filename string, src []byte) (*rawNode, error) {
	f := token.NewFile(filename, len(src))
	f.SetLinesForContent(src)
	front := &yamlFront{file: f, filename: filename}

	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, front.wrapErr(err)
	}
	if doc.Kind == 0 {
		return &rawNode{kind: rawNull, span: f.Span(0, len(src))}, nil
	}
	return front.toRaw(&doc)
}

func (f *yamlFront) wrapErr(err error) error {
	return lmlerrors.Wrap(lmlerrors.ParseError, f.filename, err)
}

func (f *yamlFront) span(n *yaml.Node) token.Span {
	start := f.file.Offset(n.Line, n.Column)
	s := token.Span{Filename: f.filename, Start: start, End: start, Line: n.Line, Column: n.Column}
	switch n.Kind {
	case yaml.ScalarNode:
		s.End = start + len(n.Value)
	default:
		for _, c := range n.Content {
			s = s.Merge(f.span(c))
		}
		if s.End < s.Start {
			s.End = s.Start
		}
	}
	return s
}

func (f *yamlFront) toRaw(n *yaml.Node) (*rawNode, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &rawNode{kind: rawNull, span: f.span(n)}, nil
		}
		return f.toRaw(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, lmlerrors.ParseErrorAt(f.span(n), "dangling alias")
		}
		return f.toRaw(n.Alias)
	case yaml.ScalarNode:
		return f.scalar(n), nil
	case yaml.MappingNode:
		return f.mapping(n)
	case yaml.SequenceNode:
		return f.sequence(n)
	default:
		return nil, lmlerrors.ParseErrorAt(f.span(n), "unsupported YAML node")
	}
}

func (f *yamlFront) scalar(n *yaml.Node) *rawNode {
	if n.Tag == "!!null" || (n.Value == "" && n.Style == 0) {
		return &rawNode{kind: rawNull, span: f.span(n)}
	}
	block := n.Style&yaml.LiteralStyle != 0 || n.Style&yaml.FoldedStyle != 0
	quoted := n.Style&yaml.DoubleQuotedStyle != 0 || n.Style&yaml.SingleQuotedStyle != 0
	return &rawNode{
		kind:   rawScalar,
		span:   f.span(n),
		text:   n.Value,
		quoted: quoted,
		block:  block,
	}
}

func (f *yamlFront) mapping(n *yaml.Node) (*rawNode, error) {
	out := &rawNode{kind: rawMapping, span: f.span(n)}
	seen := make(map[string]token.Span, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		key := kn.Value
		if prev, ok := seen[key]; ok {
			return nil, lmlerrors.ParseErrorAt(f.span(kn),
				"duplicate key %q (first defined at %s)", key, prev)
		}
		seen[key] = f.span(kn)
		val, err := f.toRaw(vn)
		if err != nil {
			return nil, err
		}
		out.keys = append(out.keys, rawNode{kind: rawScalar, text: key, span: f.span(kn)})
		out.values = append(out.values, val)
	}
	return out, nil
}

func (f *yamlFront) sequence(n *yaml.Node) (*rawNode, error) {
	out := &rawNode{kind: rawSequence, span: f.span(n)}
	for _, item := range n.Content {
		v, err := f.toRaw(item)
		if err != nil {
			return nil, err
		}
		out.items = append(out.items, v)
	}
	return out, nil
}
