package parser

import (
	"bytes"
	"encoding/json"

	lmlerrors "github.com/linkml-go/linkml/errors"
	"github.com/linkml-go/linkml/token"
)

// jsonFront turns Dialect B (brace/bracket) source into a rawNode
// tree. No pack library exposes per-token source positions for JSON
// the way gopkg.in/yaml.v3 does for YAML (DESIGN.md), so this walks
// encoding/json.Decoder's token stream directly and uses
// Decoder.InputOffset() (which does give exact byte offsets, just not
// line/column) to build spans; line/column are then derived from the
// same token.File line table used by the YAML front end.
type jsonFront struct {
	file     *token.File
	filename string
}

func parseJSONDialect(filename string, src []byte) (*rawNode, error) {
	f := token.NewFile(filename, len(src))
	f.SetLinesForContent(src)
	front := &jsonFront{file: f, filename: filename}

	if len(bytes.TrimSpace(src)) == 0 {
		return &rawNode{kind: rawNull, span: f.Span(0, len(src))}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()
	node, err := front.parseValue(dec)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (f *jsonFront) wrapErr(err error) error {
	return lmlerrors.Wrap(lmlerrors.ParseError, f.filename, err)
}

func (f *jsonFront) spanFor(start, end int64) token.Span {
	pos := f.file.Position(int(start))
	return token.Span{Filename: f.filename, Start: int(start), End: int(end), Line: pos.Line, Column: pos.Column}
}

func (f *jsonFront) parseValue(dec *json.Decoder) (*rawNode, error) {
	start := dec.InputOffset()
	tok, err := dec.Token()
	if err != nil {
		return nil, f.wrapErr(err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return f.parseObject(dec, start)
		case '[':
			return f.parseArray(dec, start)
		default:
			return nil, lmlerrors.ParseErrorAt(f.spanFor(start, start), "unexpected delimiter %q", t)
		}
	case string:
		end := dec.InputOffset()
		return &rawNode{kind: rawScalar, text: t, quoted: true, span: f.spanFor(start, end)}, nil
	case json.Number:
		end := dec.InputOffset()
		return &rawNode{kind: rawScalar, text: string(t), span: f.spanFor(start, end)}, nil
	case bool:
		end := dec.InputOffset()
		text := "false"
		if t {
			text = "true"
		}
		return &rawNode{kind: rawScalar, text: text, span: f.spanFor(start, end)}, nil
	case nil:
		end := dec.InputOffset()
		return &rawNode{kind: rawNull, span: f.spanFor(start, end)}, nil
	default:
		return nil, lmlerrors.ParseErrorAt(f.spanFor(start, start), "unsupported JSON token %#v", tok)
	}
}

func (f *jsonFront) parseObject(dec *json.Decoder, start int64) (*rawNode, error) {
	out := &rawNode{kind: rawMapping}
	seen := make(map[string]token.Span)
	for dec.More() {
		keyStart := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, f.wrapErr(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, lmlerrors.ParseErrorAt(f.spanFor(keyStart, keyStart), "expected an object key, got %#v", tok)
		}
		keySpan := f.spanFor(keyStart, dec.InputOffset())
		if prev, ok := seen[key]; ok {
			return nil, lmlerrors.ParseErrorAt(keySpan, "duplicate key %q (first defined at %s)", key, prev)
		}
		seen[key] = keySpan

		val, err := f.parseValue(dec)
		if err != nil {
			return nil, err
		}
		out.keys = append(out.keys, rawNode{kind: rawScalar, text: key, span: keySpan})
		out.values = append(out.values, val)
	}
	endTok, err := dec.Token() // closing '}'
	if err != nil {
		return nil, f.wrapErr(err)
	}
	if d, ok := endTok.(json.Delim); !ok || d != '}' {
		return nil, lmlerrors.ParseErrorAt(f.spanFor(start, dec.InputOffset()), "expected '}', got %#v", endTok)
	}
	out.span = f.spanFor(start, dec.InputOffset())
	return out, nil
}

func (f *jsonFront) parseArray(dec *json.Decoder, start int64) (*rawNode, error) {
	out := &rawNode{kind: rawSequence}
	for dec.More() {
		v, err := f.parseValue(dec)
		if err != nil {
			return nil, err
		}
		out.items = append(out.items, v)
	}
	endTok, err := dec.Token() // closing ']'
	if err != nil {
		return nil, f.wrapErr(err)
	}
	if d, ok := endTok.(json.Delim); !ok || d != ']' {
		return nil, lmlerrors.ParseErrorAt(f.spanFor(start, dec.InputOffset()), "expected ']', got %#v", endTok)
	}
	out.span = f.spanFor(start, dec.InputOffset())
	return out, nil
}
