package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/linkml-go/linkml/ast"
)

func TestBuildSchemaComplexPrefix(t *testing.T) {
	src := []byte(`
id: https://example.org/schema/prefixes
name: prefixes
prefixes:
  simple: https://example.org/simple/
  complex:
    prefix_prefix: complex
    prefix_reference: https://example.org/complex/
`)
	schema, err := ParseFile("prefixes.yaml", src)
	qt.Assert(t, qt.IsNil(err))

	simple, ok := schema.Prefixes.Get("simple")
	qt.Assert(t, qt.IsTrue(ok))
	_, isSimple := simple.Value.(ast.SimplePrefixAst)
	qt.Assert(t, qt.IsTrue(isSimple))

	complex, ok := schema.Prefixes.Get("complex")
	qt.Assert(t, qt.IsTrue(ok))
	cv, isComplex := complex.Value.(ast.ComplexPrefixAst)
	qt.Assert(t, qt.IsTrue(isComplex))
	qt.Assert(t, qt.Equals(cv.Prefix, "complex"))
	qt.Assert(t, qt.Equals(cv.Reference, "https://example.org/complex/"))
}

func TestBuildSchemaClassRulesAndUniqueKeys(t *testing.T) {
	src := []byte(`
id: https://example.org/schema/rules
name: rules
classes:
  Widget:
    attributes:
      sku:
        range: string
      serial:
        range: string
    unique_keys:
      sku_key:
        unique_key_slots:
          - sku
    if_required:
      sku:
        then_required:
          - serial
    rules:
      - preconditions:
          sku: required
        postconditions:
          serial: required
`)
	schema, err := ParseFile("rules.yaml", src)
	qt.Assert(t, qt.IsNil(err))

	widget, ok := schema.Classes.Get("Widget")
	qt.Assert(t, qt.IsTrue(ok))

	uk, ok := widget.Value.UniqueKeys.Get("sku_key")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(uk.Value.UniqueKeySlots), 1))
	qt.Assert(t, qt.Equals(uk.Value.UniqueKeySlots[0].Value, "sku"))

	ir, ok := widget.Value.IfRequired.Get("sku")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(ir.Value.ThenRequired), 1))
	qt.Assert(t, qt.Equals(ir.Value.ThenRequired[0].Value, "serial"))

	qt.Assert(t, qt.Equals(len(widget.Value.Rules), 1))
	qt.Assert(t, qt.Equals(widget.Value.Rules[0].Value.Preconditions.Len(), 1))
}

func TestBuildSchemaAnnotationsAndRecursionOptions(t *testing.T) {
	src := []byte(`
id: https://example.org/schema/ann
name: ann
classes:
  Node:
    recursion_options:
      use_box: true
      max_depth: 5
    annotations:
      tag: v1
      count: 3
      active: true
`)
	schema, err := ParseFile("ann.yaml", src)
	qt.Assert(t, qt.IsNil(err))

	node, ok := schema.Classes.Get("Node")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(node.Value.RecursionOptions != nil))
	qt.Assert(t, qt.IsTrue(node.Value.RecursionOptions.Value.UseBox))
	qt.Assert(t, qt.IsTrue(node.Value.RecursionOptions.Value.MaxDepth != nil && *node.Value.RecursionOptions.Value.MaxDepth == 5))

	ann := node.Value.Annotations
	qt.Assert(t, qt.IsTrue(ann != nil))
	tag, ok := ann.Value.Entries.Get("tag")
	qt.Assert(t, qt.IsTrue(ok))
	_, isString := tag.Value.(ast.AnnotationString)
	qt.Assert(t, qt.IsTrue(isString))

	active, ok := ann.Value.Entries.Get("active")
	qt.Assert(t, qt.IsTrue(ok))
	b, isBool := active.Value.(ast.AnnotationBool)
	qt.Assert(t, qt.IsTrue(isBool))
	qt.Assert(t, qt.IsTrue(bool(b)))
}
