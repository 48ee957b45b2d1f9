package promote

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/linkml-go/linkml/parser"
	"github.com/linkml-go/linkml/schema"
)

func TestPromoteBasics(t *testing.T) {
	src := `
id: https://example.org/schema/ex
name: ex
title: Example Schema
default_range: string
prefixes:
  linkml: https://w3id.org/linkml/
classes:
  Person:
    description: a person
    attributes:
      name:
        range: string
        required: true
slots:
  id:
    identifier: true
enums:
  Status:
    permissible_values:
      ACTIVE: {}
      RETIRED:
        description: no longer active
        meaning: example:retired
`
	doc, err := parser.ParseFile("ex.yaml", []byte(src))
	qt.Assert(t, qt.IsNil(err))

	p := New()
	sch, err := p.Promote(doc)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.Equals(sch.ID, "https://example.org/schema/ex"))
	qt.Assert(t, qt.Equals(sch.Name, "ex"))
	qt.Assert(t, qt.IsTrue(sch.DefaultRange != nil && sch.DefaultRange.String() == "string"))

	person, ok := sch.Classes.Get("Person")
	qt.Assert(t, qt.IsTrue(ok))
	nameSlot, ok := person.Attributes.Get("name")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(nameSlot.Required))

	status, ok := sch.Enums.Get("Status")
	qt.Assert(t, qt.IsTrue(ok))
	active, ok := status.PermissibleValues.Get("ACTIVE")
	qt.Assert(t, qt.IsTrue(ok))
	_, isSimple := active.(schema.SimplePermissibleValue)
	qt.Assert(t, qt.IsTrue(isSimple))

	retired, ok := status.PermissibleValues.Get("RETIRED")
	qt.Assert(t, qt.IsTrue(ok))
	complex, isComplex := retired.(schema.ComplexPermissibleValue)
	qt.Assert(t, qt.IsTrue(isComplex))
	qt.Assert(t, qt.IsTrue(complex.Meaning != nil && complex.Meaning.String() == "example:retired"))
}

func TestPromoteAcceptsCompleteSchema(t *testing.T) {
	doc, err := parser.ParseFileDialect("complete.yaml", []byte("name: onlyname\nid: https://example.org/x\n"), parser.DialectYAML)
	qt.Assert(t, qt.IsNil(err))
	sch, err := New().Promote(doc)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(sch.ID, "https://example.org/x"))
	qt.Assert(t, qt.Equals(sch.Name, "onlyname"))
}

// The promoter, not the parser, enforces id/name presence (spec.md
// §4.3): a document missing either fails here with a
// SchemaValidationError even though parser.ParseFile accepted it.
func TestPromoteRejectsMissingIDOrName(t *testing.T) {
	doc, err := parser.ParseFile("noid.yaml", []byte("name: onlyname\n"))
	qt.Assert(t, qt.IsNil(err))
	_, err = New().Promote(doc)
	qt.Assert(t, qt.ErrorMatches(err, `.*'id'.*required.*`))

	doc, err = parser.ParseFile("noname.yaml", []byte("id: https://example.org/x\n"))
	qt.Assert(t, qt.IsNil(err))
	_, err = New().Promote(doc)
	qt.Assert(t, qt.ErrorMatches(err, `.*'name'.*required.*`))
}

func TestPromoteInterningSharesSymbolsAcrossCalls(t *testing.T) {
	pool := New().Pool()
	p := NewWithPool(pool)

	docA, err := parser.ParseFile("a.yaml", []byte(`
id: https://example.org/schema/a
name: a
classes:
  Shared: {}
`))
	qt.Assert(t, qt.IsNil(err))
	schA, err := p.Promote(docA)
	qt.Assert(t, qt.IsNil(err))

	docB, err := parser.ParseFile("b.yaml", []byte(`
id: https://example.org/schema/b
name: b
classes:
  Shared: {}
`))
	qt.Assert(t, qt.IsNil(err))
	schB, err := p.Promote(docB)
	qt.Assert(t, qt.IsNil(err))

	sharedA, _ := schA.Classes.Get("Shared")
	sharedB, _ := schB.Classes.Get("Shared")
	qt.Assert(t, qt.IsTrue(sharedA.Name == sharedB.Name))
}

func TestEqualIgnoresOrderAndSpans(t *testing.T) {
	docA, err := parser.ParseFile("a.yaml", []byte(`
id: https://example.org/schema/a
name: a
classes:
  T:
    attributes:
      x: { range: string }
      y: { range: integer }
`))
	qt.Assert(t, qt.IsNil(err))
	docB, err := parser.ParseFile("b.yaml", []byte(`
id: https://example.org/schema/b
name: b
classes:
  T:
    attributes:
      y: { range: integer }
      x: { range: string }
`))
	qt.Assert(t, qt.IsNil(err))

	p := New()
	schA, err := p.Promote(docA)
	qt.Assert(t, qt.IsNil(err))
	schB, err := p.Promote(docB)
	qt.Assert(t, qt.IsNil(err))

	classA, _ := schA.Classes.Get("T")
	classB, _ := schB.Classes.Get("T")
	qt.Assert(t, qt.IsTrue(schema.EqualClass(classA, classB)))
}
