package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/linkml-go/linkml/ast"
)

func TestParseFileYAMLBasics(t *testing.T) {
	src := []byte(`
id: https://example.org/schema/example
name: example
description: a small test schema
default_range: string

prefixes:
  linkml: https://w3id.org/linkml/
  ex:
    prefix_prefix: ex
    prefix_reference: https://example.org/ex/

classes:
  Person:
    description: a person
    attributes:
      name:
        range: string
        required: true
      age:
        range: integer

slots:
  id:
    identifier: true
    range: string

enums:
  Status:
    permissible_values:
      ACTIVE:
        description: currently active
      RETIRED: {}
`)
	schema, err := ParseFile("example.yaml", src)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(schema.ID.Value, "https://example.org/schema/example"))
	qt.Assert(t, qt.Equals(schema.Name.Value, "example"))
	qt.Assert(t, qt.IsTrue(schema.Classes.Has("Person")))

	person, _ := schema.Classes.Get("Person")
	nameSlot, ok := person.Value.Attributes.Get("name")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(nameSlot.Value.Required != nil && nameSlot.Value.Required.Value))

	prefixes := schema.Prefixes.Keys()
	qt.Assert(t, qt.DeepEquals(prefixes, []string{"linkml", "ex"}))

	status, ok := schema.Enums.Get("Status")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(status.Value.PermissibleValues.Len(), 2))
}

func TestParseFileDuplicateKeyRejected(t *testing.T) {
	src := []byte(`
id: https://example.org/schema/dup
name: dup
name: dup-again
`)
	_, err := ParseFile("dup.yaml", src)
	qt.Assert(t, qt.ErrorMatches(err, `.*duplicate key "name".*`))
}

func TestParseFileJSONBasics(t *testing.T) {
	src := []byte(`{
		"id": "https://example.org/schema/example",
		"name": "example",
		"classes": {
			"Thing": {
				"attributes": {
					"count": { "range": "integer" }
				}
			}
		}
	}`)
	schema, err := ParseFile("example.json", src)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(schema.Name.Value, "example"))
	thing, ok := schema.Classes.Get("Thing")
	qt.Assert(t, qt.IsTrue(ok))
	count, ok := thing.Value.Attributes.Get("count")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(count.Value.Range.Value, "integer"))
}

func TestDetectDialect(t *testing.T) {
	qt.Assert(t, qt.Equals(DetectDialect("x.yaml", nil), DialectYAML))
	qt.Assert(t, qt.Equals(DetectDialect("x.json", nil), DialectJSON))
	qt.Assert(t, qt.Equals(DetectDialect("x", []byte("  { }")), DialectJSON))
	qt.Assert(t, qt.Equals(DetectDialect("x", []byte("a: b")), DialectYAML))
}

// The parser itself does not enforce id/name presence: spec.md §4.3
// assigns that structural check to the promoter (C3), so a document
// missing one or both still produces a well-formed AST here.
func TestParseFileDoesNotEnforceRequiredFields(t *testing.T) {
	schema, err := ParseFile("noid.yaml", []byte("name: onlyname\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(schema.ID == nil))
	qt.Assert(t, qt.Equals(schema.Name.Value, "onlyname"))
}

func TestParseFileValueKindPreference(t *testing.T) {
	src := []byte(`
id: https://example.org/schema/values
name: values
types:
  Age:
    minimum_value: 0
    maximum_value: 3.5
`)
	schema, err := ParseFile("values.yaml", src)
	qt.Assert(t, qt.IsNil(err))
	age, ok := schema.Types.Get("Age")
	qt.Assert(t, qt.IsTrue(ok))
	_, isInt := age.Value.MinimumValue.Value.(ast.IntegerValue)
	qt.Assert(t, qt.IsTrue(isInt))
	_, isFloat := age.Value.MaximumValue.Value.(ast.NumberValue)
	qt.Assert(t, qt.IsTrue(isFloat))
}
