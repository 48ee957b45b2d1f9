package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/linkml-go/linkml/parser"
	"github.com/linkml-go/linkml/promote"
	"github.com/linkml-go/linkml/schema"
)

// TestMarshalYAMLRoundTrips exercises spec.md §8's "Round-trip &
// boundary" property: parsing a schema, emitting its canonical form,
// re-serialising, and reparsing yields a canonical value equal to the
// first (modulo spans: schema.Equal ignores the Spans side table).
func TestMarshalYAMLRoundTrips(t *testing.T) {
	src := []byte(`
id: https://example.org/test
name: test
title: A test schema
default_prefix: ex
prefixes:
  ex:
    prefix_prefix: ex
    prefix_reference: https://example.org/
classes:
  Person:
    description: a person
    slots:
      - name
slots:
  name:
    description: a person's name
    range: string
    required: true
enums:
  Status:
    permissible_values:
      active:
        text: active
        description: currently active
      retired: {}
`)

	doc1, err := parser.ParseFile("schema.yaml", src)
	require.NoError(t, err)
	sch1, err := promote.New().Promote(doc1)
	require.NoError(t, err)

	out, err := yaml.Marshal(sch1)
	require.NoError(t, err)

	doc2, err := parser.ParseFile("schema.yaml", out)
	require.NoError(t, err)
	sch2, err := promote.New().Promote(doc2)
	require.NoError(t, err)

	assert.True(t, schema.Equal(*sch1, *sch2), "re-parsed schema should equal the original:\n%s", out)
}
