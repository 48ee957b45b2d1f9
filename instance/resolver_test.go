package instance

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkml-go/linkml/intern"
	"github.com/linkml-go/linkml/schema"
	"github.com/linkml-go/linkml/source"
)

func symbolOf(pool *intern.Pool, s string) intern.Symbol { return pool.Intern(s) }

// TestGetValidIDsForSlot mirrors spec.md §8 seed test 4: a slot ranged
// over an instance-bound class ISO3166Entity, backed by an /instance
// import whose tail segment is the snake_case iso_3166, and an
// on-disk file iso_3166.yaml per §6.5's convention.
func TestGetValidIDsForSlot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "iso_3166.yaml"), []byte(`
instances:
  - id: US
    name: United States
  - id: GB
    name: United Kingdom
  - id: FR
    name: France
`), 0o644))

	pool := intern.NewPool()
	sch := schema.NewSchema()
	sch.Imports = []intern.Symbol{symbolOf(pool, "iso_3166/instance")}

	r := NewResolver(source.NewReader(source.Config{SearchPaths: []string{dir}}))
	rangeClass := symbolOf(pool, "ISO3166Entity")
	slot := schema.Slot{
		Name:            symbolOf(pool, "identifier"),
		Range:           &rangeClass,
		RangeKind:       schema.RangeKindInstance,
		RangeProperties: []string{"id"},
	}

	ids, err := r.GetValidIDsForSlot(context.Background(), sch, slot)
	require.NoError(t, err)
	assert.Equal(t, []string{"US", "GB", "FR"}, ids)

	ok, err := r.ValidateInstanceValue(context.Background(), "US", sch, slot)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ValidateInstanceValue(context.Background(), "XX", sch, slot)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.ValidateInstanceValue(context.Background(), "", sch, slot)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetValidIDsForSlotNotInstanceBound(t *testing.T) {
	pool := intern.NewPool()
	sch := schema.NewSchema()
	r := NewResolver(source.NewReader(source.Config{}))

	rangeClass := symbolOf(pool, "PlainString")
	slot := schema.Slot{RangeKind: schema.RangeKindUnspecified, Range: &rangeClass}

	ids, err := r.GetValidIDsForSlot(context.Background(), sch, slot)
	require.NoError(t, err)
	assert.Nil(t, ids)

	ok, err := r.ValidateInstanceValue(context.Background(), "anything", sch, slot)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetValidIDsForSlotMissingImportErrors(t *testing.T) {
	pool := intern.NewPool()
	sch := schema.NewSchema()
	r := NewResolver(source.NewReader(source.Config{}))

	rangeClass := symbolOf(pool, "Missing")
	slot := schema.Slot{RangeKind: schema.RangeKindInstance, Range: &rangeClass}

	_, err := r.GetValidIDsForSlot(context.Background(), sch, slot)
	require.Error(t, err)
}

func TestLoadInstanceIDsSkipsAndWarnsOnMissingField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "countries.yaml"), []byte(`
instances:
  - id: US
  - name: no id here
  - id: GB
`), 0o644))

	pool := intern.NewPool()
	sch := schema.NewSchema()
	sch.Imports = []intern.Symbol{symbolOf(pool, "countries/instance")}

	r := NewResolver(source.NewReader(source.Config{SearchPaths: []string{dir}}))
	rangeClass := symbolOf(pool, "Country")
	slot := schema.Slot{RangeKind: schema.RangeKindInstance, Range: &rangeClass, RangeProperties: []string{"id"}}

	ids, err := r.GetValidIDsForSlot(context.Background(), sch, slot)
	require.NoError(t, err)
	assert.Equal(t, []string{"US", "GB"}, ids)
	assert.Len(t, r.Warnings(), 1)
	assert.Contains(t, r.Warnings()[0], "missing field")
}

func TestGetValidIDsForSlotEmptyListRejectsEverything(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("instances: []\n"), 0o644))

	pool := intern.NewPool()
	sch := schema.NewSchema()
	sch.Imports = []intern.Symbol{symbolOf(pool, "empty/instance")}

	r := NewResolver(source.NewReader(source.Config{SearchPaths: []string{dir}}))
	rangeClass := symbolOf(pool, "Empty")
	slot := schema.Slot{RangeKind: schema.RangeKindInstance, Range: &rangeClass}

	ids, err := r.GetValidIDsForSlot(context.Background(), sch, slot)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	ok, err := r.ValidateInstanceValue(context.Background(), "anything", sch, slot)
	require.NoError(t, err)
	assert.False(t, ok)
}
