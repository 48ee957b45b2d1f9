package load

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// TestLoadMinimalSchema mirrors spec.md §8 seed test 1.
func TestLoadMinimalSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	writeFile(t, path, "id: https://example.org/test\nname: test\n")

	loaded, err := Load(context.Background(), path, Config{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/test", loaded.Schema.ID)
	assert.Equal(t, "test", loaded.Schema.Name)
	assert.Equal(t, 0, loaded.Schema.Classes.Len())
	assert.Equal(t, 0, loaded.Schema.Slots.Len())
	assert.NotNil(t, loaded.Instances)
}

// TestLoadPrefixedImport mirrors spec.md §8 seed test 2.
func TestLoadPrefixedImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b", "schema.yaml"), `
id: https://example.org/imported
name: imported
classes:
  Imported:
    description: from the import
`)
	rootSchema := filepath.Join(root, "root.yaml")
	writeFile(t, rootSchema, `
id: https://example.org/root
name: root
imports:
  - proj:a/b/schema.yaml
`)

	loaded, err := Load(context.Background(), rootSchema, Config{
		PrefixMap: map[string]string{"proj": root},
	})
	require.NoError(t, err)
	assert.True(t, loaded.Schema.Classes.Has("Imported"))

	found := false
	for _, sym := range loaded.Schema.Imports {
		if sym.String() == "proj:a/b/schema.yaml" {
			found = true
		}
	}
	assert.True(t, found, "merged schema.imports should retain the original import reference")
}

func TestLoadAllIndependentRoots(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.yaml")
	pathB := filepath.Join(dir, "b.yaml")
	writeFile(t, pathA, "id: https://example.org/a\nname: a\n")
	writeFile(t, pathB, "id: https://example.org/b\nname: b\n")

	loadedAll, err := LoadAll(context.Background(), []string{pathA, pathB}, Config{})
	require.NoError(t, err)
	require.Len(t, loadedAll, 2)
	assert.Equal(t, "https://example.org/a", loadedAll[0].Schema.ID)
	assert.Equal(t, "https://example.org/b", loadedAll[1].Schema.ID)
}

func TestLoadAllFailsFastOnError(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.yaml")
	writeFile(t, pathA, "id: https://example.org/a\nname: a\n")

	_, err := LoadAll(context.Background(), []string{pathA, filepath.Join(dir, "missing.yaml")}, Config{})
	require.Error(t, err)
}

func TestLoadCollisionError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.yaml"), `
id: https://example.org/x
name: x
classes:
  Foo:
    description: from x
`)
	writeFile(t, filepath.Join(dir, "y.yaml"), `
id: https://example.org/y
name: y
classes:
  Foo:
    description: from y
`)
	rootSchema := filepath.Join(dir, "root.yaml")
	writeFile(t, rootSchema, `
id: https://example.org/root
name: root
imports:
  - `+filepath.Join(dir, "x.yaml")+`
  - `+filepath.Join(dir, "y.yaml")+`
`)

	_, err := Load(context.Background(), rootSchema, Config{})
	require.Error(t, err)
}
