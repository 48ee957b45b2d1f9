package resolve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmlerrors "github.com/linkml-go/linkml/errors"
)

func writeSchema(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestResolvePrefixedImport(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	writeSchema(t, filepath.Join(root, "a", "b"), "schema.yaml", `
id: https://example.org/imported
name: imported
classes:
  Imported:
    description: from the import
`)

	r := New(Config{PrefixMap: map[string]string{"proj": root}})
	sch, err := r.Resolve(context.Background(), inlineRoot(t, `
id: https://example.org/root
name: root
imports:
  - proj:a/b/schema.yaml
classes:
  Local:
    description: local class
`))
	require.NoError(t, err)

	assert.True(t, sch.Classes.Has("Local"))
	assert.True(t, sch.Classes.Has("Imported"))
}

func TestResolveCycleIsNoOp(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "a.yaml", `
id: https://example.org/a
name: a
imports:
  - `+filepath.Join(dir, "b.yaml")+`
classes:
  A: {}
`)
	writeSchema(t, dir, "b.yaml", `
id: https://example.org/b
name: b
imports:
  - `+filepath.Join(dir, "a.yaml")+`
classes:
  B: {}
`)

	r := New(Config{})
	sch, err := r.Resolve(context.Background(), filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.True(t, sch.Classes.Has("A"))
	assert.True(t, sch.Classes.Has("B"))
}

func TestResolveCollisionOnDifferingBodies(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "x.yaml", `
id: https://example.org/x
name: x
classes:
  Foo:
    description: from x
`)
	writeSchema(t, dir, "y.yaml", `
id: https://example.org/y
name: y
classes:
  Foo:
    description: from y
`)
	writeSchema(t, dir, "root.yaml", `
id: https://example.org/root
name: root
imports:
  - `+filepath.Join(dir, "x.yaml")+`
  - `+filepath.Join(dir, "y.yaml")+`
`)

	r := New(Config{})
	_, err := r.Resolve(context.Background(), filepath.Join(dir, "root.yaml"))
	require.Error(t, err)
	var lmlErr *lmlerrors.Error
	require.ErrorAs(t, err, &lmlErr)
	assert.Equal(t, lmlerrors.ImportError, lmlErr.Kind)
}

func TestResolveCollisionAllowedWhenStructurallyEqual(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "x.yaml", `
id: https://example.org/x
name: x
classes:
  Foo:
    description: shared
`)
	writeSchema(t, dir, "y.yaml", `
id: https://example.org/y
name: y
classes:
  Foo:
    description: shared
`)
	writeSchema(t, dir, "root.yaml", `
id: https://example.org/root
name: root
imports:
  - `+filepath.Join(dir, "x.yaml")+`
  - `+filepath.Join(dir, "y.yaml")+`
`)

	r := New(Config{})
	sch, err := r.Resolve(context.Background(), filepath.Join(dir, "root.yaml"))
	require.NoError(t, err)
	assert.True(t, sch.Classes.Has("Foo"))
}

func TestResolveDepthBoundExceeded(t *testing.T) {
	dir := t.TempDir()
	const chain = 12
	for i := 0; i < chain; i++ {
		name := filepath.Join(dir, schemaName(i)+".yaml")
		body := "id: https://example.org/" + schemaName(i) + "\nname: " + schemaName(i) + "\n"
		if i+1 < chain {
			body += "imports:\n  - " + filepath.Join(dir, schemaName(i+1)+".yaml") + "\n"
		}
		require.NoError(t, os.WriteFile(name, []byte(body), 0o644))
	}

	r := New(Config{MaxImportDepth: 10})
	_, err := r.Resolve(context.Background(), filepath.Join(dir, schemaName(0)+".yaml"))
	require.Error(t, err)
	var lmlErr *lmlerrors.Error
	require.ErrorAs(t, err, &lmlErr)
	assert.Equal(t, lmlerrors.ImportError, lmlErr.Kind)
}

func schemaName(i int) string {
	return string(rune('a' + i))
}

// inlineRoot writes src to a temp file under dir and returns its path,
// a small helper so tests can express the root document inline instead
// of in a separate fixture file.
func inlineRoot(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "root.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}
