package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"."}, cfg.Check.Paths)
	assert.False(t, cfg.Check.Strict)
	assert.Equal(t, 300, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{".scss", ".css"}, cfg.Watch.Extensions)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `project_name: site
check:
  paths:
    - styles
  strict: true
watch:
  debounce_ms: 500
  extensions:
    - ".scss"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cascade.yml"), []byte(content), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "site", cfg.ProjectName)
	assert.Equal(t, []string{"styles"}, cfg.Check.Paths)
	assert.True(t, cfg.Check.Strict)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{".scss"}, cfg.Watch.Extensions)
}

func TestLoadInvalidExtension(t *testing.T) {
	dir := t.TempDir()
	content := `watch:
  extensions:
    - "scss"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cascade.yml"), []byte(content), 0644))
	chdir(t, dir)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with '.'")
}

func TestLoadNegativeDebounce(t *testing.T) {
	dir := t.TempDir()
	content := `watch:
  debounce_ms: -10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cascade.yml"), []byte(content), 0644))
	chdir(t, dir)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debounce_ms")
}

func TestInProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.False(t, InProject())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cascade.yml"), []byte("project_name: x\n"), 0644))
	assert.True(t, InProject())
}

func TestGetProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "cascade.yml"), []byte("project_name: x\n"), 0644))

	nested := filepath.Join(root, "styles", "components")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	got, err := GetProjectRoot()
	require.NoError(t, err)

	// Resolve symlinks so macOS /var vs /private/var temp paths compare equal
	wantResolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, wantResolved, gotResolved)
}
