package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesNameAndEntry(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[project]\nname = \"demo\"\nentry = \"app\"\n")

	m, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "demo", m.Project.Name)
	require.Equal(t, "app", m.Project.Entry)
}

func TestLoadDefaultsEntry(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[project]\nname = \"demo\"\n")

	m, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "main", m.Project.Entry)
}

func TestLoadRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[project]\nentry = \"app\"\n")

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestNewScaffoldsManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, New(dir, "demo"))

	m, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "demo", m.Project.Name)
	require.Equal(t, "main", m.Project.Entry)
}

func TestNewRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, New(dir, "demo"))
	err := New(dir, "demo")
	require.Error(t, err)
}

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultFilename), []byte(content), 0644))
}
