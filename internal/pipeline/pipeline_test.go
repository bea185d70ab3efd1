package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, root, filename, src string) string {
	t.Helper()
	path := filepath.Join(root, filename)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestRunEmitsCppForSimpleProgram(t *testing.T) {
	root := t.TempDir()
	entry := writeEntry(t, root, "main.nog", `
fn add(a: int, b: int) -> int {
	return a + b;
}

fn main() {
	x := add(1, 2);
}
`)

	r, err := Run(root, entry, false)
	require.NoError(t, err)
	require.Empty(t, r.TypeErrors)
	require.Contains(t, r.CPP, "int add(int a, int b) {")
	require.Contains(t, r.CPP, "int main() {")
}

func TestRunResolvesImportsAcrossDirectories(t *testing.T) {
	root := t.TempDir()
	helperDir := filepath.Join(root, "helpers")
	require.NoError(t, os.MkdirAll(helperDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(helperDir, "math.nog"), []byte(`
fn double(x: int) -> int {
	return x * 2;
}
`), 0644))

	entry := writeEntry(t, root, "main.nog", `
import helpers;

fn main() {
	x := helpers.double(2);
}
`)

	r, err := Run(root, entry, false)
	require.NoError(t, err)
	require.Empty(t, r.TypeErrors)
	require.Contains(t, r.CPP, "namespace helpers {")
	require.Contains(t, r.CPP, "int double(int x) {")
	require.Contains(t, r.CPP, "helpers::double(2)")
}

func TestRunReturnsTypeErrorsWithoutEmitting(t *testing.T) {
	root := t.TempDir()
	entry := writeEntry(t, root, "main.nog", `
fn main() {
	x := undefined_name;
}
`)

	r, err := Run(root, entry, false)
	require.NoError(t, err)
	require.NotEmpty(t, r.TypeErrors)
	require.Empty(t, r.CPP)
}

func TestRunHaltsOnParseErrorWithEntryFilenamePrefixed(t *testing.T) {
	root := t.TempDir()
	entry := writeEntry(t, root, "main.nog", `
fn main() {
	x := ;
}
`)

	_, err := Run(root, entry, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), entry)
}

func TestRunHaltsOnMissingEntryFile(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "nope.nog")

	_, err := Run(root, missing, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), missing)
}

func TestRunCollectsExternLibrariesAcrossEntryAndImports(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "ffi")
	require.NoError(t, os.MkdirAll(libDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(libDir, "bind.nog"), []byte(`
@extern("sqlite3") fn sqlite_open(path: cstr) -> cint;
`), 0644))

	entry := writeEntry(t, root, "main.nog", `
import ffi;

@extern("m") fn c_sqrt(x: f64) -> f64;

fn main() {
}
`)

	r, err := Run(root, entry, false)
	require.NoError(t, err)
	require.Empty(t, r.TypeErrors)
	require.Contains(t, r.ExternLibs, "m")
	require.Contains(t, r.ExternLibs, "sqlite3")
}

func TestRunEmitsTestHarnessInTestMode(t *testing.T) {
	root := t.TempDir()
	entry := writeEntry(t, root, "main.nog", `
fn assert_eq(a: int, b: int) {}

fn test_add() {
	assert_eq(1 + 1, 2);
}
`)

	r, err := Run(root, entry, true)
	require.NoError(t, err)
	require.Empty(t, r.TypeErrors)
	require.Contains(t, r.CPP, "_failures")
	require.Contains(t, r.CPP, "boost::fibers::fiber(test_add).join();")
}
