package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, root, dottedPath, filename, src string) {
	t.Helper()
	dir := pathToDir(root, dottedPath)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
}

func TestLoadResolvesDottedPathToDirectory(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.b", "main.nog", `A :: struct { x: int }`)

	l := NewLoader(root)
	mods, err := l.Load([]*ast.ImportDecl{{Path: "a.b", Alias: "b"}})
	require.NoError(t, err)
	require.Contains(t, mods, "b")
	require.Equal(t, "a.b", mods["b"].DottedPath)
	_, ok := mods["b"].AnyStruct("A")
	require.True(t, ok)
}

func TestLoadMergesMultipleFilesInOneDirectory(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "pkg", "one.nog", `A :: struct { x: int }`)
	writeSource(t, root, "pkg", "two.nog", `B :: struct { y: int }`)

	l := NewLoader(root)
	mods, err := l.Load([]*ast.ImportDecl{{Path: "pkg", Alias: "pkg"}})
	require.NoError(t, err)
	mod := mods["pkg"]
	_, okA := mod.AnyStruct("A")
	_, okB := mod.AnyStruct("B")
	require.True(t, okA)
	require.True(t, okB)
}

func TestLoadFollowsTransitiveImports(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "leaf", "main.nog", `Leaf :: struct { x: int }`)
	writeSource(t, root, "mid", "main.nog", "import leaf;\n\nMid :: struct { x: int }")

	l := NewLoader(root)
	mods, err := l.Load([]*ast.ImportDecl{{Path: "mid", Alias: "mid"}})
	require.NoError(t, err)
	require.Contains(t, mods, "mid")
	require.Contains(t, mods, "leaf")
}

func TestLoadCachesEachModuleOnce(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "shared", "main.nog", `S :: struct { x: int }`)
	writeSource(t, root, "a", "main.nog", "import shared;\n\nA :: struct { x: int }")
	writeSource(t, root, "b", "main.nog", "import shared;\n\nB :: struct { x: int }")

	l := NewLoader(root)
	mods, err := l.Load([]*ast.ImportDecl{
		{Path: "a", Alias: "a"},
		{Path: "b", Alias: "b"},
	})
	require.NoError(t, err)
	require.Same(t, l.cache["shared"], mods["shared"])
}

func TestLoadDetectsCycle(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a", "main.nog", "import b;\n\nA :: struct { x: int }")
	writeSource(t, root, "b", "main.nog", "import a;\n\nB :: struct { x: int }")

	l := NewLoader(root)
	_, err := l.Load([]*ast.ImportDecl{{Path: "a", Alias: "a"}})
	require.Error(t, err)
}

func TestLoadMissingDirectory(t *testing.T) {
	root := t.TempDir()
	l := NewLoader(root)
	_, err := l.Load([]*ast.ImportDecl{{Path: "nope", Alias: "nope"}})
	require.Error(t, err)
}

func TestLoadEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	l := NewLoader(root)
	_, err := l.Load([]*ast.ImportDecl{{Path: "empty", Alias: "empty"}})
	require.Error(t, err)
}

func TestLoadBuiltinHTTPModule(t *testing.T) {
	root := t.TempDir()
	l := NewLoader(root)
	mods, err := l.Load([]*ast.ImportDecl{{Path: "http", Alias: "http"}})
	require.NoError(t, err)
	_, ok := mods["http"].AnyExtern("get")
	require.True(t, ok)
}

func TestLoadBuiltinFSModule(t *testing.T) {
	root := t.TempDir()
	l := NewLoader(root)
	mods, err := l.Load([]*ast.ImportDecl{{Path: "fs", Alias: "fs"}})
	require.NoError(t, err)
	_, ok := mods["fs"].AnyExtern("read")
	require.True(t, ok)
}

func TestPublicLookupHidesPrivateDefinitions(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "pkg", "main.nog", "@private\nSecret :: struct { x: int }\n\nOpen :: struct { x: int }")

	l := NewLoader(root)
	mods, err := l.Load([]*ast.ImportDecl{{Path: "pkg", Alias: "pkg"}})
	require.NoError(t, err)
	mod := mods["pkg"]

	_, visible := mod.PublicStruct("Open")
	require.True(t, visible)

	_, hidden := mod.PublicStruct("Secret")
	require.False(t, hidden)

	_, stillThere := mod.AnyStruct("Secret")
	require.True(t, stillThere)
}
