package module

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathToDirJoinsSegments(t *testing.T) {
	dir := pathToDir("/root", "a.b.c")
	require.Equal(t, "/root/a/b/c", dir)
}

func TestPathToDirSingleSegment(t *testing.T) {
	dir := pathToDir("/root", "http")
	require.Equal(t, "/root/http", dir)
}

func TestAliasOfPathIsLastSegment(t *testing.T) {
	require.Equal(t, "c", aliasOfPath("a.b.c"))
	require.Equal(t, "http", aliasOfPath("http"))
}
