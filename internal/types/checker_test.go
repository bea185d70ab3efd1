package types

import (
	"testing"

	"github.com/nog-lang/nogc/internal/lexer"
	"github.com/nog-lang/nogc/internal/module"
	"github.com/nog-lang/nogc/internal/parser"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) *Result {
	t.Helper()
	return checkWithImports(t, src, nil)
}

func checkWithImports(t *testing.T, src string, imports map[string]*module.Module) *Result {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	prog, err := parser.ParseProgram(toks)
	require.NoError(t, err)
	return Check("test.nog", prog, imports)
}

func requireOK(t *testing.T, r *Result) {
	t.Helper()
	if !r.OK() {
		for _, e := range r.Errors {
			t.Logf("type error: %s", e.Format())
		}
	}
	require.True(t, r.OK())
}

func TestSimpleFunctionTypeChecks(t *testing.T) {
	r := check(t, `
fn add(a: int, b: int) -> int {
	return a + b;
}
`)
	requireOK(t, r)
}

func TestDuplicateFunctionIsError(t *testing.T) {
	r := check(t, `
fn f() {}
fn f() {}
`)
	require.False(t, r.OK())
	require.Equal(t, errDup(r), true)
}

func errDup(r *Result) bool {
	for _, e := range r.Errors {
		if e.Code == "TC003" {
			return true
		}
	}
	return false
}

func TestDuplicateMethodIsError(t *testing.T) {
	r := check(t, `
Counter :: struct { n: int }

Counter :: bump(self: Counter) {}
Counter :: bump(self: Counter) {}
`)
	require.False(t, r.OK())
}

func TestStructAndErrorNameCollisionIsError(t *testing.T) {
	r := check(t, `
Oops :: struct { x: int }
Oops :: err;
`)
	require.False(t, r.OK())
}

func TestExternAndFunctionNameCollisionIsError(t *testing.T) {
	r := check(t, `
fn helper() {}
@extern("libc") fn helper();
`)
	require.False(t, r.OK())
}

func TestMissingReturnIsError(t *testing.T) {
	r := check(t, `
fn f() -> int {
	int x = 1;
}
`)
	require.False(t, r.OK())
}

func TestIfElseBothReturningSatisfiesMissingReturn(t *testing.T) {
	r := check(t, `
fn f(flag: bool) -> int {
	if flag {
		return 1;
	} else {
		return 2;
	}
}
`)
	requireOK(t, r)
}

func TestVoidFunctionNeedsNoReturn(t *testing.T) {
	r := check(t, `
fn f() {
	int x = 1;
}
`)
	requireOK(t, r)
}

func TestMethodRequiresSelfFirstParam(t *testing.T) {
	r := check(t, `
Counter :: struct { n: int }
Counter :: bump(x: int) {}
`)
	require.False(t, r.OK())
}
