package errs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeErrorFormat(t *testing.T) {
	e := &TypeError{Code: TCUnknownType, Filename: "main.nog", Line: 10, Message: "unknown type Foo"}
	require.Equal(t, "main.nog:10: error: unknown type Foo", e.Format())
	require.Equal(t, e.Format(), e.Error())
}

func TestTypeErrorFormatUnknownFilename(t *testing.T) {
	e := &TypeError{Code: TCUnknownType, Line: 1, Message: "boom"}
	require.Equal(t, "<unknown>:1: error: boom", e.Format())
}

func TestWarningString(t *testing.T) {
	w := &Warning{Filename: "a.nog", Line: 3, Message: "f64 narrowed to f32"}
	require.Equal(t, "a.nog:3: warning: f64 narrowed to f32", w.String())
}

func TestLexErrorError(t *testing.T) {
	e := &LexError{Code: LexEmptyChar, Line: 5, Message: "empty character literal ''"}
	require.Equal(t, "5: error: empty character literal ''", e.Error())
}

func TestModuleErrorError(t *testing.T) {
	e := &ModuleError{Code: ModNotFound, Path: "a.b.c", Message: "module a.b.c not found"}
	require.Equal(t, "error: module a.b.c not found", e.Error())
}

func TestEmitErrorError(t *testing.T) {
	e := &EmitError{Code: EmitMalformedAST, Message: "nil struct def"}
	require.Equal(t, "internal compiler error: nil struct def", e.Error())
}
