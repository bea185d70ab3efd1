package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeIsFunc(t *testing.T) {
	plain := NewType(1)
	plain.Primitive = "int"
	require.False(t, plain.IsFunc())

	fn := NewType(1)
	fn.FuncParams = []*Type{NewType(1)}
	require.True(t, fn.IsFunc())

	voidFn := NewType(1)
	voidFn.FuncReturn = NewType(1)
	require.True(t, voidFn.IsFunc())
}

func TestBaseLineIsReported(t *testing.T) {
	n := &IntLit{Pos: Pos{L: 42}, Value: "7"}
	require.Equal(t, 42, n.Line())
}

func TestExprNodesSatisfyExprInterface(t *testing.T) {
	var exprs = []Expr{
		&IntLit{Pos: Pos{L: 1}, Value: "1"},
		&FloatLit{Pos: Pos{L: 1}, Value: "1.0"},
		&StringLit{Pos: Pos{L: 1}, Value: "s"},
		&BoolLit{Pos: Pos{L: 1}, Value: true},
		&NoneLit{Pos: Pos{L: 1}},
		&CharLit{Pos: Pos{L: 1}, Value: 'c'},
		&VarRef{Pos: Pos{L: 1}, Name: "x"},
		&FuncRef{Pos: Pos{L: 1}, Name: "f"},
		&QualifiedRef{Pos: Pos{L: 1}, Module: "m", Name: "n"},
		&BinaryExpr{Pos: Pos{L: 1}, Op: "+"},
		&NotExpr{Pos: Pos{L: 1}},
		&AddrOfExpr{Pos: Pos{L: 1}},
		&ParenExpr{Pos: Pos{L: 1}},
		&IsNoneExpr{Pos: Pos{L: 1}},
		&AwaitExpr{Pos: Pos{L: 1}},
		&ChannelCreateExpr{Pos: Pos{L: 1}},
		&ListCreateExpr{Pos: Pos{L: 1}},
		&ListLiteralExpr{Pos: Pos{L: 1}},
		&CallExpr{Pos: Pos{L: 1}},
		&MethodCallExpr{Pos: Pos{L: 1}},
		&FieldAccessExpr{Pos: Pos{L: 1}},
		&StructLiteralExpr{Pos: Pos{L: 1}},
		&FailExpr{Pos: Pos{L: 1}},
		&OrExpr{Pos: Pos{L: 1}},
		&DefaultExpr{Pos: Pos{L: 1}},
	}
	for _, e := range exprs {
		require.Equal(t, 1, e.Line())
	}
}

func TestStmtNodesSatisfyStmtInterface(t *testing.T) {
	var stmts = []Stmt{
		&VarDeclStmt{Pos: Pos{L: 2}},
		&AssignStmt{Pos: Pos{L: 2}},
		&FieldAssignStmt{Pos: Pos{L: 2}},
		&ReturnStmt{Pos: Pos{L: 2}},
		&IfStmt{Pos: Pos{L: 2}},
		&WhileStmt{Pos: Pos{L: 2}},
		&ForStmt{Pos: Pos{L: 2}},
		&SelectStmt{Pos: Pos{L: 2}},
		&WithStmt{Pos: Pos{L: 2}},
		&GoStmt{Pos: Pos{L: 2}},
		&FailStmt{Pos: Pos{L: 2}},
		&ExprStmt{Pos: Pos{L: 2}},
	}
	for _, s := range stmts {
		require.Equal(t, 2, s.Line())
	}
}

func TestDeclNodesSatisfyDeclInterface(t *testing.T) {
	var decls = []Decl{
		&StructDef{Pos: Pos{L: 3}},
		&ErrorDef{Pos: Pos{L: 3}},
		&FunctionDef{Pos: Pos{L: 3}},
		&MethodDef{Pos: Pos{L: 3}},
		&ExternDef{Pos: Pos{L: 3}},
		&ImportDecl{Pos: Pos{L: 3}},
	}
	for _, d := range decls {
		require.Equal(t, 3, d.Line())
	}
}

func TestProgramMergeAppendsInDeclarationOrder(t *testing.T) {
	a := &Program{
		Structs:   []*StructDef{{Name: "A"}},
		Functions: []*FunctionDef{{Name: "fa"}},
	}
	b := &Program{
		Structs:   []*StructDef{{Name: "B"}},
		Functions: []*FunctionDef{{Name: "fb"}},
		Externs:   []*ExternDef{{Name: "ext"}},
	}
	a.Merge(b)

	require.Len(t, a.Structs, 2)
	require.Equal(t, "A", a.Structs[0].Name)
	require.Equal(t, "B", a.Structs[1].Name)
	require.Len(t, a.Functions, 2)
	require.Equal(t, "fa", a.Functions[0].Name)
	require.Equal(t, "fb", a.Functions[1].Name)
	require.Len(t, a.Externs, 1)
}

func TestVisibilityDefaultsToPublic(t *testing.T) {
	var s StructDef
	require.Equal(t, Public, s.Visibility)
}
