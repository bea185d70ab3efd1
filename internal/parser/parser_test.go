package parser

import (
	"testing"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/lexer"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	prog, err := ParseProgram(toks)
	require.NoError(t, err)
	return prog
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	_, err = ParseProgram(toks)
	require.Error(t, err)
	return err
}

func TestImportMustPrecedeDefinitions(t *testing.T) {
	err := parseErr(t, "fn f() {}\nimport a.b;\n")
	require.Error(t, err)
}

func TestImportAliasIsLastSegment(t *testing.T) {
	prog := parse(t, "import a.b.c;\n")
	require.Len(t, prog.Imports, 1)
	require.Equal(t, "a.b.c", prog.Imports[0].Path)
	require.Equal(t, "c", prog.Imports[0].Alias)
}

func TestStructDefFields(t *testing.T) {
	prog := parse(t, "Point :: struct { x: int, y: int }\n")
	require.Len(t, prog.Structs, 1)
	require.Equal(t, "Point", prog.Structs[0].Name)
	require.Len(t, prog.Structs[0].Fields, 2)
	require.Equal(t, "x", prog.Structs[0].Fields[0].Name)
}

func TestErrorDefBare(t *testing.T) {
	prog := parse(t, "NotFound :: err;\n")
	require.Len(t, prog.Errors, 1)
	require.Equal(t, "NotFound", prog.Errors[0].Name)
	require.Empty(t, prog.Errors[0].Fields)
}

func TestErrorDefWithFields(t *testing.T) {
	prog := parse(t, "BadInput :: err { reason: str }\n")
	require.Len(t, prog.Errors, 1)
	require.Len(t, prog.Errors[0].Fields, 1)
}

func TestFunctionDefReturnType(t *testing.T) {
	prog := parse(t, "fn add(a: int, b: int) -> int { return a + b; }\n")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "int", fn.ReturnType.Primitive)
}

func TestFunctionWithDeclaredErrorType(t *testing.T) {
	prog := parse(t, "fn load(path: str) -> str ! IOError { return path; }\n")
	require.Equal(t, "IOError", prog.Functions[0].ErrorType)
}

func TestMethodDefSelfFirstParam(t *testing.T) {
	prog := parse(t, "Point :: sum(self) -> int { return self.x; }\n")
	require.Len(t, prog.Methods, 1)
	require.Equal(t, "Point", prog.Methods[0].Owner)
	require.Equal(t, "sum", prog.Methods[0].Name)
}

func TestExternDef(t *testing.T) {
	prog := parse(t, `@extern("m") fn pow(base: int, exp: int) -> int;`+"\n")
	require.Len(t, prog.Externs, 1)
	require.Equal(t, "m", prog.Externs[0].Library)
}

func TestPrivateVisibility(t *testing.T) {
	prog := parse(t, "@private Helper :: struct { n: int }\n")
	require.Equal(t, ast.Private, prog.Structs[0].Visibility)
}

func TestDocCommentAttachesToFollowingFunction(t *testing.T) {
	prog := parse(t, "/// adds two numbers\nfn add(a: int, b: int) -> int { return a + b; }\n")
	require.NotNil(t, prog.Functions[0].Doc)
	require.Equal(t, []string{"adds two numbers"}, prog.Functions[0].Doc.Lines)
}

func TestInferredVarDecl(t *testing.T) {
	prog := parse(t, "fn f() { x := 1; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	require.Equal(t, "x", stmt.Name)
	require.Nil(t, stmt.DeclaredType)
}

func TestTypedVarDecl(t *testing.T) {
	prog := parse(t, "fn f() { int x = 1; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	require.Equal(t, "x", stmt.Name)
	require.Equal(t, "int", stmt.DeclaredType.Primitive)
}

func TestOptionalTypedVarDecl(t *testing.T) {
	prog := parse(t, "fn f() { int? x = none; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	require.True(t, stmt.Optional)
}

func TestAssignStmt(t *testing.T) {
	prog := parse(t, "fn f() { x := 1; x = 2; }\n")
	stmt := prog.Functions[0].Body[1].(*ast.AssignStmt)
	require.Equal(t, "x", stmt.Name)
}

func TestFieldAssignStmt(t *testing.T) {
	prog := parse(t, "fn f() { p.x = 1; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.FieldAssignStmt)
	require.Equal(t, "x", stmt.Field)
}

func TestMethodCallStmt(t *testing.T) {
	prog := parse(t, "fn f() { obj.run(); }\n")
	stmt := prog.Functions[0].Body[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.MethodCallExpr)
	require.Equal(t, "run", call.Method)
}

func TestCallStmt(t *testing.T) {
	prog := parse(t, "fn g() {}\nfn f() { g(); }\n")
	stmt := prog.Functions[1].Body[0].(*ast.ExprStmt)
	_, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
}

func TestIfElseStmt(t *testing.T) {
	prog := parse(t, "fn f() { if true { x := 1; } else { x := 2; } }\n")
	stmt := prog.Functions[0].Body[0].(*ast.IfStmt)
	require.Len(t, stmt.Then, 1)
	require.Len(t, stmt.Else, 1)
}

func TestWhileStmt(t *testing.T) {
	prog := parse(t, "fn f() { while true { x := 1; } }\n")
	_, ok := prog.Functions[0].Body[0].(*ast.WhileStmt)
	require.True(t, ok)
}

func TestForRangeStmt(t *testing.T) {
	prog := parse(t, "fn f() { for i in 0..10 { x := i; } }\n")
	stmt := prog.Functions[0].Body[0].(*ast.ForStmt)
	require.NotNil(t, stmt.RangeStart)
	require.NotNil(t, stmt.RangeEnd)
	require.Nil(t, stmt.Collection)
}

func TestForEachStmt(t *testing.T) {
	prog := parse(t, "fn f() { for x in items { y := x; } }\n")
	stmt := prog.Functions[0].Body[0].(*ast.ForStmt)
	require.NotNil(t, stmt.Collection)
	require.Nil(t, stmt.RangeStart)
}

func TestWithStmt(t *testing.T) {
	prog := parse(t, "fn f() { with open(p) as file { x := 1; } }\n")
	stmt := prog.Functions[0].Body[0].(*ast.WithStmt)
	require.Equal(t, "file", stmt.Name)
}

func TestGoStmt(t *testing.T) {
	prog := parse(t, "fn g() {}\nfn f() { go g(); }\n")
	stmt := prog.Functions[1].Body[0].(*ast.GoStmt)
	require.NotNil(t, stmt.Call)
}

func TestSelectStmtRecvAndSend(t *testing.T) {
	prog := parse(t, `fn f() { select { case v := ch1.recv() { x := v; } case ch2.send(1) { y := 1; } } }` + "\n")
	sel := prog.Functions[0].Body[0].(*ast.SelectStmt)
	require.Len(t, sel.Cases, 2)
	require.Equal(t, "v", sel.Cases[0].Binding)
	require.Equal(t, "recv", sel.Cases[0].Operation)
	require.Equal(t, "send", sel.Cases[1].Operation)
	require.NotNil(t, sel.Cases[1].SendValue)
}

func TestOrReturnHandler(t *testing.T) {
	prog := parse(t, "fn f() { x := g() or return; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	orExpr := stmt.Value.(*ast.OrExpr)
	require.Equal(t, ast.OrReturn, orExpr.Handler.Kind)
}

func TestOrMatchHandler(t *testing.T) {
	prog := parse(t, "fn f() { x := g() or match err { NotFound => fail err, _ => fail err }; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	orExpr := stmt.Value.(*ast.OrExpr)
	require.Equal(t, ast.OrMatch, orExpr.Handler.Kind)
	require.Len(t, orExpr.Handler.Arms, 2)
	require.Equal(t, "NotFound", orExpr.Handler.Arms[0].ErrType)
	require.Equal(t, "", orExpr.Handler.Arms[1].ErrType)
}

func TestDefaultExpr(t *testing.T) {
	prog := parse(t, "fn f() { x := g() default 0; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	_, ok := stmt.Value.(*ast.DefaultExpr)
	require.True(t, ok)
}

func TestComparisonAndAdditivePrecedence(t *testing.T) {
	prog := parse(t, "fn f() { x := 1 + 2 == 3; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	cmp := stmt.Value.(*ast.BinaryExpr)
	require.Equal(t, "==", cmp.Op)
	_, ok := cmp.Left.(*ast.BinaryExpr)
	require.True(t, ok, "addition should bind tighter than comparison")
}

func TestIsNoneExpr(t *testing.T) {
	prog := parse(t, "fn f() { x := y is none; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	_, ok := stmt.Value.(*ast.IsNoneExpr)
	require.True(t, ok)
}

func TestStructLiteral(t *testing.T) {
	prog := parse(t, "Point :: struct { x: int, y: int }\nfn f() { p := Point { x: 1, y: 2 }; }\n")
	stmt := prog.Functions[0].Body[0].(*ast.VarDeclStmt)
	lit := stmt.Value.(*ast.StructLiteralExpr)
	require.Equal(t, "Point", lit.StructName)
	require.Len(t, lit.Fields, 2)
}

func TestListLiteralAndCreate(t *testing.T) {
	prog := parse(t, "fn f() { a := [1, 2, 3]; b := List<int>(); }\n")
	a := prog.Functions[0].Body[0].(*ast.VarDeclStmt).Value.(*ast.ListLiteralExpr)
	require.Len(t, a.Elems, 3)
	_, ok := prog.Functions[0].Body[1].(*ast.VarDeclStmt).Value.(*ast.ListCreateExpr)
	require.True(t, ok)
}

func TestChannelCreate(t *testing.T) {
	prog := parse(t, "fn f() { c := Channel<int>(); }\n")
	lit := prog.Functions[0].Body[0].(*ast.VarDeclStmt).Value.(*ast.ChannelCreateExpr)
	require.Equal(t, "int", lit.Elem.Primitive)
}

func TestAwaitExpr(t *testing.T) {
	prog := parse(t, "fn f() { x := await g(); }\n")
	_, ok := prog.Functions[0].Body[0].(*ast.VarDeclStmt).Value.(*ast.AwaitExpr)
	require.True(t, ok)
}

func TestQualifiedCall(t *testing.T) {
	prog := parse(t, "import a.b;\nfn f() { x := b.helper(1); }\n")
	call := prog.Functions[0].Body[0].(*ast.VarDeclStmt).Value.(*ast.CallExpr)
	qref := call.Callee.(*ast.QualifiedRef)
	require.Equal(t, "b", qref.Module)
	require.Equal(t, "helper", qref.Name)
}

func TestUnexpectedTokenProducesParseError(t *testing.T) {
	err := parseErr(t, "fn f( { }\n")
	require.Contains(t, err.Error(), "unexpected token")
}

func TestFunctionTypeParam(t *testing.T) {
	prog := parse(t, "fn apply(cb: fn(int) -> int, v: int) -> int { return cb(v); }\n")
	cbType := prog.Functions[0].Params[0].Type
	require.True(t, cbType.IsFunc())
	require.Len(t, cbType.FuncParams, 1)
}

func TestFieldAccessChain(t *testing.T) {
	prog := parse(t, "fn f() { x := a.b.c; }\n")
	outer := prog.Functions[0].Body[0].(*ast.VarDeclStmt).Value.(*ast.FieldAccessExpr)
	require.Equal(t, "c", outer.Field)
	inner := outer.Object.(*ast.FieldAccessExpr)
	require.Equal(t, "b", inner.Field)
}
