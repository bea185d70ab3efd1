package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// emitExpr dispatches on expression kind (grounded on
// codegen/emit_expression.cpp's `emit()` entry point).
func emitExpr(s *State, e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return numberLiteral(n.Value), nil
	case *ast.FloatLit:
		return floatLiteral(n.Value), nil
	case *ast.StringLit:
		return stringLiteral(n.Value), nil
	case *ast.BoolLit:
		return boolLiteral(n.Value), nil
	case *ast.NoneLit:
		return noneLiteral(), nil
	case *ast.CharLit:
		return charLiteral(n.Value), nil

	case *ast.VarRef:
		if n.Name == "self" {
			return "this", nil
		}
		return n.Name, nil

	case *ast.FuncRef:
		return qualifiedDots(n.Name), nil

	case *ast.QualifiedRef:
		return n.Module + "::" + n.Name, nil

	case *ast.BinaryExpr:
		return emitBinary(s, n)

	case *ast.NotExpr:
		inner, err := emitExpr(s, n.Operand)
		if err != nil {
			return "", err
		}
		return "!" + inner, nil

	case *ast.AddrOfExpr:
		inner, err := emitExpr(s, n.Operand)
		if err != nil {
			return "", err
		}
		return "&" + inner, nil

	case *ast.ParenExpr:
		inner, err := emitExpr(s, n.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case *ast.IsNoneExpr:
		inner, err := emitExpr(s, n.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("!%s.has_value()", inner), nil

	case *ast.AwaitExpr:
		return emitAwait(s, n)

	case *ast.ChannelCreateExpr:
		return "nog::rt::Channel<" + mapType(baseOf(n.Elem)) + ">()", nil

	case *ast.ListCreateExpr:
		return "std::vector<" + mapType(baseOf(n.Elem)) + ">{}", nil

	case *ast.ListLiteralExpr:
		var elems []string
		for _, el := range n.Elems {
			code, err := emitExpr(s, el)
			if err != nil {
				return "", err
			}
			elems = append(elems, code)
		}
		return "std::vector{" + strings.Join(elems, ", ") + "}", nil

	case *ast.CallExpr:
		return emitCall(s, n)

	case *ast.MethodCallExpr:
		return emitMethodCall(s, n)

	case *ast.FieldAccessExpr:
		return emitFieldAccess(s, n)

	case *ast.StructLiteralExpr:
		return emitStructLiteral(s, n)

	case *ast.FailExpr:
		return emitFailValue(s, n.Value)

	case *ast.OrExpr:
		return emitOrStandalone(s, n)

	case *ast.DefaultExpr:
		return emitDefault(s, n)
	}
	return "", malformed("unhandled expression node %T", e)
}

// qualifiedDots turns a dotted function reference "module.name" into the
// C++ scope form "module::name" (emit_refs.cpp / emit_function_call.cpp).
func qualifiedDots(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i] + "::" + name[i+1:]
	}
	return name
}

func emitBinary(s *State, n *ast.BinaryExpr) (string, error) {
	left, err := emitExpr(s, n.Left)
	if err != nil {
		return "", err
	}
	right, err := emitExpr(s, n.Right)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, n.Op, right), nil
}

func emitCall(s *State, n *ast.CallExpr) (string, error) {
	var args []string
	for _, a := range n.Args {
		code, err := emitExpr(s, a)
		if err != nil {
			return "", err
		}
		args = append(args, code)
	}

	var name string
	switch callee := n.Callee.(type) {
	case *ast.VarRef:
		name = callee.Name
	case *ast.FuncRef:
		name = qualifiedDots(callee.Name)
	case *ast.QualifiedRef:
		name = callee.Module + "::" + callee.Name
	default:
		return "", malformed("call to unsupported callee kind %T", n.Callee)
	}

	if ext, ok := s.Externs[name]; ok {
		args = wrapFFIArgs(s, ext, n.Args, args)
	}

	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")), nil
}

// wrapFFIArgs appends `.c_str()` to string arguments bound to a `cstr`
// extern parameter (emit_statement.cpp's FFI arg handling).
func wrapFFIArgs(s *State, ext *ast.ExternDef, rawArgs []ast.Expr, emitted []string) []string {
	out := make([]string, len(emitted))
	copy(out, emitted)
	for i := range out {
		if i >= len(ext.Params) || baseOf(ext.Params[i].Type) != "cstr" {
			continue
		}
		out[i] = "(" + out[i] + ").c_str()"
	}
	return out
}

func emitFieldAccess(s *State, n *ast.FieldAccessExpr) (string, error) {
	obj, err := emitExpr(s, n.Object)
	if err != nil {
		return "", err
	}
	if ref, ok := n.Object.(*ast.VarRef); ok && ref.Name == "self" {
		return "this->" + n.Field, nil
	}
	return obj + "." + n.Field, nil
}

func emitStructLiteral(s *State, n *ast.StructLiteralExpr) (string, error) {
	var inits []string
	for _, f := range n.Fields {
		val, err := emitExpr(s, f.Value)
		if err != nil {
			return "", err
		}
		inits = append(inits, fmt.Sprintf(".%s = %s", f.Name, val))
	}
	return fmt.Sprintf("%s { %s }", n.StructName, strings.Join(inits, ", ")), nil
}
