package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// emitAwait is a no-op in the fiber model: channel blocking happens inside
// Channel::send/recv themselves, cooperatively scheduled by the fiber
// runtime, so there is no separate suspend point to lower (unlike the
// ASIO-coroutine `co_await` form).
func emitAwait(s *State, n *ast.AwaitExpr) (string, error) {
	return emitExpr(s, n.Operand)
}

func emitDefault(s *State, n *ast.DefaultExpr) (string, error) {
	inner, err := emitExpr(s, n.Inner)
	if err != nil {
		return "", err
	}
	fallback, err := emitExpr(s, n.Fallback)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s ? *%s : %s)", inner, inner, fallback), nil
}

// emitFailValue lowers the value carried by `fail <expr>`. A bare fail with
// no value re-raises the handler-bound `err`; a string literal wraps as a
// plain nog::rt::Error; a struct literal naming a declared error type
// constructs that error; anything else is assumed to already evaluate to a
// shared_ptr<Error> (emit_fail.cpp, normalized from bishop::rt to nog::rt).
func emitFailValue(s *State, v ast.Expr) (string, error) {
	switch n := v.(type) {
	case nil:
		return "err", nil
	case *ast.StringLit:
		return fmt.Sprintf("std::make_shared<nog::rt::Error>(%s)", stringLiteral(n.Value)), nil
	case *ast.StructLiteralExpr:
		var args []string
		for _, f := range n.Fields {
			val, err := emitExpr(s, f.Value)
			if err != nil {
				return "", err
			}
			args = append(args, val)
		}
		return fmt.Sprintf("std::make_shared<%s>(%s)", n.StructName, strings.Join(args, ", ")), nil
	default:
		return emitExpr(s, v)
	}
}

func (s *State) nextOrTemp() string {
	s.orTemp++
	return fmt.Sprintf("_or_tmp%d", s.orTemp)
}

// emitOrStandalone lowers an `or`-expression appearing outside a variable
// declaration into an immediately-invoked lambda. OrReturn handlers emitted
// this way return from the lambda, not the enclosing function — the
// declaration-level lowering in stmt.go (emitOrDecl) is the form that
// actually returns from the enclosing function, and is what the parser
// produces for the common `x := f() or return;` shape.
func emitOrStandalone(s *State, n *ast.OrExpr) (string, error) {
	inner, err := emitExpr(s, n.Inner)
	if err != nil {
		return "", err
	}
	tmp := s.nextOrTemp()
	handler, err := emitOrHandlerInline(s, n.Handler, tmp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[&]() { auto %s = %s; if (!%s) { %s } return %s.value(); }()",
		tmp, inner, tmp, handler, tmp), nil
}

func emitOrHandlerInline(s *State, h ast.OrHandler, tmp string) (string, error) {
	switch h.Kind {
	case ast.OrReturn:
		if h.ReturnValue == nil {
			return "return {};", nil
		}
		val, err := emitExpr(s, h.ReturnValue)
		if err != nil {
			return "", err
		}
		return "return " + val + ";", nil

	case ast.OrFail:
		val, err := emitFailValue(s, h.FailValue)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("auto err = %s.error(); return %s;", tmp, val), nil

	case ast.OrBlock:
		body, err := emitStmts(s, h.Block, "")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("auto err = %s.error(); %s", tmp, body), nil

	case ast.OrMatch:
		return emitMatchArms(s, h.Arms, tmp)
	}
	return "", malformed("unknown or-handler kind %d", h.Kind)
}

// emitMatchArms lowers `or match err { Type name => ..., _ => ... }` into a
// dynamic_pointer_cast chain over the caught error itself (emit_or.cpp).
func emitMatchArms(s *State, arms []ast.MatchArm, tmp string) (string, error) {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("auto err = %s.error(); ", tmp))
	for i, arm := range arms {
		keyword := "if"
		if i > 0 {
			keyword = "else if"
		}
		if arm.ErrType == "" {
			keyword = "else"
		}
		armBody, err := emitMatchArmBody(s, arm)
		if err != nil {
			return "", err
		}
		if arm.ErrType == "" {
			out.WriteString(fmt.Sprintf("%s { %s }", keyword, armBody))
			continue
		}
		binding := arm.Binding
		if binding == "" {
			binding = "_err"
		}
		out.WriteString(fmt.Sprintf("%s (auto %s = std::dynamic_pointer_cast<%s>(err)) { %s }",
			keyword, binding, arm.ErrType, armBody))
	}
	return out.String(), nil
}

func emitMatchArmBody(s *State, arm ast.MatchArm) (string, error) {
	if arm.Stmt != nil {
		return emitStmt(s, arm.Stmt, "")
	}
	val, err := emitExpr(s, arm.Expr)
	if err != nil {
		return "", err
	}
	return "return " + val + ";", nil
}
