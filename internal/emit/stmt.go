package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// emitStmts lowers a statement list, one line (or brace-delimited block) per
// statement, each prefixed with indent.
func emitStmts(s *State, stmts []ast.Stmt, indent string) (string, error) {
	var out strings.Builder
	for _, stmt := range stmts {
		line, err := emitStmt(s, stmt, indent)
		if err != nil {
			return "", err
		}
		out.WriteString(indent)
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String(), nil
}

func emitStmt(s *State, stmt ast.Stmt, indent string) (string, error) {
	switch n := stmt.(type) {
	case *ast.VarDeclStmt:
		return emitVarDecl(s, n, indent)
	case *ast.AssignStmt:
		val, err := emitExpr(s, n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s;", n.Name, val), nil
	case *ast.FieldAssignStmt:
		return emitFieldAssign(s, n)
	case *ast.ReturnStmt:
		if n.Value == nil {
			return "return;", nil
		}
		val, err := emitExpr(s, n.Value)
		if err != nil {
			return "", err
		}
		return "return " + val + ";", nil
	case *ast.IfStmt:
		return emitIf(s, n, indent)
	case *ast.WhileStmt:
		return emitWhile(s, n, indent)
	case *ast.ForStmt:
		return emitFor(s, n, indent)
	case *ast.SelectStmt:
		return emitSelect(s, n, indent)
	case *ast.WithStmt:
		return emitWith(s, n, indent)
	case *ast.GoStmt:
		return emitGo(s, n)
	case *ast.FailStmt:
		val, err := emitFailValue(s, n.Value)
		if err != nil {
			return "", err
		}
		return "return " + val + ";", nil
	case *ast.ExprStmt:
		val, err := emitExpr(s, n.Expr)
		if err != nil {
			return "", err
		}
		return val + ";", nil
	}
	return "", malformed("unhandled statement node %T", stmt)
}

func emitFieldAssign(s *State, n *ast.FieldAssignStmt) (string, error) {
	obj, err := emitExpr(s, n.Object)
	if err != nil {
		return "", err
	}
	val, err := emitExpr(s, n.Value)
	if err != nil {
		return "", err
	}
	if ref, ok := n.Object.(*ast.VarRef); ok && ref.Name == "self" {
		return fmt.Sprintf("this->%s = %s;", n.Field, val), nil
	}
	return fmt.Sprintf("%s.%s = %s;", obj, n.Field, val), nil
}

// emitVarDecl handles the plain declaration form and the `or`-unwrap form
// (a declaration whose value is a fallible call's `or` handler) separately:
// the latter must return from the ENCLOSING function on failure, which a
// single expression can't express, so it lowers to a small statement group
// (emit_or.cpp's emit_or_for_decl).
func emitVarDecl(s *State, n *ast.VarDeclStmt, indent string) (string, error) {
	if orExpr, ok := n.Value.(*ast.OrExpr); ok {
		return emitOrDecl(s, n, orExpr, indent)
	}

	cppType := "auto"
	if n.DeclaredType != nil {
		cppType = mapType(baseOf(n.DeclaredType))
		if n.Optional {
			cppType = "std::optional<" + cppType + ">"
		}
	}
	val, err := emitExpr(s, n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s = %s;", cppType, n.Name, val), nil
}

func emitOrDecl(s *State, decl *ast.VarDeclStmt, n *ast.OrExpr, indent string) (string, error) {
	inner, err := emitExpr(s, n.Inner)
	if err != nil {
		return "", err
	}
	tmp := s.nextOrTemp()
	handler, err := emitOrHandlerInline(s, n.Handler, tmp)
	if err != nil {
		return "", err
	}

	cppType := "auto"
	if decl.DeclaredType != nil {
		cppType = mapType(baseOf(decl.DeclaredType))
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("auto %s = %s;\n", tmp, inner))
	out.WriteString(indent + fmt.Sprintf("if (!%s) { %s }\n", tmp, handler))
	out.WriteString(indent + fmt.Sprintf("%s %s = %s.value();", cppType, decl.Name, tmp))
	return out.String(), nil
}

func emitIf(s *State, n *ast.IfStmt, indent string) (string, error) {
	cond, err := emitExpr(s, n.Cond)
	if err != nil {
		return "", err
	}
	thenBody, err := emitStmts(s, n.Then, indent+"\t")
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("if (%s) {\n%s%s}", cond, thenBody, indent)
	if len(n.Else) == 0 {
		return out, nil
	}
	elseBody, err := emitStmts(s, n.Else, indent+"\t")
	if err != nil {
		return "", err
	}
	return out + fmt.Sprintf(" else {\n%s%s}", elseBody, indent), nil
}

func emitWhile(s *State, n *ast.WhileStmt, indent string) (string, error) {
	cond, err := emitExpr(s, n.Cond)
	if err != nil {
		return "", err
	}
	body, err := emitStmts(s, n.Body, indent+"\t")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("while (%s) {\n%s%s}", cond, body, indent), nil
}

// emitFor lowers both the range form (`for i in 0..10`) to a C-style loop and
// the foreach form (`for x in items`) to a range-based for (emit_for.cpp).
func emitFor(s *State, n *ast.ForStmt, indent string) (string, error) {
	body, err := emitStmts(s, n.Body, indent+"\t")
	if err != nil {
		return "", err
	}
	if n.RangeEnd != nil {
		start, err := emitExpr(s, n.RangeStart)
		if err != nil {
			return "", err
		}
		end, err := emitExpr(s, n.RangeEnd)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("for (int %s = %s; %s < %s; %s++) {\n%s%s}",
			n.Var, start, n.Var, end, n.Var, body, indent), nil
	}
	coll, err := emitExpr(s, n.Collection)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("for (auto& %s : %s) {\n%s%s}", n.Var, coll, body, indent), nil
}

// emitSelect lowers `select { case ... }` to the polling form from
// emit_select.cpp: loop over the recv-ready cases with try_recv(), and
// attempt each send-case with a non-blocking try_send, yielding the fiber
// scheduler between sweeps when nothing was ready.
func emitSelect(s *State, n *ast.SelectStmt, indent string) (string, error) {
	inner := indent + "\t"
	var cases strings.Builder
	for _, c := range n.Cases {
		ch, err := emitExpr(s, c.Channel)
		if err != nil {
			return "", err
		}
		body, err := emitStmts(s, c.Body, inner+"\t\t")
		if err != nil {
			return "", err
		}
		if c.Operation == "recv" {
			binding := c.Binding
			if binding == "" {
				binding = "_"
			}
			cases.WriteString(inner + fmt.Sprintf("{\n%s\tauto _try = %s.try_recv();\n%s\tif (_try.first) {\n%s\t\tauto %s = _try.second;\n%s%s\t\tbreak;\n%s\t}\n%s}\n",
				inner, ch, inner, inner, binding, body, inner, inner, inner))
			continue
		}
		val, err := emitExpr(s, c.SendValue)
		if err != nil {
			return "", err
		}
		cases.WriteString(inner + fmt.Sprintf("{\n%s\tif (%s.try_send(%s)) {\n%s%s\t\tbreak;\n%s\t}\n%s}\n",
			inner, ch, val, body, inner, inner, inner))
	}
	return fmt.Sprintf("while (true) {\n%s%s\tboost::asio::post(nog::rt::io_context(), nog::rt::yield());\n%s}",
		cases.String(), inner, indent), nil
}

// emitWith lowers `with resource as name { body }` to a scoped RAII guard
// calling name.close() on every exit path (emit_with.cpp).
func emitWith(s *State, n *ast.WithStmt, indent string) (string, error) {
	res, err := emitExpr(s, n.Resource)
	if err != nil {
		return "", err
	}
	body, err := emitStmts(s, n.Body, indent+"\t")
	if err != nil {
		return "", err
	}
	guard := "_with_guard_" + n.Name
	return fmt.Sprintf("{\n%s\tauto %s = %s;\n%s\tstruct %s { decltype(%s)& _res; ~%s() { _res.close(); } } _guard_%s{%s};\n%s%s}",
		indent, n.Name, res, indent, guard, n.Name, guard, n.Name, n.Name, body, indent), nil
}

// emitGo lowers `go call(args)` to a detached fiber (emit_go_spawn.cpp). The
// spawned fiber captures its environment by reference, so callers must keep
// any captured channels/values alive for the fiber's lifetime — the emitted
// comment names exactly which identifiers that applies to, so a reviewer of
// the generated C++ doesn't have to re-derive it (spec.md §5, Open Question
// 4: the by-reference capture behavior itself is kept as specified, this is
// a diagnostic aid alongside it, not a fix).
func emitGo(s *State, n *ast.GoStmt) (string, error) {
	call, err := emitExpr(s, n.Call)
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf("boost::fibers::fiber([&]() { %s; }).detach();", call)
	if captured := capturedIdents(n.Call.Args); len(captured) > 0 {
		line += " // captures by reference: " + strings.Join(captured, ", ")
	}
	return line, nil
}

func capturedIdents(args []ast.Expr) []string {
	var names []string
	seen := map[string]bool{}
	for _, a := range args {
		ref, ok := a.(*ast.VarRef)
		if !ok || ref.Name == "self" || seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		names = append(names, ref.Name)
	}
	return names
}
