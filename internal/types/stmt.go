package types

import (
	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/errs"
)

// validateFunction runs pass 3 of spec.md §4.4: no self check, otherwise
// identical to method validation.
func (c *Checker) validateFunction(fn *ast.FunctionDef) {
	scope := NewScope(nil)
	for _, p := range fn.Params {
		scope.Declare(p.Name, resolveType(p.Type))
	}

	c.currentStruct = ""
	c.currentErrorType = fn.ErrorType
	c.inAsyncContext = fn.Async
	if fn.ReturnType != nil {
		c.currentReturn = resolveType(fn.ReturnType)
	} else {
		c.currentReturn = Void()
	}

	c.validateBlock(fn.Body, scope)

	if !c.currentReturn.IsVoid && !endsInReturn(fn.Body) {
		c.errorAt(errs.TCMissingReturn, fn.Line(),
			"function %q does not return a value on every path", fn.Name)
	}
}

// validateMethod runs pass 2 of spec.md §4.4: requires the first parameter
// be named `self` and typed as the owner struct.
func (c *Checker) validateMethod(m *ast.MethodDef) {
	scope := NewScope(nil)

	if len(m.Params) == 0 || m.Params[0].Name != "self" {
		c.errorAt(errs.TCInvalidContext, m.Line(),
			"method %s::%s must declare 'self' as its first parameter", m.Owner, m.Name)
	} else {
		scope.Declare("self", Prim(m.Owner))
	}
	for _, p := range m.Params[minInt(1, len(m.Params)):] {
		scope.Declare(p.Name, resolveType(p.Type))
	}

	c.currentStruct = m.Owner
	c.currentErrorType = m.ErrorType
	c.inAsyncContext = m.Async
	if m.ReturnType != nil {
		c.currentReturn = resolveType(m.ReturnType)
	} else {
		c.currentReturn = Void()
	}

	c.validateBlock(m.Body, scope)

	if !c.currentReturn.IsVoid && !endsInReturn(m.Body) {
		c.errorAt(errs.TCMissingReturn, m.Line(),
			"method %s::%s does not return a value on every path", m.Owner, m.Name)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// validateBlock walks a statement list under the given scope — the caller
// owns whether that scope is fresh (spec.md §4.4 "Scoping").
func (c *Checker) validateBlock(body []ast.Stmt, scope *Scope) {
	for _, s := range body {
		c.validateStmt(s, scope)
	}
}

func (c *Checker) validateStmt(s ast.Stmt, scope *Scope) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		valType := c.typeOf(n.Value, scope)
		declared := valType
		if n.DeclaredType != nil {
			declared = resolveType(n.DeclaredType)
			declared.Optional = n.Optional
			if !assignable(valType, declared) {
				c.errorAt(errs.TCTypeMismatch, n.Line(),
					"cannot assign %s to declared type %s", valType, declared)
			} else if isNarrowingWarning(valType.Base, declared.Base) {
				c.warnAt(n.Line(), "narrowing conversion %s to %s", valType.Base, declared.Base)
			}
		}
		if !scope.Declare(n.Name, declared) {
			c.errorAt(errs.TCDuplicateDef, n.Line(), "%q is already declared in this scope", n.Name)
		}

	case *ast.AssignStmt:
		valType := c.typeOf(n.Value, scope)
		expected, ok := scope.Lookup(n.Name)
		if !ok {
			c.errorAt(errs.TCUndefinedName, n.Line(), "assignment to undefined name %q", n.Name)
			return
		}
		if !assignable(valType, expected) {
			c.errorAt(errs.TCTypeMismatch, n.Line(), "cannot assign %s to %q of type %s", valType, n.Name, expected)
		}

	case *ast.FieldAssignStmt:
		objType := c.typeOf(n.Object, scope)
		valType := c.typeOf(n.Value, scope)
		if objType.Base == "unknown" {
			return
		}
		def, ok := c.structs[objType.Base]
		if !ok {
			c.errorAt(errs.TCTypeMismatch, n.Line(), "%s is not a struct", objType)
			return
		}
		for _, f := range def.Fields {
			if f.Name == n.Field {
				expected := resolveType(f.Type)
				if !assignable(valType, expected) {
					c.errorAt(errs.TCTypeMismatch, n.Line(), "cannot assign %s to field %q of type %s", valType, n.Field, expected)
				}
				return
			}
		}
		c.errorAt(errs.TCUndefinedName, n.Line(), "%s has no field %q", objType.Base, n.Field)

	case *ast.ReturnStmt:
		if n.Value == nil {
			if !c.currentReturn.IsVoid {
				c.errorAt(errs.TCTypeMismatch, n.Line(), "bare return in a function declared to return %s", c.currentReturn)
			}
			return
		}
		valType := c.typeOf(n.Value, scope)
		if !assignable(valType, c.currentReturn) {
			c.errorAt(errs.TCTypeMismatch, n.Line(), "return value %s is not assignable to declared return %s", valType, c.currentReturn)
		} else if isNarrowingWarning(valType.Base, c.currentReturn.Base) {
			c.warnAt(n.Line(), "narrowing conversion %s to %s", valType.Base, c.currentReturn.Base)
		}

	case *ast.IfStmt:
		c.typeOf(n.Cond, scope)
		c.validateBlock(n.Then, NewScope(scope))
		if len(n.Else) > 0 {
			c.validateBlock(n.Else, NewScope(scope))
		}

	case *ast.WhileStmt:
		c.typeOf(n.Cond, scope)
		c.validateBlock(n.Body, NewScope(scope))

	case *ast.ForStmt:
		inner := NewScope(scope)
		if n.Collection != nil {
			collType := c.typeOf(n.Collection, scope)
			inner.Declare(n.Var, Prim(elemOf(collType.Base)))
		} else {
			c.typeOf(n.RangeStart, scope)
			c.typeOf(n.RangeEnd, scope)
			inner.Declare(n.Var, Prim("int"))
		}
		c.validateBlock(n.Body, inner)

	case *ast.SelectStmt:
		for _, cs := range n.Cases {
			c.validateSelectCase(cs, scope)
		}

	case *ast.WithStmt:
		resType := c.typeOf(n.Resource, scope)
		inner := NewScope(scope)
		inner.Declare(n.Name, resType)
		c.validateBlock(n.Body, inner)

	case *ast.GoStmt:
		wasAsync := c.inAsyncContext
		c.inAsyncContext = true
		c.typeOf(n.Call, scope)
		c.inAsyncContext = wasAsync

	case *ast.FailStmt:
		c.typeOf(n.Value, scope)

	case *ast.ExprStmt:
		c.typeOf(n.Expr, scope)
	}
}

func (c *Checker) validateSelectCase(cs ast.SelectCase, scope *Scope) {
	chanType := c.typeOf(cs.Channel, scope)
	inner := NewScope(scope)
	if cs.Binding != "" {
		inner.Declare(cs.Binding, Prim(elemOf(chanType.Base)))
	}
	if cs.Operation == "send" && cs.SendValue != nil {
		c.typeOf(cs.SendValue, scope)
	}
	c.validateBlock(cs.Body, inner)
}

// validateOrHandler type-checks the handler attached to an `or` expression
// (spec.md §4.2 "Error handling sugar", §4.4).
func (c *Checker) validateOrHandler(h ast.OrHandler, line int, scope *Scope) {
	// Every handler but `return` can name the caught error as `err`.
	errScope := NewScope(scope)
	errScope.Declare("err", Unknown())
	switch h.Kind {
	case ast.OrReturn:
		if h.ReturnValue != nil {
			valType := c.typeOf(h.ReturnValue, scope)
			if !assignable(valType, c.currentReturn) {
				c.errorAt(errs.TCTypeMismatch, line,
					"'or return' value %s is not assignable to declared return %s", valType, c.currentReturn)
			}
		} else if !c.currentReturn.IsVoid {
			c.errorAt(errs.TCTypeMismatch, line, "bare 'or return' in a function declared to return %s", c.currentReturn)
		}
	case ast.OrFail:
		if h.FailValue != nil {
			c.typeOf(h.FailValue, errScope)
		}
	case ast.OrBlock:
		c.validateBlock(h.Block, NewScope(errScope))
	case ast.OrMatch:
		for _, arm := range h.Arms {
			inner := NewScope(errScope)
			if arm.Binding != "" {
				base := arm.ErrType
				if base == "" {
					base = "unknown"
				}
				inner.Declare(arm.Binding, Prim(base))
			}
			if arm.Expr != nil {
				c.typeOf(arm.Expr, inner)
			}
			if arm.Stmt != nil {
				c.validateStmt(arm.Stmt, inner)
			}
		}
	}
}

// endsInReturn implements spec.md §4.4's structural missing-return check:
// a body ends in a return if its last statement is `return`/`fail`, or an
// if/else where both branches structurally end in a return.
func endsInReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	switch last := body[len(body)-1].(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.FailStmt:
		return true
	case *ast.IfStmt:
		return len(last.Else) > 0 && endsInReturn(last.Then) && endsInReturn(last.Else)
	}
	return false
}
