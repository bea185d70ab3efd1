package types

import (
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/errs"
)

// typeOf dispatches on AST node kind (spec.md §4.4 "Expression typing").
func (c *Checker) typeOf(e ast.Expr, scope *Scope) TypeInfo {
	switch n := e.(type) {
	case *ast.IntLit:
		return Prim("int")
	case *ast.FloatLit:
		return Prim("f64")
	case *ast.StringLit:
		return Prim("str")
	case *ast.BoolLit:
		return Prim("bool")
	case *ast.CharLit:
		return Prim("char")
	case *ast.NoneLit:
		return NoneType()

	case *ast.VarRef:
		if info, ok := scope.Lookup(n.Name); ok {
			return info
		}
		if fn, ok := c.functions[n.Name]; ok {
			return TypeInfo{Base: "fn:" + fn.Name}
		}
		c.errorAt(errs.TCUndefinedName, n.Line(), "undefined name %q", n.Name)
		return Unknown()

	case *ast.FuncRef:
		if _, ok := c.functions[n.Name]; !ok {
			c.errorAt(errs.TCUndefinedName, n.Line(), "undefined function %q", n.Name)
			return Unknown()
		}
		return TypeInfo{Base: "fn:" + n.Name}

	case *ast.QualifiedRef:
		return c.qualifiedRefType(n, scope)

	case *ast.BinaryExpr:
		return c.binaryType(n, scope)

	case *ast.NotExpr:
		operand := c.typeOf(n.Operand, scope)
		if operand.Base != "bool" && operand.Base != "unknown" {
			c.errorAt(errs.TCTypeMismatch, n.Line(), "'!' requires bool, got %s", operand)
		}
		return Prim("bool")

	case *ast.AddrOfExpr:
		return c.typeOf(n.Operand, scope)

	case *ast.ParenExpr:
		return c.typeOf(n.Inner, scope)

	case *ast.IsNoneExpr:
		c.typeOf(n.Operand, scope)
		return Prim("bool")

	case *ast.AwaitExpr:
		if !c.inAsyncContext {
			c.errorAt(errs.TCInvalidContext, n.Line(), "'await' is only valid in an async context")
		}
		return c.typeOf(n.Operand, scope).Unwrapped()

	case *ast.ChannelCreateExpr:
		if !c.inAsyncContext {
			c.errorAt(errs.TCInvalidContext, n.Line(), "channel creation is only valid in an async context")
		}
		return TypeInfo{Base: "Channel<" + resolveType(n.Elem).Base + ">"}

	case *ast.ListCreateExpr:
		return TypeInfo{Base: "List<" + resolveType(n.Elem).Base + ">"}

	case *ast.ListLiteralExpr:
		elem := "unknown"
		for _, el := range n.Elems {
			t := c.typeOf(el, scope)
			if t.Base != "unknown" {
				elem = t.Base
			}
		}
		return TypeInfo{Base: "List<" + elem + ">"}

	case *ast.CallExpr:
		return c.callType(n, scope)

	case *ast.MethodCallExpr:
		return c.methodCallType(n, scope)

	case *ast.FieldAccessExpr:
		return c.fieldAccessType(n, scope)

	case *ast.StructLiteralExpr:
		return c.structLiteralType(n, scope)

	case *ast.FailExpr:
		c.typeOf(n.Value, scope)
		return Unknown()

	case *ast.OrExpr:
		inner := c.typeOf(n.Inner, scope)
		c.validateOrHandler(n.Handler, n.Line(), scope)
		return inner

	case *ast.DefaultExpr:
		inner := c.typeOf(n.Inner, scope)
		fallback := c.typeOf(n.Fallback, scope)
		result := inner
		result.Optional = false
		if !assignable(fallback, result) {
			c.errorAt(errs.TCTypeMismatch, n.Line(),
				"'default' fallback type %s is not assignable to %s", fallback, result)
		}
		return result
	}
	return Unknown()
}

// binaryType implements spec.md §4.4's binary-operator rules.
func (c *Checker) binaryType(n *ast.BinaryExpr, scope *Scope) TypeInfo {
	left := c.typeOf(n.Left, scope)
	right := c.typeOf(n.Right, scope)

	switch n.Op {
	case "==", "!=", "<", ">", "<=", ">=":
		return Prim("bool")
	case "+":
		if left.Base == "str" && right.Base == "str" {
			return Prim("str")
		}
		fallthrough
	default:
		if left.Base == "unknown" || right.Base == "unknown" {
			return Unknown()
		}
		if left.Base != right.Base {
			c.errorAt(errs.TCTypeMismatch, n.Line(),
				"operator %q requires identical operand types, got %s and %s", n.Op, left, right)
			return Unknown()
		}
		return left
	}
}

// qualifiedRefType resolves `module.name` against that module's PUBLIC
// symbol table only (spec.md §4.3 "Visibility"), when used as a bare
// value (e.g. passed as a callback) rather than called.
func (c *Checker) qualifiedRefType(n *ast.QualifiedRef, scope *Scope) TypeInfo {
	mod, ok := c.imports[n.Module]
	if !ok {
		c.errorAt(errs.TCUndefinedName, n.Line(), "unknown module alias %q", n.Module)
		return Unknown()
	}
	if fn, ok := mod.PublicFunction(n.Name); ok {
		return TypeInfo{Base: "fn:" + mod.Name + "." + fn.Name}
	}
	c.errorAt(errs.TCUndefinedName, n.Line(), "%s.%s is not defined or not public", n.Module, n.Name)
	return Unknown()
}

// callType resolves a function call's callee — local function, qualified
// function, extern, or a function-typed local. Calls to a local, qualified
// or extern function are checked for arity and per-argument compatibility
// (spec.md §4.4 "Calls"). A call through a function-typed local is not
// checked against the local's signature: its arguments are typed and the
// call's type is unknown.
func (c *Checker) callType(n *ast.CallExpr, scope *Scope) TypeInfo {
	switch callee := n.Callee.(type) {
	case *ast.VarRef:
		if fn, ok := c.functions[callee.Name]; ok {
			return c.checkCall(n, fn.Params, fn.ReturnType, scope)
		}
		if ext, ok := c.externs[callee.Name]; ok {
			return c.checkCall(n, ext.Params, ext.ReturnType, scope)
		}
		if info, ok := scope.Lookup(callee.Name); ok {
			for _, a := range n.Args {
				c.typeOf(a, scope)
			}
			_ = info
			return Unknown()
		}
		c.errorAt(errs.TCUndefinedName, n.Line(), "call to undefined function %q", callee.Name)
	case *ast.FuncRef:
		if fn, ok := c.functions[callee.Name]; ok {
			return c.checkCall(n, fn.Params, fn.ReturnType, scope)
		}
		c.errorAt(errs.TCUndefinedName, n.Line(), "call to undefined function %q", callee.Name)
	case *ast.QualifiedRef:
		mod, ok := c.imports[callee.Module]
		if !ok {
			c.errorAt(errs.TCUndefinedName, n.Line(), "unknown module alias %q", callee.Module)
			break
		}
		if fn, ok := mod.PublicFunction(callee.Name); ok {
			return c.checkCall(n, fn.Params, fn.ReturnType, scope)
		}
		if ext, ok := mod.PublicExtern(callee.Name); ok {
			return c.checkCall(n, ext.Params, ext.ReturnType, scope)
		}
		c.errorAt(errs.TCUndefinedName, n.Line(), "%s.%s is not defined or not public", callee.Module, callee.Name)
	}
	for _, a := range n.Args {
		c.typeOf(a, scope)
	}
	return Unknown()
}

func (c *Checker) checkCall(n *ast.CallExpr, params []ast.Param, retType *ast.Type, scope *Scope) TypeInfo {
	if len(n.Args) != len(params) {
		c.errorAt(errs.TCArityMismatch, n.Line(),
			"expected %d argument(s), got %d", len(params), len(n.Args))
	}
	for i, arg := range n.Args {
		argType := c.typeOf(arg, scope)
		if i >= len(params) {
			continue
		}
		expected := resolveType(params[i].Type)
		if !assignable(argType, expected) {
			c.errorAt(errs.TCTypeMismatch, arg.Line(),
				"argument %d: %s is not assignable to %s", i+1, argType, expected)
		} else if isNarrowingWarning(argType.Base, expected.Base) {
			c.warnAt(arg.Line(), "narrowing conversion %s to %s", argType.Base, expected.Base)
		}
	}
	if retType == nil {
		return Void()
	}
	return resolveType(retType)
}

// methodCallType computes the object's type, dispatches to the channel,
// list, str, or user-struct method table, and stamps ObjectType for the
// emitter (spec.md §3 "MethodCall carries a mutable object_type slot").
func (c *Checker) methodCallType(n *ast.MethodCallExpr, scope *Scope) TypeInfo {
	objType := c.typeOf(n.Object, scope)
	n.ObjectType = objType

	switch {
	case objType.Base == "unknown":
		for _, a := range n.Args {
			c.typeOf(a, scope)
		}
		return Unknown()

	case len(objType.Base) > 8 && objType.Base[:8] == "Channel<":
		return c.channelMethodType(n, objType, scope)

	case len(objType.Base) > 5 && objType.Base[:5] == "List<":
		return c.builtinTableMethodType(n, listMethods, elemOf(objType.Base), scope)

	case objType.Base == "str":
		return c.builtinTableMethodType(n, strMethods, "", scope)

	default:
		return c.userMethodType(n, objType.Base, scope)
	}
}

func (c *Checker) channelMethodType(n *ast.MethodCallExpr, objType TypeInfo, scope *Scope) TypeInfo {
	elem := elemOf(objType.Base)
	switch n.Method {
	case "send":
		if len(n.Args) != 1 {
			c.errorAt(errs.TCArityMismatch, n.Line(), "channel send takes exactly one argument")
		} else {
			argType := c.typeOf(n.Args[0], scope)
			expected := Prim(elem)
			if !assignable(argType, expected) {
				c.errorAt(errs.TCTypeMismatch, n.Line(), "send value %s is not assignable to %s", argType, expected)
			}
		}
		return Void().AsAwaitable()
	case "recv":
		if len(n.Args) != 0 {
			c.errorAt(errs.TCArityMismatch, n.Line(), "channel recv takes no arguments")
		}
		return Prim(elem).AsAwaitable()
	}
	c.errorAt(errs.TCUndefinedName, n.Line(), "channels have no method %q", n.Method)
	return Unknown()
}

func (c *Checker) builtinTableMethodType(n *ast.MethodCallExpr, table map[string]builtinSig, elem string, scope *Scope) TypeInfo {
	sig, ok := table[n.Method]
	if !ok {
		c.errorAt(errs.TCUndefinedName, n.Line(), "no such built-in method %q", n.Method)
		for _, a := range n.Args {
			c.typeOf(a, scope)
		}
		return Unknown()
	}
	params, ret := sig.substitute(elem)
	if len(n.Args) != len(params) {
		c.errorAt(errs.TCArityMismatch, n.Line(), "%q expects %d argument(s), got %d", n.Method, len(params), len(n.Args))
	}
	for i, a := range n.Args {
		argType := c.typeOf(a, scope)
		if i < len(params) && !assignable(argType, params[i]) {
			c.errorAt(errs.TCTypeMismatch, a.Line(), "argument %d: %s is not assignable to %s", i+1, argType, params[i])
		}
	}
	return ret
}

// userMethodType looks up a user-struct method by owner + name, local or
// qualified, checking arity excluding self (spec.md §4.4).
func (c *Checker) userMethodType(n *ast.MethodCallExpr, owner string, scope *Scope) TypeInfo {
	method, ok := c.lookupMethod(owner, n.Method)
	if !ok {
		if dot := strings.IndexByte(owner, '.'); dot >= 0 {
			if mod, found := c.imports[owner[:dot]]; found {
				method, ok = mod.PublicMethod(owner[dot+1:], n.Method)
			}
		}
	}
	if !ok {
		c.errorAt(errs.TCUndefinedName, n.Line(), "%s has no method %q", owner, n.Method)
		for _, a := range n.Args {
			c.typeOf(a, scope)
		}
		return Unknown()
	}

	params := method.Params
	if len(params) > 0 {
		params = params[1:] // exclude self
	}
	if len(n.Args) != len(params) {
		c.errorAt(errs.TCArityMismatch, n.Line(), "%s::%s expects %d argument(s), got %d", owner, n.Method, len(params), len(n.Args))
	}
	for i, a := range n.Args {
		argType := c.typeOf(a, scope)
		if i >= len(params) {
			continue
		}
		expected := resolveType(params[i].Type)
		if !assignable(argType, expected) {
			c.errorAt(errs.TCTypeMismatch, a.Line(), "argument %d: %s is not assignable to %s", i+1, argType, expected)
		}
	}

	ret := Void()
	if method.ReturnType != nil {
		ret = resolveType(method.ReturnType)
	}
	if method.Async {
		ret = ret.AsAwaitable()
	}
	return ret
}

// fieldAccessType finds a field by name on the object's struct type
// (spec.md §4.4 "Field access").
func (c *Checker) fieldAccessType(n *ast.FieldAccessExpr, scope *Scope) TypeInfo {
	objType := c.typeOf(n.Object, scope)
	if objType.Base == "unknown" {
		return Unknown()
	}
	s, ok := c.structs[objType.Base]
	if !ok {
		c.errorAt(errs.TCTypeMismatch, n.Line(), "%s is not a struct", objType)
		return Unknown()
	}
	for _, f := range s.Fields {
		if f.Name == n.Field {
			return resolveType(f.Type)
		}
	}
	c.errorAt(errs.TCUndefinedName, n.Line(), "%s has no field %q", objType.Base, n.Field)
	return Unknown()
}

// structLiteralType checks each provided field against the struct's
// declaration: unknown fields are errors, missing fields are not flagged
// (spec.md §4.4 "Struct literal"; Open Question 3, see SPEC_FULL.md §4.4).
func (c *Checker) structLiteralType(n *ast.StructLiteralExpr, scope *Scope) TypeInfo {
	def, ok := c.structs[n.StructName]
	if !ok {
		def2, ok2 := c.errorDefs[n.StructName]
		if !ok2 {
			c.errorAt(errs.TCUndefinedName, n.Line(), "undefined struct %q", n.StructName)
			for _, f := range n.Fields {
				c.typeOf(f.Value, scope)
			}
			return Unknown()
		}
		return c.checkStructFields(n, def2.Fields, scope, def2.Name)
	}
	return c.checkStructFields(n, def.Fields, scope, def.Name)
}

func (c *Checker) checkStructFields(n *ast.StructLiteralExpr, declared []ast.StructField, scope *Scope, name string) TypeInfo {
	fieldType := map[string]*ast.Type{}
	for _, f := range declared {
		fieldType[f.Name] = f.Type
	}
	for _, f := range n.Fields {
		ty, ok := fieldType[f.Name]
		valType := c.typeOf(f.Value, scope)
		if !ok {
			c.errorAt(errs.TCUndefinedName, n.Line(), "%s has no field %q", name, f.Name)
			continue
		}
		expected := resolveType(ty)
		if !assignable(valType, expected) {
			c.errorAt(errs.TCTypeMismatch, n.Line(), "field %q: %s is not assignable to %s", f.Name, valType, expected)
		}
	}
	return Prim(name)
}
