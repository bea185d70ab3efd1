package types

import (
	"fmt"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/errs"
	"github.com/nog-lang/nogc/internal/module"
)

// Result is the checker's contract: either an empty Errors list (success;
// the AST is annotated where needed) or a non-empty one the driver
// surfaces to the user (spec.md §4.4 "Contract"). Warnings never block
// emission.
type Result struct {
	Errors   []*errs.TypeError
	Warnings []*errs.Warning
}

// OK reports whether the program type-checked.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

type methodKey struct{ Owner, Name string }

// Checker holds one compilation unit's symbol tables and accumulated
// diagnostics (spec.md §3 "Symbol tables (per compilation unit)").
type Checker struct {
	filename string
	imports  map[string]*module.Module

	structs   map[string]*ast.StructDef
	errorDefs map[string]*ast.ErrorDef
	functions map[string]*ast.FunctionDef
	externs   map[string]*ast.ExternDef
	methods   map[methodKey]*ast.MethodDef
	methodsOf map[string][]*ast.MethodDef

	errors   []*errs.TypeError
	warnings []*errs.Warning

	currentStruct    string
	currentReturn    TypeInfo
	currentErrorType string
	inAsyncContext   bool
}

// Check runs the full contract over one Program: collect, then validate
// every method and function (spec.md §4.4 "Passes").
func Check(filename string, prog *ast.Program, imports map[string]*module.Module) *Result {
	c := &Checker{
		filename:  filename,
		imports:   imports,
		structs:   map[string]*ast.StructDef{},
		errorDefs: map[string]*ast.ErrorDef{},
		functions: map[string]*ast.FunctionDef{},
		externs:   map[string]*ast.ExternDef{},
		methods:   map[methodKey]*ast.MethodDef{},
		methodsOf: map[string][]*ast.MethodDef{},
	}

	c.collect(prog)

	for _, fn := range prog.Functions {
		c.validateFunction(fn)
	}
	for _, m := range prog.Methods {
		c.validateMethod(m)
	}

	return &Result{Errors: c.errors, Warnings: c.warnings}
}

func (c *Checker) errorAt(code errs.Code, line int, format string, args ...interface{}) {
	c.errors = append(c.errors, &errs.TypeError{
		Code: code, Filename: c.filename, Line: line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *Checker) warnAt(line int, format string, args ...interface{}) {
	c.warnings = append(c.warnings, &errs.Warning{
		Filename: c.filename, Line: line,
		Message: fmt.Sprintf(format, args...),
	})
}
