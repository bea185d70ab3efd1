package types

import (
	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/errs"
)

// collect populates the struct/method/function/extern tables and reports
// the duplicate-definition invariants spec.md §3 lists: function names
// unique within a module; extern names unique and disjoint from functions;
// method names unique per owner struct; struct names unique within a
// module with error-struct names sharing that namespace.
func (c *Checker) collect(prog *ast.Program) {
	for _, s := range prog.Structs {
		if _, dup := c.structs[s.Name]; dup {
			c.errorAt(errs.TCDuplicateDef, s.Line(), "struct %q already defined", s.Name)
			continue
		}
		if _, dup := c.errorDefs[s.Name]; dup {
			c.errorAt(errs.TCDuplicateDef, s.Line(), "struct %q collides with error %q", s.Name, s.Name)
			continue
		}
		c.structs[s.Name] = s
	}

	for _, e := range prog.Errors {
		if _, dup := c.errorDefs[e.Name]; dup {
			c.errorAt(errs.TCDuplicateDef, e.Line(), "error %q already defined", e.Name)
			continue
		}
		if _, dup := c.structs[e.Name]; dup {
			c.errorAt(errs.TCDuplicateDef, e.Line(), "error %q collides with struct %q", e.Name, e.Name)
			continue
		}
		c.errorDefs[e.Name] = e
	}

	for _, fn := range prog.Functions {
		if _, dup := c.functions[fn.Name]; dup {
			c.errorAt(errs.TCDuplicateDef, fn.Line(), "function %q already defined", fn.Name)
			continue
		}
		c.functions[fn.Name] = fn
	}

	for _, ext := range prog.Externs {
		if _, dup := c.functions[ext.Name]; dup {
			c.errorAt(errs.TCDuplicateDef, ext.Line(), "extern %q collides with function %q", ext.Name, ext.Name)
			continue
		}
		if _, dup := c.externs[ext.Name]; dup {
			c.errorAt(errs.TCDuplicateDef, ext.Line(), "extern %q already declared", ext.Name)
			continue
		}
		c.externs[ext.Name] = ext
	}

	for _, m := range prog.Methods {
		key := methodKey{Owner: m.Owner, Name: m.Name}
		if _, dup := c.methods[key]; dup {
			c.errorAt(errs.TCDuplicateDef, m.Line(), "method %s::%s already defined", m.Owner, m.Name)
			continue
		}
		c.methods[key] = m
		c.methodsOf[m.Owner] = append(c.methodsOf[m.Owner], m)
	}
}

// lookupMethod finds a method by owner struct + name, local-module only.
func (c *Checker) lookupMethod(owner, name string) (*ast.MethodDef, bool) {
	m, ok := c.methods[methodKey{Owner: owner, Name: name}]
	return m, ok
}
