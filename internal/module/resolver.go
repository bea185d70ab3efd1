// Package module provides path resolution utilities for nog modules.
package module

import (
	"path/filepath"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// pathToDir maps a dotted import path `a.b.c` to `<root>/a/b/c` (spec.md
// §4.3 "Resolution").
func pathToDir(root, dottedPath string) string {
	segs := strings.Split(dottedPath, ".")
	return filepath.Join(append([]string{root}, segs...)...)
}

// aliasOfPath returns the last dotted segment, the alias the importer's
// scope binds it to (spec.md §3 Module).
func aliasOfPath(dottedPath string) string {
	segs := strings.Split(dottedPath, ".")
	return segs[len(segs)-1]
}

// PublicStruct looks up a struct definition by name, returning it only if
// public — cross-module lookups never see private definitions (spec.md
// §4.3 "Visibility").
func (m *Module) PublicStruct(name string) (*ast.StructDef, bool) {
	for _, s := range m.MergedProgram.Structs {
		if s.Name == name && s.Visibility == ast.Public {
			return s, true
		}
	}
	return nil, false
}

// PublicError looks up an error definition by name, public only.
func (m *Module) PublicError(name string) (*ast.ErrorDef, bool) {
	for _, e := range m.MergedProgram.Errors {
		if e.Name == name && e.Visibility == ast.Public {
			return e, true
		}
	}
	return nil, false
}

// PublicFunction looks up a function definition by name, public only.
func (m *Module) PublicFunction(name string) (*ast.FunctionDef, bool) {
	for _, f := range m.MergedProgram.Functions {
		if f.Name == name && f.Visibility == ast.Public {
			return f, true
		}
	}
	return nil, false
}

// PublicMethod looks up a method by owner struct and name, public only.
func (m *Module) PublicMethod(owner, name string) (*ast.MethodDef, bool) {
	for _, meth := range m.MergedProgram.Methods {
		if meth.Owner == owner && meth.Name == name && meth.Visibility == ast.Public {
			return meth, true
		}
	}
	return nil, false
}

// PublicExtern looks up an extern declaration by name, public only.
func (m *Module) PublicExtern(name string) (*ast.ExternDef, bool) {
	for _, e := range m.MergedProgram.Externs {
		if e.Name == name && e.Visibility == ast.Public {
			return e, true
		}
	}
	return nil, false
}

// AnyStruct/AnyExtern (unfiltered) back the local-module lookup case,
// where a module can see its own private definitions (spec.md §4.3:
// "Private symbols remain visible within their own module"). There is no
// AnyFunction/AnyMethod/AnyError counterpart: nothing in this checker
// type-checks a module's own body from inside that module's privacy
// boundary (the checker only ever runs over the entry program plus the
// Public* surface of its imports), so those would have no caller that
// isn't itself a visibility bug — cross-module function/method/error
// lookups always go through the Public* variants above.
func (m *Module) AnyStruct(name string) (*ast.StructDef, bool) {
	for _, s := range m.MergedProgram.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

func (m *Module) AnyExtern(name string) (*ast.ExternDef, bool) {
	for _, e := range m.MergedProgram.Externs {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}
