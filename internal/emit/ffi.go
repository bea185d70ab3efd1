package emit

import (
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// writeExternDecls emits the `extern "C" { ... }` block for FFI functions
// (grounded on codegen/emit_ffi.cpp).
func writeExternDecls(out *strings.Builder, s *State) error {
	if len(s.Program.Externs) == 0 {
		return nil
	}
	out.WriteString("extern \"C\" {\n")
	for _, ext := range s.Program.Externs {
		ret := mapType(baseOf(ext.ReturnType))
		var params []string
		for _, p := range ext.Params {
			params = append(params, mapType(baseOf(p.Type))+" "+p.Name)
		}
		out.WriteString("\t" + ret + " " + ext.Name + "(" + strings.Join(params, ", ") + ");\n")
	}
	out.WriteString("}\n\n")
	return nil
}

// ExternLibraries reports the distinct FFI library names an extern block
// declares, so the driver can forward them to the linker (spec.md §4.6
// "FFI library-name passthrough").
func ExternLibraries(prog *ast.Program) []string {
	seen := map[string]bool{}
	var libs []string
	for _, ext := range prog.Externs {
		if ext.Library == "" || seen[ext.Library] {
			continue
		}
		seen[ext.Library] = true
		libs = append(libs, ext.Library)
	}
	return libs
}

// baseOf converts a parsed *ast.Type into the nog base-type string that
// mapType expects — e.g. "Channel<int>", "List<str>", "module.Name".
func baseOf(t *ast.Type) string {
	if t == nil {
		return ""
	}
	switch {
	case t.Primitive != "":
		return t.Primitive
	case t.Channel != nil:
		return "Channel<" + baseOf(t.Channel) + ">"
	case t.List != nil:
		return "List<" + baseOf(t.List) + ">"
	case t.Qualifier != "":
		base := t.Qualifier + "." + t.Name
		if t.Generic != nil {
			base += "<" + baseOf(t.Generic) + ">"
		}
		return base
	default:
		base := t.Name
		if t.Generic != nil {
			base += "<" + baseOf(t.Generic) + ">"
		}
		return base
	}
}
