// Package emit lowers a type-checked nog program into C++20 source text
// (spec.md §4.5). It targets the fiber-based runtime in runtime/std.hpp —
// `nog::rt::Channel<T>` wraps a boost::fibers::buffered_channel, so `async`
// functions are plain functions that may block inside a channel op, not
// C++20 coroutines. Every function here takes a *State carrying the
// per-program context (test mode, extern signatures, imported modules)
// that the original C++ generator threaded through a CodeGenState struct.
package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/errs"
	"github.com/nog-lang/nogc/internal/module"
	"github.com/nog-lang/nogc/internal/types"
)

// State is the code generator's shared context, threaded through every
// emit function the way CodeGenState was threaded through the original
// C++ generator's free functions.
type State struct {
	TestMode    bool
	InFallible  bool
	InAsyncFunc bool
	Program     *ast.Program
	Imports     map[string]*module.Module
	Externs     map[string]*ast.ExternDef

	structsByName map[string]*ast.StructDef
	errorsByName  map[string]*ast.ErrorDef
	methodsOf     map[string][]*ast.MethodDef

	orTemp int
}

func newState(prog *ast.Program, imports map[string]*module.Module, testMode bool) *State {
	s := &State{
		TestMode:      testMode,
		Program:       prog,
		Imports:       imports,
		Externs:       map[string]*ast.ExternDef{},
		structsByName: map[string]*ast.StructDef{},
		errorsByName:  map[string]*ast.ErrorDef{},
		methodsOf:     map[string][]*ast.MethodDef{},
	}
	for _, ext := range prog.Externs {
		s.Externs[ext.Name] = ext
	}
	for _, sd := range prog.Structs {
		s.structsByName[sd.Name] = sd
	}
	for _, ed := range prog.Errors {
		s.errorsByName[ed.Name] = ed
	}
	for _, m := range prog.Methods {
		s.methodsOf[m.Owner] = append(s.methodsOf[m.Owner], m)
	}
	return s
}

func malformed(format string, args ...interface{}) error {
	return &errs.EmitError{Code: errs.EmitMalformedAST, Message: fmt.Sprintf(format, args...)}
}

// Generate lowers prog (with its resolved imports) into a complete C++20
// translation unit. When testMode is true the output also carries a
// `main()` harness that runs every `test_`-prefixed function and returns
// the failure count (spec.md §4.5 "Test emission mode").
func Generate(prog *ast.Program, imports map[string]*module.Module, testMode bool) (string, error) {
	s := newState(prog, imports, testMode)

	var out strings.Builder
	writeHeader(&out, s)

	if err := writeExternDecls(&out, s); err != nil {
		return "", err
	}

	if testMode {
		writeAssertHelper(&out)
	}

	for alias, mod := range imports {
		ns, err := generateModuleNamespace(s, alias, mod)
		if err != nil {
			return "", err
		}
		out.WriteString(ns)
	}

	for _, sd := range prog.Structs {
		def, err := generateStruct(s, sd)
		if err != nil {
			return "", err
		}
		out.WriteString(def)
		out.WriteString("\n\n")
	}
	for _, ed := range prog.Errors {
		out.WriteString(generateErrorDef(ed))
		out.WriteString("\n\n")
	}

	var testFuncs []*ast.FunctionDef
	for _, fn := range prog.Functions {
		def, err := generateFunction(s, fn)
		if err != nil {
			return "", err
		}
		out.WriteString(def)
		if testMode && strings.HasPrefix(fn.Name, "test_") {
			testFuncs = append(testFuncs, fn)
		}
	}

	if testMode {
		writeTestMain(&out, testFuncs)
	}

	return out.String(), nil
}

func writeHeader(out *strings.Builder, s *State) {
	if _, ok := s.Imports["http"]; ok {
		out.WriteString("#include <nog/http.hpp>\n\n")
		return
	}
	out.WriteString("#include <nog/std.hpp>\n")
	if _, ok := s.Imports["fs"]; ok {
		out.WriteString("#include <nog/fs.hpp>\n")
	}
	out.WriteString("\n")
}

func writeAssertHelper(out *strings.Builder) {
	out.WriteString("int _failures = 0;\n\n")
	out.WriteString("template<typename T, typename U>\n")
	out.WriteString("void _assert_eq(T a, U b, int line) {\n")
	out.WriteString("\tif (a != b) {\n")
	out.WriteString("\t\tstd::cerr << \"line \" << line << \": FAIL: \" << a << \" != \" << b << std::endl;\n")
	out.WriteString("\t\t_failures++;\n")
	out.WriteString("\t}\n")
	out.WriteString("}\n\n")
}

func writeTestMain(out *strings.Builder, fns []*ast.FunctionDef) {
	out.WriteString("\nint main() {\n")
	out.WriteString("\tnog::rt::io_ctx = std::make_shared<boost::asio::io_context>();\n")
	out.WriteString("\tboost::fibers::use_scheduling_algorithm<\n")
	out.WriteString("\t\tboost::fibers::asio::round_robin>(nog::rt::io_ctx);\n\n")
	for _, fn := range fns {
		out.WriteString("\tboost::fibers::fiber(" + fn.Name + ").join();\n")
	}
	out.WriteString("\treturn _failures;\n")
	out.WriteString("}\n")
}

func generateModuleNamespace(s *State, alias string, mod *module.Module) (string, error) {
	var out strings.Builder
	out.WriteString("namespace " + alias + " {\n\n")

	saved := s.Program
	s.Program = mod.MergedProgram

	var externs []*ast.ExternDef
	for _, ext := range mod.MergedProgram.Externs {
		if ext.Visibility == ast.Public {
			externs = append(externs, ext)
		}
	}
	if len(externs) > 0 {
		out.WriteString("extern \"C\" {\n")
		for _, ext := range externs {
			ret := mapType(baseOf(ext.ReturnType))
			var params []string
			for _, p := range ext.Params {
				params = append(params, mapType(baseOf(p.Type))+" "+p.Name)
			}
			out.WriteString("\t" + ret + " " + ext.Name + "(" + strings.Join(params, ", ") + ");\n")
		}
		out.WriteString("}\n\n")
	}

	for _, sd := range mod.MergedProgram.Structs {
		if sd.Visibility != ast.Public {
			continue
		}
		def, err := generateStruct(s, sd)
		if err != nil {
			s.Program = saved
			return "", err
		}
		out.WriteString(def)
		out.WriteString("\n\n")
	}
	for _, fn := range mod.MergedProgram.Functions {
		if fn.Visibility != ast.Public {
			continue
		}
		def, err := generateFunction(s, fn)
		if err != nil {
			s.Program = saved
			return "", err
		}
		out.WriteString(def)
	}

	s.Program = saved
	out.WriteString("} // namespace " + alias + "\n\n")
	return out.String(), nil
}

// mapType translates a nog base type name to its C++ spelling. User struct
// and error names, and parametric Channel<T>/List<T> bases, pass through
// unchanged except for their element type (runtime/types.hpp).
func mapType(t string) string {
	switch t {
	case "int":
		return "int"
	case "str":
		return "std::string"
	case "bool":
		return "bool"
	case "char":
		return "char"
	case "f32":
		return "float"
	case "f64":
		return "double"
	case "u32":
		return "uint32_t"
	case "u64":
		return "uint64_t"
	case "cint":
		return "int"
	case "cstr":
		return "const char*"
	case "":
		return "void"
	}
	if strings.HasPrefix(t, "Channel<") {
		return "nog::rt::Channel<" + mapType(elemOf(t)) + ">"
	}
	if strings.HasPrefix(t, "List<") {
		return "std::vector<" + mapType(elemOf(t)) + ">"
	}
	return t
}

func elemOf(base string) string {
	start := strings.IndexByte(base, '<')
	if start < 0 || !strings.HasSuffix(base, ">") {
		return ""
	}
	return base[start+1 : len(base)-1]
}

func objTypeBase(n *ast.MethodCallExpr) (string, error) {
	ti, ok := n.ObjectType.(types.TypeInfo)
	if !ok {
		return "", malformed("method call %q reached the emitter without a resolved object type", n.Method)
	}
	return ti.Base, nil
}
