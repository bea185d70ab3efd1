package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// generateStruct lowers a struct definition together with its methods
// (collected by owner name in newState) into a C++ struct body
// (codegen/emit_struct.cpp's struct_def_with_methods).
func generateStruct(s *State, def *ast.StructDef) (string, error) {
	var out strings.Builder
	out.WriteString("struct " + def.Name + " {\n")
	for _, f := range def.Fields {
		out.WriteString("\t" + mapType(baseOf(f.Type)) + " " + f.Name + ";\n")
	}

	for _, m := range s.methodsOf[def.Name] {
		sig, err := generateMethodSig(s, m)
		if err != nil {
			return "", err
		}
		body, err := emitStmts(s, m.Body, "\t\t")
		if err != nil {
			return "", err
		}
		out.WriteString("\n\t" + sig + " {\n" + body + "\t}\n")
	}

	out.WriteString("};")
	return out.String(), nil
}

func generateMethodSig(s *State, m *ast.MethodDef) (string, error) {
	ret := "void"
	if m.ReturnType != nil {
		ret = mapType(baseOf(m.ReturnType))
	}
	if m.ErrorType != "" {
		ret = "nog::rt::Result<" + ret + ">"
	}
	var params []string
	for _, p := range m.Params {
		if p.Name == "self" {
			continue
		}
		params = append(params, mapType(baseOf(p.Type))+" "+p.Name)
	}
	return fmt.Sprintf("%s %s(%s)", ret, m.Name, strings.Join(params, ", ")), nil
}
