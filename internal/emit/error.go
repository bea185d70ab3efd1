package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// generateErrorDef lowers `Name :: err { fields }` to a struct inheriting
// nog::rt::Error, with a constructor taking the message, the declared
// fields, and an optional cause (codegen/emit_error.cpp, normalized from
// bishop::rt::Error to nog::rt::Error).
func generateErrorDef(def *ast.ErrorDef) string {
	var out strings.Builder
	out.WriteString("struct " + def.Name + " : nog::rt::Error {\n")
	for _, f := range def.Fields {
		out.WriteString("\t" + mapType(baseOf(f.Type)) + " " + f.Name + ";\n")
	}

	var params []string
	var inits []string
	params = append(params, "std::string msg")
	for _, f := range def.Fields {
		params = append(params, mapType(baseOf(f.Type))+" "+f.Name+"_")
		inits = append(inits, fmt.Sprintf("%s(%s_)", f.Name, f.Name))
	}
	params = append(params, "std::shared_ptr<nog::rt::Error> cause = nullptr")

	baseInit := "nog::rt::Error(msg, cause)"
	initList := append([]string{baseInit}, inits...)

	out.WriteString("\n\t" + def.Name + "(" + strings.Join(params, ", ") + ")\n")
	out.WriteString("\t\t: " + strings.Join(initList, ", ") + " {}\n")
	out.WriteString("};")
	return out.String()
}
