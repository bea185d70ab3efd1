package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// generateFunction lowers a top-level function. In the fiber runtime an
// `async` function is a plain C++ function that may block inside a channel
// op — there is no coroutine return-type wrapping (contrast emit_function.cpp's
// `asio::awaitable<T>` form, which belongs to the rejected ASIO-coroutine
// lowering).
func generateFunction(s *State, fn *ast.FunctionDef) (string, error) {
	savedFallible, savedAsync := s.InFallible, s.InAsyncFunc
	s.InFallible = fn.ErrorType != ""
	s.InAsyncFunc = fn.Async
	defer func() { s.InFallible, s.InAsyncFunc = savedFallible, savedAsync }()

	ret := "void"
	if fn.ReturnType != nil {
		ret = mapType(baseOf(fn.ReturnType))
	}
	if fn.ErrorType != "" {
		ret = "nog::rt::Result<" + ret + ">"
	}
	if fn.Name == "main" {
		ret = "int"
	}

	var params []string
	for _, p := range fn.Params {
		params = append(params, mapType(baseOf(p.Type))+" "+p.Name)
	}

	body, err := emitStmts(s, fn.Body, "\t")
	if err != nil {
		return "", err
	}

	if fn.Name == "main" && !endsInExplicitReturn(fn.Body) {
		body += "\treturn 0;\n"
	}

	return fmt.Sprintf("%s %s(%s) {\n%s}\n\n", ret, fn.Name, strings.Join(params, ", "), body), nil
}

func endsInExplicitReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ast.ReturnStmt)
	return ok
}
