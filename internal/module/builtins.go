package module

import (
	"fmt"

	"github.com/nog-lang/nogc/internal/lexer"
	"github.com/nog-lang/nogc/internal/parser"
)

// builtinSources holds the nog-syntax signatures of the two synthetic
// modules spec.md §4.3 requires every project to be able to import without
// a directory on disk: `http` and `fs`. Both are declared entirely with
// `@extern` functions and plain structs, so the parser's ordinary grammar
// produces them with no special-casing — there is no body to emit, only a
// symbol table the type checker and emitter resolve calls against.
var builtinSources = map[string]string{
	"http": `
Response :: struct {
	status: int,
	body: str,
}

@extern("nog_http") fn get(url: str) -> Response;
@extern("nog_http") fn post(url: str, body: str) -> Response;
`,
	"fs": `
@extern("nog_fs") fn read(path: str) -> str;
@extern("nog_fs") fn write(path: str, contents: str) -> bool;
@extern("nog_fs") fn exists(path: str) -> bool;
`,
}

// builtinModules parses builtinSources once and returns them keyed by the
// dotted path a project's imports name them with.
func builtinModules() map[string]*Module {
	mods := make(map[string]*Module, len(builtinSources))
	for path, src := range builtinSources {
		toks, err := lexer.Tokenize(src)
		if err != nil {
			panic(fmt.Sprintf("builtin module %q failed to tokenize: %v", path, err))
		}
		prog, err := parser.ParseProgram(toks)
		if err != nil {
			panic(fmt.Sprintf("builtin module %q failed to parse: %v", path, err))
		}
		mods[path] = &Module{
			Name:          path,
			DottedPath:    path,
			Directory:     "",
			MergedProgram: prog,
		}
	}
	return mods
}
