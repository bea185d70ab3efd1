package errs

import "fmt"

// LexError is raised by the lexer on a malformed literal or a premature
// end of input (spec.md §4.1, §7).
type LexError struct {
	Code    Code
	Line    int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d: error: %s", e.Line, e.Message)
}

// ParseError is raised by the parser on an unexpected token. The first
// occurrence halts parsing — there is no error recovery (spec.md §4.2, §7).
type ParseError struct {
	Code    Code
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d: error: %s", e.Line, e.Message)
}

// ModuleError covers module-not-found, empty module directories, missing
// manifests, and circular imports (spec.md §4.3, §7).
type ModuleError struct {
	Code    Code
	Path    string
	Message string
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("error: %s", e.Message)
}

// TypeError is one accumulated diagnostic from the type checker. Unlike Lex
// and Parse errors, the checker never halts on the first one — it collects
// every TypeError across the whole program (spec.md §4.4, §7).
type TypeError struct {
	Code     Code
	Filename string
	Line     int
	Message  string
}

func (e *TypeError) Error() string {
	return e.Format()
}

// Format renders the user-visible `<filename>:<line>: error: <message>`
// form spec.md §7 specifies.
func (e *TypeError) Format() string {
	file := e.Filename
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("%s:%d: error: %s", file, e.Line, e.Message)
}

// Warning is a non-fatal diagnostic. Warnings never block emission; the
// f64→f32 narrowing case (SPEC_FULL.md §4.4) is the only source today.
type Warning struct {
	Filename string
	Line     int
	Message  string
}

func (w *Warning) String() string {
	file := w.Filename
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("%s:%d: warning: %s", file, w.Line, w.Message)
}

// EmitError is an internal-compiler-error: a malformed AST reaching the
// emitter after a successful type check should never happen (spec.md §7).
type EmitError struct {
	Code    Code
	Message string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("internal compiler error: %s", e.Message)
}
