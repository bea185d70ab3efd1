// Package pipeline wires the five compiler stages together: read the entry
// file, lex and parse it, resolve its imports through the module loader,
// type-check the merged view, and emit C++20 (spec.md §2, §4). It is the
// single entry point cmd/nogc calls; everything about reading a manifest,
// invoking a host C++ compiler, or running a resulting test binary stays
// with that out-of-scope driver.
package pipeline

import (
	"fmt"
	"os"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/emit"
	"github.com/nog-lang/nogc/internal/errs"
	"github.com/nog-lang/nogc/internal/lexer"
	"github.com/nog-lang/nogc/internal/module"
	"github.com/nog-lang/nogc/internal/parser"
	"github.com/nog-lang/nogc/internal/types"
)

// Result is everything a driver needs to finish the job: the emitted
// translation unit, the link-time FFI library set, and every diagnostic
// the checker produced short of a hard failure.
type Result struct {
	CPP        string
	ExternLibs []string
	Warnings   []*errs.Warning
	TypeErrors []*errs.TypeError
}

// Run compiles the nog program rooted at entryFile within projectRoot
// (projectRoot is the already-resolved directory dotted import paths are
// relative to — finding it from a manifest is the driver's job, per §6).
// It halts and returns the first Lex or Parse error, or a non-nil Result
// with TypeErrors populated if the type checker found problems; it never
// calls the emitter over an unchecked or ill-typed program.
func Run(projectRoot, entryFile string, testMode bool) (*Result, error) {
	prog, err := parseEntry(entryFile)
	if err != nil {
		return nil, err
	}

	imports, err := module.NewLoader(projectRoot).Load(prog.Imports)
	if err != nil {
		return nil, err
	}

	tc := types.Check(entryFile, prog, imports)
	if !tc.OK() {
		return &Result{TypeErrors: tc.Errors, Warnings: tc.Warnings}, nil
	}

	cpp, err := emit.Generate(prog, imports, testMode)
	if err != nil {
		return nil, err
	}

	return &Result{
		CPP:        cpp,
		ExternLibs: externLibraries(prog, imports),
		Warnings:   tc.Warnings,
	}, nil
}

// parseEntry reads, normalizes, lexes, and parses the project's entry file,
// mirroring internal/module's own parseFile (the same read→normalize→
// tokenize→parse shape, applied once to the root file instead of once per
// module-directory file). Lex and Parse errors carry no filename of their
// own (lexer.Tokenize and parser.ParseProgram take none), so this wraps
// them in a ModuleError that prefixes entryFile onto the message, giving
// callers the `<file>:<line>: error: <message>` shape spec.md §7 requires
// for every diagnostic kind uniformly.
func parseEntry(entryFile string) (*ast.Program, error) {
	src, err := os.ReadFile(entryFile)
	if err != nil {
		return nil, &errs.ModuleError{
			Code:    errs.ModNotFound,
			Path:    entryFile,
			Message: fmt.Sprintf("reading %s: %v", entryFile, err),
		}
	}

	toks, err := lexer.Tokenize(string(lexer.Normalize(src)))
	if err != nil {
		return nil, wrapEntryError(entryFile, err)
	}

	prog, err := parser.ParseProgram(toks)
	if err != nil {
		return nil, wrapEntryError(entryFile, err)
	}

	return prog, nil
}

func wrapEntryError(entryFile string, err error) error {
	switch e := err.(type) {
	case *errs.LexError:
		return &errs.ModuleError{
			Code:    e.Code,
			Path:    entryFile,
			Message: fmt.Sprintf("%s:%d: error: %s", entryFile, e.Line, e.Message),
		}
	case *errs.ParseError:
		return &errs.ModuleError{
			Code:    e.Code,
			Path:    entryFile,
			Message: fmt.Sprintf("%s:%d: error: %s", entryFile, e.Line, e.Message),
		}
	default:
		return err
	}
}

// externLibraries reports the distinct FFI library names across the entry
// program and every resolved import (emit.ExternLibraries only looks at
// the root program's own externs, but a driver linking the final binary
// needs the full transitive set — spec.md §4.6 "FFI library-name
// passthrough").
func externLibraries(prog *ast.Program, imports map[string]*module.Module) []string {
	seen := map[string]bool{}
	var libs []string
	add := func(names []string) {
		for _, n := range names {
			if seen[n] {
				continue
			}
			seen[n] = true
			libs = append(libs, n)
		}
	}
	add(emit.ExternLibraries(prog))
	for _, mod := range imports {
		if mod.MergedProgram == nil {
			continue
		}
		add(emit.ExternLibraries(mod.MergedProgram))
	}
	return libs
}
