// Package module implements module loading and dependency resolution for
// nog projects (spec.md §4.3). A dotted import path `a.b.c` names the
// directory `<project_root>/a/b/c`; every source file in that directory is
// parsed and merged into a single Program. Loading is cached per path and
// guarded against cycles by a load-stack, grounded on the teacher's
// cache+loadStack loader idiom.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/errs"
	"github.com/nog-lang/nogc/internal/lexer"
	"github.com/nog-lang/nogc/internal/parser"
)

// sourceExt is the extension of nog source files.
const sourceExt = ".nog"

// maxParseWorkers bounds how many files within one module directory are
// lexed and parsed concurrently.
const maxParseWorkers = 8

// Module is one loaded, merged compilation unit (spec.md §3 "Module").
type Module struct {
	Name          string // last dotted segment
	DottedPath    string
	Directory     string // "" for built-in synthetic modules
	MergedProgram *ast.Program
	Deps          []string // dotted paths this module itself imports
}

// Loader resolves dotted import paths under a single project root, caching
// each module after its first load and detecting import cycles via a
// load-stack.
type Loader struct {
	root     string
	mu       sync.RWMutex
	cache    map[string]*Module
	aliasOf  map[string]string
	building map[string]bool
	builtins map[string]*Module
}

// NewLoader creates a Loader rooted at a project directory.
func NewLoader(root string) *Loader {
	return &Loader{
		root:     root,
		cache:    map[string]*Module{},
		aliasOf:  map[string]string{},
		building: map[string]bool{},
		builtins: builtinModules(),
	}
}

// Load resolves every module transitively required by rootImports, loading
// each exactly once, and returns a map from the alias bound in the
// importing scope to its Module (spec.md §4.3 "Contract").
func (l *Loader) Load(rootImports []*ast.ImportDecl) (map[string]*Module, error) {
	for _, imp := range rootImports {
		if err := l.loadRecursive(imp.Path, imp.Alias); err != nil {
			return nil, err
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]*Module, len(l.cache))
	for path, mod := range l.cache {
		result[l.aliasOf[path]] = mod
	}
	return result, nil
}

func (l *Loader) loadRecursive(dottedPath, alias string) error {
	l.mu.Lock()
	if _, ok := l.cache[dottedPath]; ok {
		l.aliasOf[dottedPath] = alias
		l.mu.Unlock()
		return nil
	}
	if l.building[dottedPath] {
		l.mu.Unlock()
		return &errs.ModuleError{
			Code:    errs.ModCyclicImport,
			Path:    dottedPath,
			Message: fmt.Sprintf("circular import: %s", dottedPath),
		}
	}
	l.building[dottedPath] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.building, dottedPath)
		l.mu.Unlock()
	}()

	mod, err := l.loadOne(dottedPath)
	if err != nil {
		return err
	}

	for _, imp := range mod.MergedProgram.Imports {
		if err := l.loadRecursive(imp.Path, imp.Alias); err != nil {
			return err
		}
	}

	l.mu.Lock()
	l.cache[dottedPath] = mod
	l.aliasOf[dottedPath] = alias
	l.mu.Unlock()
	return nil
}

// loadOne parses and merges every source file in the directory a dotted
// path names, or returns a built-in module when one is registered under
// that path (spec.md §4.3 "Built-in modules").
func (l *Loader) loadOne(dottedPath string) (*Module, error) {
	if builtin, ok := l.builtins[dottedPath]; ok {
		return builtin, nil
	}

	dir := pathToDir(l.root, dottedPath)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &errs.ModuleError{
			Code:    errs.ModNotFound,
			Path:    dottedPath,
			Message: fmt.Sprintf("module %q not found: no directory at %s", dottedPath, dir),
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &errs.ModuleError{
			Code:    errs.ModNotFound,
			Path:    dottedPath,
			Message: fmt.Sprintf("module %q: reading %s: %v", dottedPath, dir, err),
		}
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == sourceExt {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, &errs.ModuleError{
			Code:    errs.ModEmptyDirectory,
			Path:    dottedPath,
			Message: fmt.Sprintf("module %q: no %s files in %s", dottedPath, sourceExt, dir),
		}
	}
	sort.Strings(files)

	// Each file's lex+parse is independent, so a bounded worker pool runs
	// them concurrently; results are collected into an index-addressed
	// slice and merged back in file order for a deterministic Program
	// regardless of goroutine completion order (spec.md §5 extended down
	// to per-file lexing within a module directory).
	results := make([]fileResult, len(files))

	sem := make(chan struct{}, maxParseWorkers)
	var wg sync.WaitGroup
	for i, name := range files {
		i, name := i, name
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = parseFile(dottedPath, filepath.Join(dir, name))
		}()
	}
	wg.Wait()

	merged := &ast.Program{}
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		merged.Merge(r.prog)
	}

	deps := make([]string, 0, len(merged.Imports))
	for _, imp := range merged.Imports {
		deps = append(deps, imp.Path)
	}

	return &Module{
		Name:          aliasOfPath(dottedPath),
		DottedPath:    dottedPath,
		Directory:     dir,
		MergedProgram: merged,
		Deps:          deps,
	}, nil
}

// fileResult is one worker's lex+parse outcome for a single source file.
type fileResult struct {
	prog *ast.Program
	err  error
}

// parseFile reads, normalizes, lexes, and parses one source file.
func parseFile(dottedPath, path string) fileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: &errs.ModuleError{
			Code:    errs.ModNotFound,
			Path:    dottedPath,
			Message: fmt.Sprintf("module %q: reading %s: %v", dottedPath, path, err),
		}}
	}
	toks, err := lexer.Tokenize(string(lexer.Normalize(src)))
	if err != nil {
		return fileResult{err: err}
	}
	prog, err := parser.ParseProgram(toks)
	if err != nil {
		return fileResult{err: err}
	}
	return fileResult{prog: prog}
}
