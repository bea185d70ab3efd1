// Package parser turns a nog token stream into an *ast.Program (spec.md
// §4.2). Parsing is recursive-descent with a three-level precedence climb
// for expressions. There is no error recovery: the first ParseError halts
// parsing.
package parser

import (
	"fmt"

	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/errs"
	"github.com/nog-lang/nogc/internal/lexer"
)

// Parser walks a fixed token slice (the lexer already ran to completion),
// which makes save/restore backtracking a cheap index copy.
type Parser struct {
	toks []lexer.Token
	pos  int

	// prescan tables, populated before the main walk (spec.md §4.2
	// "Pre-scan"), so forward references to later definitions resolve.
	funcNames   map[string]bool
	structNames map[string]bool
	errNames    map[string]bool

	// importAliases collects the alias of each import seen so far. Since
	// imports must precede every other definition (spec.md §4.2 "Top-level
	// order"), this set is complete by the time any function body is
	// parsed, which is what lets parseAtom tell a module-qualified call
	// apart from an ordinary object method call.
	importAliases map[string]bool
}

// New creates a Parser over a complete token stream.
func New(toks []lexer.Token) *Parser {
	p := &Parser{toks: toks, importAliases: map[string]bool{}}
	p.prescan()
	return p
}

// ParseProgram tokenizes nothing itself — toks must already be the full
// output of lexer.Tokenize — and produces the merged-file-free Program for
// one source file.
func ParseProgram(toks []lexer.Token) (*ast.Program, error) {
	p := New(toks)
	return p.parseProgram()
}

// ------------------------------------------------------------------
// Token cursor
// ------------------------------------------------------------------

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() lexer.Token {
	return p.peekN(1)
}

func (p *Parser) peekN(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k lexer.Kind) bool     { return p.cur().Kind == k }
func (p *Parser) peekAt(k lexer.Kind) bool { return p.peek().Kind == k }

// mark/reset implement the bounded-lookahead backtracking spec.md §4.2
// requires for statement disambiguation.
func (p *Parser) mark() int      { return p.pos }
func (p *Parser) reset(mark int) { p.pos = mark }

// expect consumes the current token if it matches k, else raises a
// ParseError naming what was expected.
func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.unexpected(fmt.Sprintf("expected %s", k))
}

// unexpected builds the exact diagnostic spec.md §4.2 "Failure semantics"
// specifies.
func (p *Parser) unexpected(context string) error {
	t := p.cur()
	msg := fmt.Sprintf("unexpected token '%s' at line %d", t.Lexeme, t.Line)
	if context != "" {
		msg = fmt.Sprintf("%s: %s", context, msg)
	}
	return &errs.ParseError{Code: errs.ParUnexpectedToken, Line: t.Line, Message: msg}
}

func pos(line int) ast.Pos { return ast.Pos{L: line} }

// ------------------------------------------------------------------
// Pre-scan (spec.md §4.2 "Pre-scan")
// ------------------------------------------------------------------

func (p *Parser) prescan() {
	p.funcNames = map[string]bool{}
	p.structNames = map[string]bool{}
	p.errNames = map[string]bool{}

	for i := 0; i < len(p.toks); i++ {
		t := p.toks[i]
		switch t.Kind {
		case lexer.FN:
			if i+1 < len(p.toks) && p.toks[i+1].Kind == lexer.IDENT {
				p.funcNames[p.toks[i+1].Lexeme] = true
			}
		case lexer.IDENT:
			if i+2 < len(p.toks) && p.toks[i+1].Kind == lexer.DCOLON {
				switch p.toks[i+2].Kind {
				case lexer.STRUCT:
					p.structNames[t.Lexeme] = true
				case lexer.ERR:
					p.errNames[t.Lexeme] = true
				}
			}
		}
	}
}

// ------------------------------------------------------------------
// Program
// ------------------------------------------------------------------

// parseProgram parses imports (which must precede every other top-level
// definition), then definitions in any order, until EOF.
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	for p.at(lexer.IMPORT) {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		prog.Imports = append(prog.Imports, imp)
	}

	for !p.at(lexer.EOF) {
		if p.at(lexer.IMPORT) {
			return nil, &errs.ParseError{
				Code:    errs.ParImportsAfterDefs,
				Line:    p.cur().Line,
				Message: "imports must precede definitions",
			}
		}
		decl, err := p.parseTopLevelDef()
		if err != nil {
			return nil, err
		}
		p.appendDecl(prog, decl)
	}

	return prog, nil
}

func (p *Parser) appendDecl(prog *ast.Program, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.StructDef:
		prog.Structs = append(prog.Structs, d)
	case *ast.ErrorDef:
		prog.Errors = append(prog.Errors, d)
	case *ast.FunctionDef:
		prog.Functions = append(prog.Functions, d)
	case *ast.MethodDef:
		prog.Methods = append(prog.Methods, d)
	case *ast.ExternDef:
		prog.Externs = append(prog.Externs, d)
	}
}

// parseImport parses `import a.b.c;`. Alias is the last dotted segment
// (spec.md §3 Module).
func (p *Parser) parseImport() (*ast.ImportDecl, error) {
	line := p.cur().Line
	if _, err := p.expect(lexer.IMPORT); err != nil {
		return nil, err
	}
	first, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	path := first.Lexeme
	alias := first.Lexeme
	for p.at(lexer.DOT) {
		p.advance()
		seg, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		path += "." + seg.Lexeme
		alias = seg.Lexeme
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	p.importAliases[alias] = true
	return &ast.ImportDecl{Pos: pos(line), Path: path, Alias: alias}, nil
}
