package parser

import (
	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/lexer"
)

// parseBlock parses a `{ stmt* }` block.
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseStmt parses a single statement. A leading identifier is ambiguous
// between an inferred declaration, a typed declaration, an assignment, a
// field assignment, a method call, or a function call; the parser uses
// bounded lookahead (spec.md §4.2 "Statements") to disambiguate, never
// consuming past the statement's trailing ';'.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.SELECT:
		return p.parseSelectStmt()
	case lexer.WITH:
		return p.parseWithStmt()
	case lexer.GO:
		return p.parseGoStmt()
	case lexer.FAIL:
		return p.parseFailStmt()
	}

	if p.at(lexer.IDENT) {
		if s, ok, err := p.tryParseLeadingIdentStmt(); ok || err != nil {
			return s, err
		}
	}

	// Fallback: a declared-type declaration (`Type name = expr;`), or a
	// bare expression statement.
	if ty, ok, err := p.tryParseTypedDecl(); ok || err != nil {
		return ty, err
	}

	line := p.cur().Line
	expr, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Pos: pos(line), Expr: expr}, nil
}

// tryParseLeadingIdentStmt handles every statement form that starts with a
// bare identifier: `name := expr;`, `name = expr;`, `obj.field = expr;`,
// `obj.method(args);`, `name(args);`. It backtracks to the mark on
// mismatch so the caller can try the next alternative.
func (p *Parser) tryParseLeadingIdentStmt() (ast.Stmt, bool, error) {
	save := p.mark()
	line := p.cur().Line
	name := p.advance().Lexeme

	switch p.cur().Kind {
	case lexer.WALRUS:
		p.advance()
		val, err := p.parseRHSExpr()
		if err != nil {
			return nil, true, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, true, err
		}
		return &ast.VarDeclStmt{Pos: pos(line), Name: name, Value: val}, true, nil

	case lexer.ASSIGN:
		p.advance()
		val, err := p.parseRHSExpr()
		if err != nil {
			return nil, true, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, true, err
		}
		return &ast.AssignStmt{Pos: pos(line), Name: name, Value: val}, true, nil

	case lexer.DOT:
		// `obj.field = expr;` or `obj.method(args);` — re-parse the full
		// postfix chain via the expression grammar, then decide which
		// statement shape it settled into.
		p.reset(save)
		expr, err := p.parsePrimary()
		if err != nil {
			return nil, true, err
		}
		if fa, ok := expr.(*ast.FieldAccessExpr); ok && p.at(lexer.ASSIGN) {
			p.advance()
			val, err := p.parseRHSExpr()
			if err != nil {
				return nil, true, err
			}
			if _, err := p.expect(lexer.SEMICOLON); err != nil {
				return nil, true, err
			}
			return &ast.FieldAssignStmt{Pos: pos(line), Object: fa.Object, Field: fa.Field, Value: val}, true, nil
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, true, err
		}
		return &ast.ExprStmt{Pos: pos(line), Expr: expr}, true, nil

	case lexer.LPAREN:
		p.reset(save)
		expr, err := p.parsePrimary()
		if err != nil {
			return nil, true, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, true, err
		}
		return &ast.ExprStmt{Pos: pos(line), Expr: expr}, true, nil
	}

	// Not one of the ident-led forms (e.g. the start of `Type name = ...`
	// where `name` is itself an identifier type) — backtrack.
	p.reset(save)
	return nil, false, nil
}

// tryParseTypedDecl handles `Type[?] name = expr;` where Type is a
// primitive keyword, Channel<T>, List<T>, fn(...) type, or a user type
// name followed by another identifier (disambiguating from a bare
// expression statement that merely starts with a type-shaped identifier).
func (p *Parser) tryParseTypedDecl() (ast.Stmt, bool, error) {
	save := p.mark()
	line := p.cur().Line

	switch p.cur().Kind {
	case lexer.INT_TY, lexer.STR_TY, lexer.BOOL_TY, lexer.CHAR_TY, lexer.F32_TY,
		lexer.F64_TY, lexer.U32_TY, lexer.U64_TY, lexer.CINT_TY, lexer.CSTR_TY,
		lexer.VOID_TY, lexer.CHANNEL, lexer.LIST, lexer.FN:
		// These are unambiguously types.
	case lexer.IDENT:
		if !p.peekAt(lexer.IDENT) && !(p.peekAt(lexer.QUESTION) && p.peekN(2).Kind == lexer.IDENT) {
			return nil, false, nil
		}
	default:
		return nil, false, nil
	}

	ty, err := p.parseType()
	if err != nil {
		p.reset(save)
		return nil, false, nil
	}
	optional := false
	if p.at(lexer.QUESTION) {
		p.advance()
		optional = true
	}
	if !p.at(lexer.IDENT) {
		p.reset(save)
		return nil, false, nil
	}
	name := p.advance().Lexeme
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		p.reset(save)
		return nil, false, nil
	}
	val, err := p.parseRHSExpr()
	if err != nil {
		return nil, true, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, true, err
	}
	return &ast.VarDeclStmt{Pos: pos(line), Name: name, DeclaredType: ty, Optional: optional, Value: val}, true, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance()
	if p.at(lexer.SEMICOLON) {
		p.advance()
		return &ast.ReturnStmt{Pos: pos(line)}, nil
	}
	val, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Pos: pos(line), Value: val}, nil
}

func (p *Parser) parseFailStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance()
	val, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.FailStmt{Pos: pos(line), Value: val}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance()
	cond, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody []ast.Stmt
	if p.at(lexer.ELSE) {
		p.advance()
		if p.at(lexer.IF) {
			nested, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			elseBody = []ast.Stmt{nested}
		} else {
			elseBody, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	return &ast.IfStmt{Pos: pos(line), Cond: cond, Then: then, Else: elseBody}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance()
	cond, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Pos: pos(line), Cond: cond, Body: body}, nil
}

// parseForStmt covers both `for i in start..end { }` and
// `for x in collection { }` (spec.md §4.2, §3 ForStmt).
func (p *Parser) parseForStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance()
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	first, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}

	var start, end ast.Expr
	var collection ast.Expr
	if p.at(lexer.RANGE) {
		p.advance()
		last, err := p.parseRHSExpr()
		if err != nil {
			return nil, err
		}
		start, end = first, last
	} else {
		collection = first
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{
		Pos: pos(line), Var: name.Lexeme, Collection: collection,
		RangeStart: start, RangeEnd: end, Body: body,
	}, nil
}

// parseWithStmt parses `with resource as name { body }` (spec.md §4.2,
// §5 resource scope).
func (p *Parser) parseWithStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance()
	resource, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.AS); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WithStmt{Pos: pos(line), Resource: resource, Name: name.Lexeme, Body: body}, nil
}

// parseGoStmt parses `go call(args);` — the call expression must be a
// CallExpr (spec.md §3 GoStmt).
func (p *Parser) parseGoStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance()
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return nil, p.unexpected("'go' requires a function call")
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.GoStmt{Pos: pos(line), Call: call}, nil
}
