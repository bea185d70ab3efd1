package parser

import (
	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/lexer"
)

// parseSelectStmt parses `select { (case <pattern> { body })* }` (spec.md
// §4.2 "select"). Each case pattern is one of `val := ch.recv()` (bind +
// recv), `ch.recv()` (unbound recv), or `ch.send(v)`; the parser
// normalizes all three into the SelectCase shape.
func (p *Parser) parseSelectStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // consume 'select'
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	var cases []ast.SelectCase
	for p.at(lexer.CASE) {
		c, err := p.parseSelectCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.SelectStmt{Pos: pos(line), Cases: cases}, nil
}

func (p *Parser) parseSelectCase() (ast.SelectCase, error) {
	var c ast.SelectCase
	p.advance() // consume 'case'

	if p.at(lexer.IDENT) && p.peekAt(lexer.WALRUS) {
		c.Binding = p.advance().Lexeme
		p.advance() // consume ':='
	}

	chanExpr, err := p.parsePrimary()
	if err != nil {
		return c, err
	}

	call, ok := chanExpr.(*ast.MethodCallExpr)
	if !ok || (call.Method != "recv" && call.Method != "send") {
		return c, p.invalidSelectCase(chanExpr.Line())
	}
	c.Channel = call.Object
	c.Operation = call.Method
	if call.Method == "send" {
		if len(call.Args) != 1 {
			return c, p.unexpected("ch.send expects exactly one argument")
		}
		c.SendValue = call.Args[0]
	}

	body, err := p.parseBlock()
	if err != nil {
		return c, err
	}
	c.Body = body
	return c, nil
}
