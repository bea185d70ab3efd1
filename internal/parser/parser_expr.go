package parser

import (
	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/lexer"
)

var comparisonOps = map[lexer.Kind]string{
	lexer.EQ:  "==",
	lexer.NEQ: "!=",
	lexer.LT:  "<",
	lexer.GT:  ">",
	lexer.LE:  "<=",
	lexer.GE:  ">=",
}

var additiveOps = map[lexer.Kind]string{
	lexer.PLUS:  "+",
	lexer.MINUS: "-",
	lexer.STAR:  "*",
	lexer.SLASH: "/",
}

// parseRHSExpr is the entry point used wherever the grammar wants a full
// expression including the error-handling sugar (spec.md §4.2 "Error
// handling sugar"): `expr or <handler>` and `expr default fallback`.
func (p *Parser) parseRHSExpr() (ast.Expr, error) {
	return p.parseOrExpr()
}

// parseOrExpr wraps a default-level expression with an optional `or
// <handler>` suffix, right-attached per spec.
func (p *Parser) parseOrExpr() (ast.Expr, error) {
	line := p.cur().Line
	inner, err := p.parseDefaultExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.OR) {
		return inner, nil
	}
	p.advance()
	handler, err := p.parseOrHandler()
	if err != nil {
		return nil, err
	}
	return &ast.OrExpr{Pos: pos(line), Inner: inner, Handler: handler}, nil
}

// parseOrHandler parses one of: `return [expr]`, `fail <err>`, `{ stmts }`,
// `match err { arm, ... }`.
func (p *Parser) parseOrHandler() (ast.OrHandler, error) {
	switch p.cur().Kind {
	case lexer.RETURN:
		p.advance()
		if p.at(lexer.SEMICOLON) {
			return ast.OrHandler{Kind: ast.OrReturn}, nil
		}
		val, err := p.parseRHSExpr()
		if err != nil {
			return ast.OrHandler{}, err
		}
		return ast.OrHandler{Kind: ast.OrReturn, ReturnValue: val}, nil

	case lexer.FAIL:
		p.advance()
		val, err := p.parseRHSExpr()
		if err != nil {
			return ast.OrHandler{}, err
		}
		return ast.OrHandler{Kind: ast.OrFail, FailValue: val}, nil

	case lexer.LBRACE:
		body, err := p.parseBlock()
		if err != nil {
			return ast.OrHandler{}, err
		}
		return ast.OrHandler{Kind: ast.OrBlock, Block: body}, nil

	case lexer.MATCH:
		p.advance()
		if p.at(lexer.ERR) { // the matched error variable, e.g. `match err {`
			p.advance()
		} else if _, err := p.expect(lexer.IDENT); err != nil {
			return ast.OrHandler{}, err
		}
		if _, err := p.expect(lexer.LBRACE); err != nil {
			return ast.OrHandler{}, err
		}
		var arms []ast.MatchArm
		for !p.at(lexer.RBRACE) {
			arm, err := p.parseMatchArm()
			if err != nil {
				return ast.OrHandler{}, err
			}
			arms = append(arms, arm)
			if p.at(lexer.COMMA) {
				p.advance()
			}
		}
		if _, err := p.expect(lexer.RBRACE); err != nil {
			return ast.OrHandler{}, err
		}
		return ast.OrHandler{Kind: ast.OrMatch, Arms: arms}, nil
	}

	return ast.OrHandler{}, p.invalidOrHandler(p.cur().Line)
}

// parseMatchArm parses one `type [binding] => body` or `_ => body` arm
// (`->` is also accepted in place of `=>`). body is either a `fail`
// statement or an expression (spec.md §4.2).
func (p *Parser) parseMatchArm() (ast.MatchArm, error) {
	var arm ast.MatchArm
	if p.at(lexer.IDENT) && p.cur().Lexeme == "_" {
		p.advance()
	} else {
		errType, err := p.expect(lexer.IDENT)
		if err != nil {
			return arm, err
		}
		arm.ErrType = errType.Lexeme
		if p.at(lexer.IDENT) {
			arm.Binding = p.advance().Lexeme
		}
	}

	if p.at(lexer.ASSIGN) && p.peekAt(lexer.GT) { // `=>` lexes as '=' then '>'
		p.advance()
		p.advance()
	} else if _, err := p.expect(lexer.ARROW); err != nil {
		return arm, err
	}

	if p.at(lexer.FAIL) {
		line := p.cur().Line
		p.advance()
		val, err := p.parseRHSExpr()
		if err != nil {
			return arm, err
		}
		arm.Stmt = &ast.FailStmt{Pos: pos(line), Value: val}
		return arm, nil
	}

	expr, err := p.parseRHSExpr()
	if err != nil {
		return arm, err
	}
	arm.Expr = expr
	return arm, nil
}

// parseDefaultExpr wraps a comparison-level expression with an optional
// `default fallback` suffix, a level below `or`.
func (p *Parser) parseDefaultExpr() (ast.Expr, error) {
	line := p.cur().Line
	inner, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.DEFAULT) {
		return inner, nil
	}
	p.advance()
	fallback, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return &ast.DefaultExpr{Pos: pos(line), Inner: inner, Fallback: fallback}, nil
}

// parseComparison is precedence level 1: ==, !=, <, >, <=, >=, and `x is
// none`.
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		if p.at(lexer.IS) {
			line := p.cur().Line
			p.advance()
			if _, err := p.expect(lexer.NONE); err != nil {
				return nil, err
			}
			left = &ast.IsNoneExpr{Pos: pos(line), Operand: left}
			continue
		}
		op, ok := comparisonOps[p.cur().Kind]
		if !ok {
			return left, nil
		}
		line := p.cur().Line
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Pos: pos(line), Op: op, Left: left, Right: right}
	}
}

// parseAdditive is precedence level 2: +, -, *, /, left-associative, equal
// precedence (spec.md §4.2).
func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := additiveOps[p.cur().Kind]
		if !ok {
			return left, nil
		}
		line := p.cur().Line
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Pos: pos(line), Op: op, Left: left, Right: right}
	}
}

// parsePrimary is precedence level 3: unary prefixes, literals, references,
// parenthesized/grouped expressions, struct/list/channel constructors, and
// postfix field access / method calls / calls.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	line := p.cur().Line

	switch p.cur().Kind {
	case lexer.BANG:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpr{Pos: pos(line), Operand: operand}, nil

	case lexer.AMP:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.AddrOfExpr{Pos: pos(line), Operand: operand}, nil

	case lexer.AWAIT:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpr{Pos: pos(line), Operand: operand}, nil

	case lexer.FAIL:
		p.advance()
		val, err := p.parseRHSExpr()
		if err != nil {
			return nil, err
		}
		return &ast.FailExpr{Pos: pos(line), Value: val}, nil
	}

	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(expr)
}

// parsePostfix handles `.field`, `.method(args)`, and `(args)` chained
// arbitrarily, per spec.md §4.2 level 3 "primary + postfix".
func (p *Parser) parsePostfix(expr ast.Expr) (ast.Expr, error) {
	for {
		switch p.cur().Kind {
		case lexer.DOT:
			line := p.cur().Line
			p.advance()
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			if p.at(lexer.LPAREN) {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				expr = &ast.MethodCallExpr{Pos: pos(line), Object: expr, Method: name.Lexeme, Args: args}
				continue
			}
			expr = &ast.FieldAccessExpr{Pos: pos(line), Object: expr, Field: name.Lexeme}

		case lexer.LPAREN:
			line := p.cur().Line
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Pos: pos(line), Callee: expr, Args: args}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.at(lexer.RPAREN) {
		arg, err := p.parseRHSExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parseAtom parses literals, references, grouped expressions, and the
// Channel<T>()/List<T>()/list-literal/struct-literal constructors.
func (p *Parser) parseAtom() (ast.Expr, error) {
	line := p.cur().Line
	tok := p.cur()

	switch tok.Kind {
	case lexer.INT:
		p.advance()
		return &ast.IntLit{Pos: pos(line), Value: tok.Lexeme}, nil
	case lexer.FLOAT:
		p.advance()
		return &ast.FloatLit{Pos: pos(line), Value: tok.Lexeme}, nil
	case lexer.STRING:
		p.advance()
		return &ast.StringLit{Pos: pos(line), Value: tok.Lexeme}, nil
	case lexer.CHAR:
		p.advance()
		return &ast.CharLit{Pos: pos(line), Value: tok.Lexeme[0]}, nil
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Pos: pos(line), Value: true}, nil
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Pos: pos(line), Value: false}, nil
	case lexer.NONE:
		p.advance()
		return &ast.NoneLit{Pos: pos(line)}, nil
	case lexer.ERR:
		// `err` as a value names the error caught by an `or` handler.
		p.advance()
		return &ast.VarRef{Pos: pos(line), Name: "err"}, nil

	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseRHSExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Pos: pos(line), Inner: inner}, nil

	case lexer.LBRACKET:
		p.advance()
		var elems []ast.Expr
		for !p.at(lexer.RBRACKET) {
			e, err := p.parseRHSExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.ListLiteralExpr{Pos: pos(line), Elems: elems}, nil

	case lexer.CHANNEL:
		p.advance()
		elem, err := p.parseGenericArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ChannelCreateExpr{Pos: pos(line), Elem: elem}, nil

	case lexer.LIST:
		p.advance()
		elem, err := p.parseGenericArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ListCreateExpr{Pos: pos(line), Elem: elem}, nil

	case lexer.IDENT:
		name := p.advance().Lexeme

		if p.at(lexer.LBRACE) && p.structNames[name] {
			return p.parseStructLiteral(line, name)
		}

		if p.importAliases[name] && p.at(lexer.DOT) && p.peekAt(lexer.IDENT) {
			// Qualified reference `module.name`; may still turn into a
			// call once parsePostfix sees a following '('.
			save := p.mark()
			p.advance() // consume '.'
			member := p.advance().Lexeme
			if p.at(lexer.LPAREN) {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				return &ast.CallExpr{
					Pos:    pos(line),
					Callee: &ast.QualifiedRef{Pos: pos(line), Module: name, Name: member},
					Args:   args,
				}, nil
			}
			p.reset(save)
		}

		if p.funcNames[name] && !p.at(lexer.LPAREN) {
			return &ast.FuncRef{Pos: pos(line), Name: name}, nil
		}
		return &ast.VarRef{Pos: pos(line), Name: name}, nil
	}

	return nil, p.unexpected("expected expression")
}

// parseStructLiteral parses `Name { field: value, ... }`.
func (p *Parser) parseStructLiteral(line int, name string) (ast.Expr, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var fields []ast.StructLiteralField
	for !p.at(lexer.RBRACE) {
		fname, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseRHSExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructLiteralField{Name: fname.Lexeme, Value: val})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructLiteralExpr{Pos: pos(line), StructName: name, Fields: fields}, nil
}
