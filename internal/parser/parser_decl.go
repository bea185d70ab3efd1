package parser

import (
	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/lexer"
)

// parseTopLevelDef parses one top-level definition: an optional run of
// doc-comment tokens, an optional `@extern("lib")` annotation, an optional
// `@private` marker, then a struct/error/method/function/extern body
// (spec.md §4.2 "Top-level order").
func (p *Parser) parseTopLevelDef() (ast.Decl, error) {
	doc := p.collectDocComment()

	var externLib string
	hasExtern := false
	visibility := ast.Public

	for p.at(lexer.AT) {
		save := p.mark()
		p.advance()
		if p.at(lexer.EXTERN) {
			p.advance()
			if _, err := p.expect(lexer.LPAREN); err != nil {
				return nil, err
			}
			lib, err := p.expect(lexer.STRING)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			hasExtern = true
			externLib = lib.Lexeme
			continue
		}
		if p.at(lexer.PRIVATE) {
			p.advance()
			visibility = ast.Private
			continue
		}
		p.reset(save)
		break
	}

	if hasExtern {
		if _, err := p.expect(lexer.FN); err != nil {
			return nil, err
		}
		return p.parseExternDef(externLib, visibility, doc)
	}

	switch p.cur().Kind {
	case lexer.FN:
		return p.parseFunctionDef(visibility, doc)
	case lexer.IDENT:
		return p.parseNameDef(visibility, doc)
	}

	return nil, p.unexpected("expected a top-level definition")
}

// collectDocComment gathers a run of leading DOC_COMMENT tokens into the
// attached comment for the following definition (spec.md §4.2).
func (p *Parser) collectDocComment() *ast.DocComment {
	var lines []string
	for p.at(lexer.DOC_COMMENT) {
		lines = append(lines, p.advance().Lexeme)
	}
	if len(lines) == 0 {
		return nil
	}
	return &ast.DocComment{Lines: lines}
}

// parseNameDef dispatches `Name :: ...` to struct, error, or method
// definition based on the token following `::` (spec.md §4.2
// "Struct/error/method dispatch").
func (p *Parser) parseNameDef(visibility ast.Visibility, doc *ast.DocComment) (ast.Decl, error) {
	line := p.cur().Line
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DCOLON); err != nil {
		return nil, err
	}

	switch p.cur().Kind {
	case lexer.STRUCT:
		return p.parseStructDef(line, name.Lexeme, visibility, doc)
	case lexer.ERR:
		return p.parseErrorDef(line, name.Lexeme, visibility, doc)
	case lexer.IDENT:
		return p.parseMethodDef(line, name.Lexeme, visibility, doc)
	}

	return nil, p.unexpected("expected struct, err, or method body after '::'")
}

func (p *Parser) parseFieldList() ([]ast.StructField, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var fields []ast.StructField
	for !p.at(lexer.RBRACE) {
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructField{Name: name.Lexeme, Type: ty})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return fields, nil
}

// parseStructDef parses `Name :: struct { field: Type, ... }`.
func (p *Parser) parseStructDef(line int, name string, visibility ast.Visibility, doc *ast.DocComment) (*ast.StructDef, error) {
	p.advance() // consume 'struct'
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &ast.StructDef{Pos: pos(line), Name: name, Fields: fields, Visibility: visibility, Doc: doc}, nil
}

// parseErrorDef parses `Name :: err;` or `Name :: err { field: Type, ... }`.
func (p *Parser) parseErrorDef(line int, name string, visibility ast.Visibility, doc *ast.DocComment) (*ast.ErrorDef, error) {
	p.advance() // consume 'err'
	if p.at(lexer.SEMICOLON) {
		p.advance()
		return &ast.ErrorDef{Pos: pos(line), Name: name, Visibility: visibility, Doc: doc}, nil
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &ast.ErrorDef{Pos: pos(line), Name: name, Fields: fields, Visibility: visibility, Doc: doc}, nil
}

// parseMethodDef parses `Owner :: name(self, params) -> R { body }`, with
// self as params[0] per spec.md §3's invariant.
func (p *Parser) parseMethodDef(line int, owner string, visibility ast.Visibility, doc *ast.DocComment) (*ast.MethodDef, error) {
	async := false
	if p.at(lexer.IDENT) && p.cur().Lexeme == "async" {
		async = true
		p.advance()
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	retType, errType, err := p.parseReturnClause()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.LBRACE) {
		return nil, p.missingBody(line, "method "+owner+"::"+name.Lexeme)
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.MethodDef{
		Pos: pos(line), Owner: owner, Name: name.Lexeme, Params: params,
		ReturnType: retType, ErrorType: errType, Body: body,
		Visibility: visibility, Async: async, Doc: doc,
	}, nil
}

// parseFunctionDef parses `fn name(params) -> R { body }`.
func (p *Parser) parseFunctionDef(visibility ast.Visibility, doc *ast.DocComment) (*ast.FunctionDef, error) {
	line := p.cur().Line
	p.advance() // consume 'fn'

	async := false
	if p.at(lexer.IDENT) && p.cur().Lexeme == "async" {
		async = true
		p.advance()
	}

	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	retType, errType, err := p.parseReturnClause()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.LBRACE) {
		return nil, p.missingBody(line, "function "+name.Lexeme)
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{
		Pos: pos(line), Name: name.Lexeme, Params: params,
		ReturnType: retType, ErrorType: errType, Body: body,
		Visibility: visibility, Async: async, Doc: doc,
	}, nil
}

// parseExternDef parses `@extern("lib") fn name(params) -> R;`.
func (p *Parser) parseExternDef(lib string, visibility ast.Visibility, doc *ast.DocComment) (*ast.ExternDef, error) {
	line := p.cur().Line
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var retType *ast.Type
	if p.at(lexer.ARROW) {
		p.advance()
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExternDef{Pos: pos(line), Name: name.Lexeme, Params: params, ReturnType: retType, Library: lib, Visibility: visibility, Doc: doc}, nil
}

// parseParamList parses `(name: Type, ...)`. A method receiver may be
// written as bare `self`, with no type (the checker types it as the owner).
func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(lexer.RPAREN) {
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if name.Lexeme == "self" && !p.at(lexer.COLON) {
			params = append(params, ast.Param{Name: name.Lexeme})
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Lexeme, Type: ty})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseReturnClause parses the optional `-> R` and, distinctly, an
// optional declared error type sugar `-> R ! ErrType` used by fallible
// definitions. Functions with no `!` clause have ErrorType == "".
func (p *Parser) parseReturnClause() (*ast.Type, string, error) {
	if !p.at(lexer.ARROW) {
		return nil, "", nil
	}
	p.advance()
	retType, err := p.parseType()
	if err != nil {
		return nil, "", err
	}
	errType := ""
	if p.at(lexer.BANG) {
		p.advance()
		errName, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, "", err
		}
		errType = errName.Lexeme
	}
	return retType, errType, nil
}
