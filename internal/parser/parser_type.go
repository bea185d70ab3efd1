package parser

import (
	"github.com/nog-lang/nogc/internal/ast"
	"github.com/nog-lang/nogc/internal/lexer"
)

var primitiveKinds = map[lexer.Kind]string{
	lexer.INT_TY:  "int",
	lexer.STR_TY:  "str",
	lexer.BOOL_TY: "bool",
	lexer.CHAR_TY: "char",
	lexer.F32_TY:  "f32",
	lexer.F64_TY:  "f64",
	lexer.U32_TY:  "u32",
	lexer.U64_TY:  "u64",
	lexer.CINT_TY: "cint",
	lexer.CSTR_TY: "cstr",
	lexer.VOID_TY: "void",
}

// parseType parses one type per spec.md §4.2 "Types": a primitive keyword,
// Channel<T>, List<T>, a fn(...) -> R shape, or a (possibly qualified,
// possibly generic) identifier. A trailing '?' is left to the caller
// (declarations, not the type grammar itself, carry Optional).
func (p *Parser) parseType() (*ast.Type, error) {
	line := p.cur().Line

	if prim, ok := primitiveKinds[p.cur().Kind]; ok {
		p.advance()
		t := ast.NewType(line)
		t.Primitive = prim
		return t, nil
	}

	switch p.cur().Kind {
	case lexer.CHANNEL:
		p.advance()
		elem, err := p.parseGenericArg()
		if err != nil {
			return nil, err
		}
		t := ast.NewType(line)
		t.Channel = elem
		return t, nil

	case lexer.LIST:
		p.advance()
		elem, err := p.parseGenericArg()
		if err != nil {
			return nil, err
		}
		t := ast.NewType(line)
		t.List = elem
		return t, nil

	case lexer.FN:
		return p.parseFuncType(line)

	case lexer.IDENT:
		name := p.advance().Lexeme
		t := ast.NewType(line)
		t.Name = name

		if p.at(lexer.DOT) {
			p.advance()
			member, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			t.Qualifier = name
			t.Name = member.Lexeme
		}

		if p.at(lexer.LT) {
			generic, err := p.parseGenericArg()
			if err != nil {
				return nil, err
			}
			t.Generic = generic
		}
		return t, nil
	}

	return nil, p.unexpected("expected type")
}

// parseGenericArg parses the `<T>` suffix shared by Channel<T>, List<T>,
// and Name<T>.
func (p *Parser) parseGenericArg() (*ast.Type, error) {
	if _, err := p.expect(lexer.LT); err != nil {
		return nil, err
	}
	inner, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return nil, err
	}
	return inner, nil
}

// parseFuncType parses `fn(T1, T2) -> R`, with `-> R` optional (defaults
// to void).
func (p *Parser) parseFuncType(line int) (*ast.Type, error) {
	if _, err := p.expect(lexer.FN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	t := ast.NewType(line)
	for !p.at(lexer.RPAREN) {
		pt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		t.FuncParams = append(t.FuncParams, pt)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	if p.at(lexer.ARROW) {
		p.advance()
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		t.FuncReturn = ret
	}
	return t, nil
}
