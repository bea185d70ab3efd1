package parser

import (
	"fmt"

	"github.com/nog-lang/nogc/internal/errs"
)

// errAt raises a ParseError at an explicit line, for callers that already
// know the right line to blame (e.g. the opening token of a construct)
// rather than the parser's current cursor.
func (p *Parser) errAt(code errs.Code, line int, format string, args ...interface{}) error {
	return &errs.ParseError{Code: code, Line: line, Message: fmt.Sprintf(format, args...)}
}

// missingBody reports PAR003 when a definition's block body is absent —
// distinct from a generic unexpected-token error because the fix is
// specific (add `{ ... }`).
func (p *Parser) missingBody(line int, what string) error {
	return p.errAt(errs.ParMissingBody, line, "%s is missing its body", what)
}

// invalidSelectCase reports PAR004 for a select case whose head does not
// reduce to ch.recv() or ch.send(v).
func (p *Parser) invalidSelectCase(line int) error {
	return p.errAt(errs.ParInvalidSelect, line, "select case must be a channel recv or send")
}

// invalidOrHandler reports PAR005 for an `or` suffix that is none of
// return/fail/block/match.
func (p *Parser) invalidOrHandler(line int) error {
	return p.errAt(errs.ParInvalidOrHandler, line, "expected return, fail, block, or match after 'or'")
}
