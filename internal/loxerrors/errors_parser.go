package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrParseUnexpectedToken                       = errors.New("expected expression.")
	ErrParseExpectedRightParenToken               = errors.New("expected ')' after expression.")
	ErrParseExpectedSemicolonTokenAfterPrintValue = errors.New("expect ';' after print value.")
	ErrParseExpectedSemicolonTokenAfterExpr       = errors.New("expect ';' after value.")
	ErrParseTooDeeplyNested                       = errors.New("expression nested too deeply.")
)

func NewParseError(tok *token.Token, cause error) error {
	return &ParserError{tok: tok, cause: cause}
}

type ParserError struct {
	tok   *token.Token
	cause error
}

// Line returns the line of the offending token.
func (p *ParserError) Line() int {
	return p.tok.Line
}

// Token returns the offending token.
func (p *ParserError) Token() *token.Token {
	return p.tok
}

// Error implements error.
func (p *ParserError) Error() string {
	where := "at end"
	if p.tok.Type != token.EOF {
		where = fmt.Sprintf("at '%s'", p.tok.Lexeme)
	}
	return fmt.Sprintf("[line %d] parse error %s: %v", p.tok.Line, where, p.cause)
}

func (p *ParserError) Unwrap() error {
	return p.cause
}

var _ error = (*ParserError)(nil)
