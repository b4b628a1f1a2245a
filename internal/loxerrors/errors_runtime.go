package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrRuntimeOperandMustBeNumber          = errors.New("Operand must be a number.")
	ErrRuntimeOperandsMustBeNumbers        = errors.New("Operands must be numbers.")
	ErrRuntimeOperandsMustNumbersOrStrings = errors.New("Operands must be two numbers or two strings.")
	ErrRuntimeUnimplementedStatement       = errors.New("Unimplemented statement.")
	ErrRuntimeUnimplementedExpression      = errors.New("Unimplemented expression.")
)

func ErrRuntimeUnimplementedKind(cause error, kind fmt.Stringer) error {
	return fmt.Errorf("%w (%s)", cause, kind)
}

// NewRuntimeError wraps cause with the operator token it was raised at.
// tok may be nil for failures not attributable to a single token.
func NewRuntimeError(tok *token.Token, cause error) error {
	return &RuntimeError{tok, cause}
}

type RuntimeError struct {
	tok   *token.Token
	cause error
}

// Line returns the line of the operator token, or 0 when unknown.
func (r *RuntimeError) Line() int {
	if r.tok == nil {
		return 0
	}
	return r.tok.Line
}

// Error implements error.
func (r *RuntimeError) Error() string {
	if r.tok == nil {
		return r.cause.Error()
	}
	return fmt.Sprintf("%v\n[line %d] in script", r.cause, r.tok.Line)
}

func (r *RuntimeError) Unwrap() error {
	return r.cause
}

var _ error = (*RuntimeError)(nil)
