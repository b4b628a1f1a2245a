package interpreter

import (
	"context"
	"fmt"
	"io"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

type Interpreter interface {
	// Interpret executes the statements in order.
	// Print statements write to the configured stdout as they run, so output
	// produced before a runtime error is kept.
	// The first error aborts the remaining statements.
	//
	// Not thread safe.
	Interpret(ctx context.Context, statements []parser.Stmt) error

	// Evaluate evaluates the given expression.
	// Returns the result of the expression and an error if any.
	//
	// Not thread safe.
	Evaluate(ctx context.Context, expr parser.Expr) (parser.Value, error)
}

type interpreter struct {
	stdout io.Writer
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	opts := newInterpreterOpts(options...)
	return &interpreter{stdout: opts.stdout}
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(ctx context.Context, statements []parser.Stmt) error {
	for _, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.execute(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// Evaluate implements Interpreter.
func (i *interpreter) Evaluate(ctx context.Context, expr parser.Expr) (parser.Value, error) {
	return i.evaluate(ctx, expr)
}

func (i *interpreter) execute(ctx context.Context, stmt parser.Stmt) error {
	switch stmt.Kind() {
	case parser.StmtKindExpression:
		return i.executeExpression(ctx, stmt.(*parser.StmtExpression))
	case parser.StmtKindPrint:
		return i.executePrint(ctx, stmt.(*parser.StmtPrint))
	}

	return i.unimplemented(loxerrors.ErrRuntimeUnimplementedStatement, stmt.Kind())
}

func (i *interpreter) executeExpression(ctx context.Context, stmt *parser.StmtExpression) error {
	_, err := i.evaluate(ctx, stmt.Expression)
	return err
}

func (i *interpreter) executePrint(ctx context.Context, stmt *parser.StmtPrint) error {
	value, err := i.evaluate(ctx, stmt.Expression)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(i.stdout, stringify(value))
	return err
}

func (i *interpreter) evaluate(ctx context.Context, expr parser.Expr) (parser.Value, error) {
	switch expr.Kind() {
	case parser.ExprKindLiteral:
		return expr.(*parser.ExprLiteral).Value, nil
	case parser.ExprKindGrouping:
		return i.evaluate(ctx, expr.(*parser.ExprGrouping).Expression)
	case parser.ExprKindUnary:
		return i.evaluateUnary(ctx, expr.(*parser.ExprUnary))
	case parser.ExprKindBinary:
		return i.evaluateBinary(ctx, expr.(*parser.ExprBinary))
	}

	return nil, i.unimplemented(loxerrors.ErrRuntimeUnimplementedExpression, expr.Kind())
}

func (i *interpreter) evaluateUnary(ctx context.Context, expr *parser.ExprUnary) (parser.Value, error) {
	right, err := i.evaluate(ctx, expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.MINUS:
		if err := i.checkNumberOperand(expr.Operator, right); err != nil {
			return nil, err
		}
		return -right.(parser.ValueFloat), nil
	case token.BANG:
		return parser.ValueBool(!isTruthy(right)), nil
	}

	return nil, i.unknownOperator(expr.Operator)
}

func (i *interpreter) evaluateBinary(ctx context.Context, expr *parser.ExprBinary) (parser.Value, error) {
	left, err := i.evaluate(ctx, expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(ctx, expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.BANG_EQUAL:
		return parser.ValueBool(!isEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return parser.ValueBool(isEqual(left, right)), nil
	case token.PLUS:
		if left, ok := left.(parser.ValueFloat); ok {
			if right, ok := right.(parser.ValueFloat); ok {
				return left + right, nil
			}
		}
		if left, ok := left.(parser.ValueString); ok {
			if right, ok := right.(parser.ValueString); ok {
				return left + right, nil
			}
		}
		return nil, loxerrors.NewRuntimeError(expr.Operator, loxerrors.ErrRuntimeOperandsMustNumbersOrStrings)
	}

	if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
		return nil, err
	}
	l, r := left.(parser.ValueFloat), right.(parser.ValueFloat)

	switch expr.Operator.Type {
	case token.GREATER:
		return parser.ValueBool(l > r), nil
	case token.GREATER_EQUAL:
		return parser.ValueBool(l >= r), nil
	case token.LESS:
		return parser.ValueBool(l < r), nil
	case token.LESS_EQUAL:
		return parser.ValueBool(l <= r), nil
	case token.MINUS:
		return l - r, nil
	case token.SLASH:
		return l / r, nil
	case token.STAR:
		return l * r, nil
	}

	return nil, i.unknownOperator(expr.Operator)
}

func (i *interpreter) checkNumberOperand(tok *token.Token, operand parser.Value) error {
	if operand.Type() == parser.ValueFloatType {
		return nil
	}

	return loxerrors.NewRuntimeError(tok, loxerrors.ErrRuntimeOperandMustBeNumber)
}

func (i *interpreter) checkNumberOperands(tok *token.Token, left, right parser.Value) error {
	if left.Type() == parser.ValueFloatType && right.Type() == parser.ValueFloatType {
		return nil
	}

	return loxerrors.NewRuntimeError(tok, loxerrors.ErrRuntimeOperandsMustBeNumbers)
}

func (i *interpreter) unknownOperator(tok *token.Token) error {
	return loxerrors.NewRuntimeError(tok, loxerrors.ErrRuntimeUnimplementedKind(loxerrors.ErrRuntimeUnimplementedExpression, tok.Type))
}

func (i *interpreter) unimplemented(cause error, kind fmt.Stringer) error {
	return loxerrors.NewRuntimeError(nil, loxerrors.ErrRuntimeUnimplementedKind(cause, kind))
}

var _ Interpreter = (*interpreter)(nil)
