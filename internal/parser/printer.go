package parser

import (
	"fmt"
	"strings"
)

// AstPrinter renders expressions in a fully parenthesized prefix form,
// e.g. (* (- 123) (group 45.67)).
type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

// Print renders a single expression.
func (p *AstPrinter) Print(expr Expr) string {
	switch expr.Kind() {
	case ExprKindBinary:
		e := expr.(*ExprBinary)
		return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case ExprKindGrouping:
		e := expr.(*ExprGrouping)
		return p.parenthesize("group", e.Expression)
	case ExprKindLiteral:
		e := expr.(*ExprLiteral)
		if s, ok := e.Value.(ValueString); ok {
			return s.GoString()
		}
		return e.Value.String()
	case ExprKindUnary:
		e := expr.(*ExprUnary)
		return p.parenthesize(e.Operator.Lexeme, e.Right)
	}

	return fmt.Sprintf("<%s>", expr.Kind())
}

// PrintStmt renders a statement, print statements as (print ...), expression
// statements as (; ...).
func (p *AstPrinter) PrintStmt(stmt Stmt) string {
	switch stmt.Kind() {
	case StmtKindPrint:
		return p.parenthesize("print", stmt.(*StmtPrint).Expression)
	case StmtKindExpression:
		return p.parenthesize(";", stmt.(*StmtExpression).Expression)
	}

	return fmt.Sprintf("<%s>", stmt.Kind())
}

func (p *AstPrinter) parenthesize(name string, exprs ...Expr) string {
	out := new(strings.Builder)
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, expr := range exprs {
		_, _ = out.WriteString(" ")
		_, _ = out.WriteString(p.Print(expr))
	}
	_, _ = out.WriteString(")")
	return out.String()
}
