package parser

import (
	"fmt"
	"strings"

	"github.com/leonardinius/treelox/internal/token"
)

// RPNPrinter renders expressions in reverse Polish notation, e.g. 1 2 + 4 3 - *.
// Groupings vanish and unary minus is written as ~.
type RPNPrinter struct{}

func NewRPNPrinter() *RPNPrinter {
	return &RPNPrinter{}
}

func (p *RPNPrinter) Print(expr Expr) string {
	switch expr.Kind() {
	case ExprKindBinary:
		e := expr.(*ExprBinary)
		return p.reverse(e.Operator.Lexeme, e.Left, e.Right)
	case ExprKindGrouping:
		return p.reverse("", expr.(*ExprGrouping).Expression)
	case ExprKindLiteral:
		return expr.(*ExprLiteral).Value.String()
	case ExprKindUnary:
		e := expr.(*ExprUnary)
		operator := e.Operator.Lexeme
		if e.Operator.Type == token.MINUS {
			operator = "~"
		}
		return p.reverse(operator, e.Right)
	}

	return fmt.Sprintf("<%s>", expr.Kind())
}

// PrintStmt renders the statement's expression followed by its keyword, if any.
func (p *RPNPrinter) PrintStmt(stmt Stmt) string {
	switch stmt.Kind() {
	case StmtKindPrint:
		return p.reverse("print", stmt.(*StmtPrint).Expression)
	case StmtKindExpression:
		return p.Print(stmt.(*StmtExpression).Expression)
	}

	return fmt.Sprintf("<%s>", stmt.Kind())
}

func (p *RPNPrinter) reverse(name string, exprs ...Expr) string {
	out := new(strings.Builder)
	for _, expr := range exprs {
		_, _ = out.WriteString(p.Print(expr))
		_, _ = out.WriteString(" ")
	}
	_, _ = out.WriteString(name)
	return strings.TrimSuffix(out.String(), " ")
}
