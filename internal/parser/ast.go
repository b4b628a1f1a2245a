package parser

import (
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

// ExprKind tags the closed set of expression variants.
type ExprKind uint8

const (
	ExprKindLiteral ExprKind = iota
	ExprKindGrouping
	ExprKindUnary
	ExprKindBinary
)

var exprKindNames = [...]string{
	ExprKindLiteral:  "Literal",
	ExprKindGrouping: "Grouping",
	ExprKindUnary:    "Unary",
	ExprKindBinary:   "Binary",
}

// String implements fmt.Stringer.
func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return fmt.Sprintf("ExprKind(%d)", uint8(k))
}

// Expr is an expression node. Nodes are immutable once built and exclusively own
// their children, so a tree never shares subtrees or contains cycles.
type Expr interface {
	Kind() ExprKind
}

type ExprLiteral struct {
	Value Value
}

type ExprGrouping struct {
	Expression Expr
}

type ExprUnary struct {
	Operator *token.Token
	Right    Expr
}

type ExprBinary struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

func (*ExprLiteral) Kind() ExprKind  { return ExprKindLiteral }
func (*ExprGrouping) Kind() ExprKind { return ExprKindGrouping }
func (*ExprUnary) Kind() ExprKind    { return ExprKindUnary }
func (*ExprBinary) Kind() ExprKind   { return ExprKindBinary }

var (
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprBinary)(nil)
)

// StmtKind tags the closed set of statement variants. Only Expression and Print
// are produced by the parser; the rest are reserved for the language extensions.
type StmtKind uint8

const (
	StmtKindBlock StmtKind = iota
	StmtKindClass
	StmtKindExpression
	StmtKindFunction
	StmtKindIf
	StmtKindPrint
	StmtKindReturn
	StmtKindVar
	StmtKindWhile
)

var stmtKindNames = [...]string{
	StmtKindBlock:      "Block",
	StmtKindClass:      "Class",
	StmtKindExpression: "Expression",
	StmtKindFunction:   "Function",
	StmtKindIf:         "If",
	StmtKindPrint:      "Print",
	StmtKindReturn:     "Return",
	StmtKindVar:        "Var",
	StmtKindWhile:      "While",
}

// String implements fmt.Stringer.
func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return fmt.Sprintf("StmtKind(%d)", uint8(k))
}

type Stmt interface {
	Kind() StmtKind
}

type StmtExpression struct {
	Expression Expr
}

type StmtPrint struct {
	Expression Expr
}

func (*StmtExpression) Kind() StmtKind { return StmtKindExpression }
func (*StmtPrint) Kind() StmtKind      { return StmtKindPrint }

var (
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtPrint)(nil)
)
