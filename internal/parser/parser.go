package parser

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// MaxNestingDepth bounds how deeply groupings and unary operators may nest,
// so hostile input fails with a parse error instead of exhausting the stack.
const MaxNestingDepth = 256

var (
	nilExpr       Expr   = nil
	nilStmt       Stmt   = nil
	nilStatements []Stmt = nil
)

type Parser interface {
	// Parse parses the whole token sequence.
	// If any statement fails to parse, no statements are returned and the error
	// joins every syntax error found after resynchronizing.
	Parse() ([]Stmt, error)
}

type parser struct {
	tokens  []token.Token
	current int
	depth   int
	err     error
}

func NewParser(tokens []token.Token) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	return &parser{
		tokens:  tokens,
		current: 0,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, err: %#v}", p.tokens, p.current, p.err)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, err: %v}", len(p.tokens), p.err)
}

// Parse implements Parser.
func (p *parser) Parse() ([]Stmt, error) {
	var statements []Stmt
	var errs []error

	for !p.isAtEnd() {
		stmt := p.statement()
		if p.err != nil {
			errs = append(errs, p.err)
			p.err = nil
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	switch len(errs) {
	case 0:
		return statements, nil
	case 1:
		return nilStatements, errs[0]
	}
	// if we are at error state, we do not return invalid ast tree
	return nilStatements, errors.Join(errs...)
}

func (p *parser) statement() Stmt {
	if p.match(token.PRINT) {
		return p.printStatement()
	}

	return p.expressionStatement()
}

func (p *parser) printStatement() Stmt {
	expr := p.expression()

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(loxerrors.ErrParseExpectedSemicolonTokenAfterPrintValue)
	}

	return &StmtPrint{Expression: expr}
}

func (p *parser) expressionStatement() Stmt {
	expr := p.expression()

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(loxerrors.ErrParseExpectedSemicolonTokenAfterExpr)
	}

	return &StmtExpression{Expression: expr}
}

func (p *parser) expression() Expr {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxNestingDepth {
		return p.reportExprError(loxerrors.ErrParseTooDeeplyNested)
	}

	return p.equality()
}

func (p *parser) equality() Expr {
	expr := p.comparison()

	for p.anyMatch(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) comparison() Expr {
	expr := p.term()

	for p.anyMatch(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) term() Expr {
	expr := p.factor()

	for p.anyMatch(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) factor() Expr {
	expr := p.unary()

	for p.anyMatch(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) unary() Expr {
	if p.anyMatch(token.BANG, token.MINUS) {
		operator := p.previous()

		p.depth++
		defer func() { p.depth-- }()
		if p.depth > MaxNestingDepth {
			return p.reportExprError(loxerrors.ErrParseTooDeeplyNested)
		}

		right := p.unary()
		return &ExprUnary{
			Operator: operator,
			Right:    right,
		}
	}

	return p.primary()
}

func (p *parser) primary() Expr {
	if p.match(token.FALSE) {
		return &ExprLiteral{Value: ValueBool(false)}
	}
	if p.match(token.TRUE) {
		return &ExprLiteral{Value: ValueBool(true)}
	}
	if p.match(token.NIL) {
		return &ExprLiteral{Value: NilValue}
	}

	if p.match(token.NUMBER) {
		return &ExprLiteral{Value: ValueFloat(p.previous().Literal.(float64))}
	}
	if p.match(token.STRING) {
		return &ExprLiteral{Value: ValueString(p.previous().Literal.(string))}
	}

	return p.grouping()
}

func (p *parser) grouping() Expr {
	if p.match(token.LEFT_PAREN) {
		expr := p.expression()
		if !p.match(token.RIGHT_PAREN) {
			return p.reportExprError(loxerrors.ErrParseExpectedRightParenToken)
		}
		return &ExprGrouping{Expression: expr}
	}

	return p.reportExprError(loxerrors.ErrParseUnexpectedToken)
}

func (p *parser) anyMatch(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isDone() && p.peek().Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// Be careful with isAtEnd, it does not check for parse errors.
// Use isDone instead.
// isAtEnd is used from top level Parse, synchronize and advance only.
func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) isDone() bool {
	// at the end, OR, have errors
	return p.isAtEnd() || p.err != nil
}

func (p *parser) reportStmtError(err error) Stmt {
	if p.err != nil {
		return nilStmt
	}

	p.err = loxerrors.NewParseError(p.peek(), err)

	return nilStmt
}

func (p *parser) reportExprError(err error) Expr {
	if p.err != nil {
		return nilExpr
	}

	p.err = loxerrors.NewParseError(p.peek(), err)

	return nilExpr
}

// synchronize discards tokens until the next likely statement boundary:
// just past a semicolon, or right before a statement keyword.
func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS,
			token.FUN,
			token.VAR,
			token.FOR,
			token.IF,
			token.WHILE,
			token.PRINT,
			token.RETURN:
			return
		}

		p.advance()
	}
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
