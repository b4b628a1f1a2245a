package scanner

import (
	"errors"
	"maps"
	"strconv"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// Scanner turns source text into a token sequence terminated by EOF.
type Scanner interface {
	Scan() ([]token.Token, error)
}

var reservedKeywords = map[string]token.TokenType{
	"and":    token.AND,
	"class":  token.CLASS,
	"else":   token.ELSE,
	"false":  token.FALSE,
	"for":    token.FOR,
	"fun":    token.FUN,
	"if":     token.IF,
	"nil":    token.NIL,
	"or":     token.OR,
	"print":  token.PRINT,
	"return": token.RETURN,
	"super":  token.SUPER,
	"this":   token.THIS,
	"true":   token.TRUE,
	"var":    token.VAR,
	"while":  token.WHILE,
}

// Keywords returns a copy of the reserved word table.
func Keywords() map[string]token.TokenType {
	return maps.Clone(reservedKeywords)
}

// single rune lexemes that never start a longer one
var punctuation = map[rune]token.TokenType{
	'(': token.LEFT_PAREN,
	')': token.RIGHT_PAREN,
	'{': token.LEFT_BRACE,
	'}': token.RIGHT_BRACE,
	',': token.COMMA,
	'.': token.DOT,
	'-': token.MINUS,
	'+': token.PLUS,
	';': token.SEMICOLON,
	'*': token.STAR,
}

// operators that become a different token when followed by '='
var withEqual = map[rune][2]token.TokenType{
	'!': {token.BANG, token.BANG_EQUAL},
	'=': {token.EQUAL, token.EQUAL_EQUAL},
	'<': {token.LESS, token.LESS_EQUAL},
	'>': {token.GREATER, token.GREATER_EQUAL},
}

type scanner struct {
	source               []rune
	tokens               []token.Token
	start, current, line int
	err                  error
}

// NewScanner returns a new Scanner.
// A Scanner is single use and owns all of its cursor state.
func NewScanner(input string) Scanner {
	return &scanner{source: []rune(input), line: 1}
}

// Scan implements Scanner.
// On error no tokens are returned.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() && s.err == nil {
		s.start = s.current
		s.scanToken()
	}

	if s.err != nil {
		return nil, s.err
	}

	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line))
	return s.tokens, nil
}

func (s *scanner) scanToken() {
	c := s.advance()

	if t, ok := punctuation[c]; ok {
		s.addToken(t)
		return
	}
	if pair, ok := withEqual[c]; ok {
		if s.match('=') {
			s.addToken(pair[1])
		} else {
			s.addToken(pair[0])
		}
		return
	}

	switch {
	case c == '/' && s.match('/'):
		s.skipWhile(func(r rune) bool { return r != '\n' })
	case c == '/' && s.match('*'):
		s.blockComment()
	case c == '/':
		s.addToken(token.SLASH)
	case c == ' ', c == '\r', c == '\t', c == '\n':
		// whitespace
	case c == '"':
		s.string()
	case isDigit(c):
		s.number()
	case isAlpha(c):
		s.identifier()
	default:
		s.err = loxerrors.NewScanError(s.line, loxerrors.ErrScanUnexpectedCharacter, strconv.QuoteRune(c))
	}
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// peekAt looks offset runes past the cursor; NUL past the end.
func (s *scanner) peekAt(offset int) rune {
	if s.current+offset >= len(s.source) {
		return 0
	}
	return s.source[s.current+offset]
}

func (s *scanner) peek() rune {
	return s.peekAt(0)
}

// advance consumes one rune; the line counter follows every consumed newline,
// including ones inside strings and comments.
func (s *scanner) advance() rune {
	c := s.source[s.current]
	if c == '\n' {
		s.line++
	}
	s.current++
	return c
}

func (s *scanner) match(expected rune) bool {
	if s.isAtEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *scanner) skipWhile(accept func(rune) bool) {
	for !s.isAtEnd() && accept(s.peek()) {
		s.advance()
	}
}

func (s *scanner) lexeme() string {
	return string(s.source[s.start:s.current])
}

func (s *scanner) addToken(t token.TokenType) {
	s.addTokenLiteral(t, nil)
}

func (s *scanner) addTokenLiteral(t token.TokenType, literal any) {
	s.tokens = append(s.tokens, token.NewToken(t, s.lexeme(), literal, s.line))
}

// blockComment skips a /* */ comment; comments nest.
func (s *scanner) blockComment() {
	for depth := 1; depth > 0; {
		switch {
		case s.isAtEnd():
			s.err = loxerrors.NewScanError(s.line, loxerrors.ErrScanUnterminatedComment, "")
			return
		case s.peek() == '*' && s.peekAt(1) == '/':
			depth--
			s.current += 2
		case s.peek() == '/' && s.peekAt(1) == '*':
			depth++
			s.current += 2
		default:
			s.advance()
		}
	}
}

func (s *scanner) string() {
	s.skipWhile(func(r rune) bool { return r != '"' })
	if s.isAtEnd() {
		s.err = loxerrors.NewScanError(s.line, loxerrors.ErrScanUnterminatedString, "")
		return
	}
	s.advance()

	s.addTokenLiteral(token.STRING, string(s.source[s.start+1:s.current-1]))
}

func (s *scanner) number() {
	s.skipWhile(isDigit)
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance()
		s.skipWhile(isDigit)
	}

	value, err := strconv.ParseFloat(s.lexeme(), 64)
	// out of range digit runs saturate to +Inf
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		s.err = loxerrors.NewScanError(s.line, err, "")
		return
	}
	s.addTokenLiteral(token.NUMBER, value)
}

func (s *scanner) identifier() {
	s.skipWhile(isAlphaNumeric)

	tokenType, reserved := reservedKeywords[s.lexeme()]
	if !reserved {
		tokenType = token.IDENTIFIER
	}
	s.addToken(tokenType)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}

var _ Scanner = (*scanner)(nil)
