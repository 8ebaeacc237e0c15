package lexer

import (
	"fmt"
	"strconv"
)

// ErrorKind enumerates the lexical failures.
type ErrorKind string

const (
	UnexpectedCharacter ErrorKind = "UnexpectedCharacter"
	UnterminatedString  ErrorKind = "UnterminatedString"
)

// Error reports a lexical failure. Scanning stops at the first one.
type Error struct {
	Kind ErrorKind
	Line int
	Char byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message())
}

// Message is the error text without the line prefix.
func (e *Error) Message() string {
	if e.Kind == UnterminatedString {
		return "Unterminated string."
	}
	return fmt.Sprintf("Unexpected character %q.", e.Char)
}

// Scanner converts source text into tokens in a single left-to-right pass.
type Scanner struct {
	source string
	start  int
	cursor int
	line   int
	tokens []Token
}

// NewScanner creates a scanner over source.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Scan tokenizes source. The result always ends in a single EOF token.
func Scan(source string) ([]Token, error) {
	return NewScanner(source).ScanTokens()
}

// ScanTokens runs the scanner to completion.
func (s *Scanner) ScanTokens() ([]Token, error) {
	for !s.atEnd() {
		s.start = s.cursor
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, Token{Kind: KindEOF, Lexeme: "", Line: s.line})
	return s.tokens, nil
}

func (s *Scanner) scanToken() error {
	ch := s.advance()
	switch ch {
	case '(':
		s.add(KindLeftParen, nil)
	case ')':
		s.add(KindRightParen, nil)
	case '{':
		s.add(KindLeftBrace, nil)
	case '}':
		s.add(KindRightBrace, nil)
	case ',':
		s.add(KindComma, nil)
	case '.':
		s.add(KindDot, nil)
	case '-':
		s.add(KindMinus, nil)
	case '+':
		s.add(KindPlus, nil)
	case ';':
		s.add(KindSemicolon, nil)
	case '*':
		s.add(KindStar, nil)
	case '!':
		s.add(s.either('=', KindBangEqual, KindBang), nil)
	case '=':
		s.add(s.either('=', KindEqualEqual, KindEqual), nil)
	case '<':
		s.add(s.either('=', KindLessEqual, KindLess), nil)
	case '>':
		s.add(s.either('=', KindGreaterEqual, KindGreater), nil)
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.cursor++
			}
			return nil
		}
		s.add(KindSlash, nil)
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentifier()
		default:
			return &Error{Kind: UnexpectedCharacter, Line: s.line, Char: ch}
		}
	}
	return nil
}

func (s *Scanner) scanString() error {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.cursor++
	}
	if s.atEnd() {
		return &Error{Kind: UnterminatedString, Line: startLine}
	}
	s.cursor++ // closing quote
	value := s.source[s.start+1 : s.cursor-1]
	s.tokens = append(s.tokens, Token{Kind: KindString, Lexeme: s.source[s.start:s.cursor], Literal: value, Line: startLine})
	return nil
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.cursor++
	}
	// A decimal point needs at least one digit after it.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.cursor++
		for isDigit(s.peek()) {
			s.cursor++
		}
	}
	// Only digit runs reach here, so the sole possible error is ErrRange,
	// for which ParseFloat already returns +Inf.
	value, _ := strconv.ParseFloat(s.source[s.start:s.cursor], 64)
	s.add(KindNumber, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.cursor++
	}
	text := s.source[s.start:s.cursor]
	kind, ok := keywords[text]
	if !ok {
		kind, ok = builtins[text]
	}
	if !ok {
		kind = KindIdentifier
	}
	s.add(kind, nil)
}

func (s *Scanner) add(kind Kind, literal any) {
	s.tokens = append(s.tokens, Token{Kind: kind, Lexeme: s.source[s.start:s.cursor], Literal: literal, Line: s.line})
}

func (s *Scanner) either(expected byte, matched, otherwise Kind) Kind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.cursor] != expected {
		return false
	}
	s.cursor++
	return true
}

func (s *Scanner) advance() byte {
	ch := s.source[s.cursor]
	s.cursor++
	return ch
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.cursor]
}

func (s *Scanner) peekNext() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func (s *Scanner) atEnd() bool {
	return s.cursor >= len(s.source)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
