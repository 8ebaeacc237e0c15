package lexer

import "fmt"

// Kind identifies the lexical category of a token.
type Kind uint8

const (
	KindEOF Kind = iota

	// Punctuation
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindComma
	KindDot
	KindSemicolon

	// Operators
	KindMinus
	KindPlus
	KindSlash
	KindStar
	KindBang
	KindBangEqual
	KindEqual
	KindEqualEqual
	KindGreater
	KindGreaterEqual
	KindLess
	KindLessEqual

	// Literals
	KindIdentifier
	KindString
	KindNumber
	KindTrue
	KindFalse

	// Keywords
	KindVar
	KindPrint
	KindRepeat

	// Turtle verbs
	KindStart
	KindGo
	KindTurn
	KindLeft
	KindRight
	KindPillars
	KindMovingPillars
	KindStaircase

	// Builtin functions
	KindRandom
	KindSin
	KindCos
	KindTan
	KindAtan
)

var kindNames = [...]string{
	KindEOF:           "EOF",
	KindLeftParen:     "LEFT_PAREN",
	KindRightParen:    "RIGHT_PAREN",
	KindLeftBrace:     "LEFT_BRACE",
	KindRightBrace:    "RIGHT_BRACE",
	KindComma:         "COMMA",
	KindDot:           "DOT",
	KindSemicolon:     "SEMICOLON",
	KindMinus:         "MINUS",
	KindPlus:          "PLUS",
	KindSlash:         "SLASH",
	KindStar:          "STAR",
	KindBang:          "BANG",
	KindBangEqual:     "BANG_EQUAL",
	KindEqual:         "EQUAL",
	KindEqualEqual:    "EQUAL_EQUAL",
	KindGreater:       "GREATER",
	KindGreaterEqual:  "GREATER_EQUAL",
	KindLess:          "LESS",
	KindLessEqual:     "LESS_EQUAL",
	KindIdentifier:    "IDENTIFIER",
	KindString:        "STRING",
	KindNumber:        "NUMBER",
	KindTrue:          "TRUE",
	KindFalse:         "FALSE",
	KindVar:           "VAR",
	KindPrint:         "PRINT",
	KindRepeat:        "REPEAT",
	KindStart:         "START",
	KindGo:            "GO",
	KindTurn:          "TURN",
	KindLeft:          "LEFT",
	KindRight:         "RIGHT",
	KindPillars:       "PILLARS",
	KindMovingPillars: "MOVING_PILLARS",
	KindStaircase:     "STAIRCASE",
	KindRandom:        "RANDOM",
	KindSin:           "SIN",
	KindCos:           "COS",
	KindTan:           "TAN",
	KindAtan:          "ATAN",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// IsVerb reports whether the kind names a turtle drawing verb.
func (k Kind) IsVerb() bool {
	return k >= KindStart && k <= KindStaircase
}

// IsBuiltin reports whether the kind names a builtin math function.
func (k Kind) IsBuiltin() bool {
	return k >= KindRandom && k <= KindAtan
}

var keywords = map[string]Kind{
	"true":           KindTrue,
	"false":          KindFalse,
	"var":            KindVar,
	"print":          KindPrint,
	"repeat":         KindRepeat,
	"start":          KindStart,
	"go":             KindGo,
	"turn":           KindTurn,
	"left":           KindLeft,
	"right":          KindRight,
	"pillars":        KindPillars,
	"moving_pillars": KindMovingPillars,
	"staircase":      KindStaircase,
}

var builtins = map[string]Kind{
	"random": KindRandom,
	"sin":    KindSin,
	"cos":    KindCos,
	"tan":    KindTan,
	"atan":   KindAtan,
}

// Token is a single lexical unit. Literal holds a float64 for numbers and
// the unquoted text for strings.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

func (t Token) String() string {
	switch t.Kind {
	case KindNumber, KindString, KindIdentifier:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
	default:
		return t.Kind.String()
	}
}
