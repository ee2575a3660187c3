package cinder

import (
	"fmt"
	"io"
	"strings"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	TokenIdentifier TokenType = iota
	TokenInteger
	TokenPlus
	TokenMinus
	TokenTimes
	TokenDivide
	TokenOpenParentheses
	TokenCloseParentheses
	TokenSemicolon
	TokenEqual
	TokenDoubleEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenDoubleAmpersand
	TokenDoublePipe
	TokenOpenCurly
	TokenCloseCurly
	TokenComma
	TokenVar
	TokenFunction
	TokenIf
	TokenElse
	TokenWhile
)

var tokenNames = map[TokenType]string{
	TokenIdentifier:       "IDENTIFIER",
	TokenInteger:          "INTEGER_LITERAL",
	TokenPlus:             "PLUS",
	TokenMinus:            "MINUS",
	TokenTimes:            "TIMES",
	TokenDivide:           "DIVIDE",
	TokenOpenParentheses:  "LPAREN",
	TokenCloseParentheses: "RPAREN",
	TokenSemicolon:        "SEMICOLON",
	TokenEqual:            "EQUAL",
	TokenDoubleEqual:      "DOUBLE_EQUAL",
	TokenNotEqual:         "NOT_EQUAL",
	TokenLess:             "LESS",
	TokenLessEqual:        "LESS_EQUAL",
	TokenGreater:          "GREATER",
	TokenGreaterEqual:     "GREATER_EQUAL",
	TokenDoubleAmpersand:  "DOUBLE_AMPERSAND",
	TokenDoublePipe:       "DOUBLE_PIPE",
	TokenOpenCurly:        "LBRACE",
	TokenCloseCurly:       "RBRACE",
	TokenComma:            "COMMA",
	TokenVar:              "VAR",
	TokenFunction:         "FUNCTION",
	TokenIf:               "IF",
	TokenElse:             "ELSE",
	TokenWhile:            "WHILE",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var keywordTable = map[string]TokenType{
	"var":      TokenVar,
	"function": TokenFunction,
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
}

var operatorTable = map[string]TokenType{
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenTimes,
	"/":  TokenDivide,
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	";":  TokenSemicolon,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	",":  TokenComma,
	"=":  TokenEqual,
	"==": TokenDoubleEqual,
	"!=": TokenNotEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"&&": TokenDoubleAmpersand,
	"||": TokenDoublePipe,
}

// Operators whose first character is not a token on its own.
var pairOnly = map[rune]bool{
	'!': true,
	'&': true,
	'|': true,
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s:%s", t.Typ, t.Value)
}

// Tokenizer is the token stream consumed by the parser.
type Tokenizer interface {
	// Next consumes a token. Running out of input is a syntax error.
	Next() (Token, error)
	// Peek returns the k-th upcoming token (k >= 1) without consuming it,
	// or nil if the input ends before it.
	Peek(k int) (*Token, error)
	// Location is the lexer's current position in the input.
	Location() Location
}

// Lexer produces tokens lazily from a Source, buffering lookahead.
type Lexer struct {
	src       *Source
	lookahead []Token
	done      bool
	err       error

	start Location
	lex   strings.Builder
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		src: NewSource(reader, filename),
	}
}

func (l *Lexer) Next() (Token, error) {
	l.fill(1)
	if len(l.lookahead) == 0 {
		if l.err != nil {
			return Token{}, l.err
		}

		return Token{}, eofErrorf(l.Location(), "Unexpected end of input")
	}

	tok := l.lookahead[0]
	l.lookahead = l.lookahead[1:]

	return tok, nil
}

func (l *Lexer) Peek(k int) (*Token, error) {
	if k < 1 {
		return nil, runtimeErrorf("invalid lookahead %d", k)
	}

	l.fill(k)
	if len(l.lookahead) < k {
		// Input ended (or failed) before the requested token
		return nil, l.err
	}

	return &l.lookahead[k-1], nil
}

func (l *Lexer) Location() Location {
	return l.src.Location()
}

// All drains the remaining token stream.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Peek(1)
		if err != nil {
			return nil, err
		}

		if tok == nil {
			return tokens, nil
		}

		tokens = append(tokens, *tok)
		l.lookahead = l.lookahead[1:]
	}
}

func (l *Lexer) fill(k int) {
	for !l.done && l.err == nil && len(l.lookahead) < k {
		for state := defaultState; state != nil; {
			state = state(l)
		}
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.src.Location()

		switch r := l.src.Read(); {
		case r == EOF:
			l.done = true
			return nil
		case isSpace(r):
			continue
		case isDigit(r):
			l.begin(r)
			return numberState
		case isAlpha(r):
			l.begin(r)
			return identifierState
		default:
			l.begin(r)
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	l.readWhile(isDigit)

	return l.emit(TokenInteger)
}

func identifierState(l *Lexer) stateFunc {
	l.readWhile(isAlnum)

	if t, ok := keywordTable[l.lex.String()]; ok {
		return l.emit(t)
	}

	return l.emit(TokenIdentifier)
}

func operatorState(l *Lexer) stateFunc {
	first := []rune(l.lex.String())[0]

	// Some operators can be two runes
	if r := l.src.Read(); r != EOF {
		if tok, ok := operatorTable[string(first)+string(r)]; ok {
			l.lex.WriteRune(r)
			return l.emit(tok)
		}

		l.src.Unread()
	}

	if pairOnly[first] {
		return l.errorf("Unexpected character '%c' (expected '%c%c')", first, first, pairPartner(first))
	}

	if tok, ok := operatorTable[string(first)]; ok {
		return l.emit(tok)
	}

	return l.errorf("Unrecognized character '%c'", first)
}

func pairPartner(r rune) rune {
	if r == '!' {
		return '='
	}

	return r
}

func (l *Lexer) begin(r rune) {
	l.lex.Reset()
	l.lex.WriteRune(r)
}

func (l *Lexer) readWhile(pred func(rune) bool) {
	for {
		r := l.src.Read()
		if r == EOF {
			return
		}

		if !pred(r) {
			l.src.Unread()
			return
		}

		l.lex.WriteRune(r)
	}
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.err = syntaxErrorf(l.src.Location(), format, args...)

	return nil
}

func (l *Lexer) emit(t TokenType) stateFunc {
	l.lookahead = append(l.lookahead, Token{
		Typ:   t,
		Value: l.lex.String(),
		Loc:   l.start,
	})

	return nil
}

// Character classes follow the C locale: ASCII only.

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isAlnum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
