package cinder

import (
	"strings"
	"testing"

	"go.cinder.dev/internal/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(line, col int) Location {
	return Location{Filename: "testing", Line: line, Col: col}
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect []Token
	}{
		{
			"function main() {}",
			false,
			[]Token{
				{TokenFunction, "function", loc(1, 1)},
				{TokenIdentifier, "main", loc(1, 10)},
				{TokenOpenParentheses, "(", loc(1, 14)},
				{TokenCloseParentheses, ")", loc(1, 15)},
				{TokenOpenCurly, "{", loc(1, 17)},
				{TokenCloseCurly, "}", loc(1, 18)},
			},
		},
		{
			"var a;\na = 40 + 2;",
			false,
			[]Token{
				{TokenVar, "var", loc(1, 1)},
				{TokenIdentifier, "a", loc(1, 5)},
				{TokenSemicolon, ";", loc(1, 6)},
				{TokenIdentifier, "a", loc(2, 1)},
				{TokenEqual, "=", loc(2, 3)},
				{TokenInteger, "40", loc(2, 5)},
				{TokenPlus, "+", loc(2, 8)},
				{TokenInteger, "2", loc(2, 10)},
				{TokenSemicolon, ";", loc(2, 11)},
			},
		},
		{
			"a==b!=c<=d>=e<f>g&&h||i",
			false,
			[]Token{
				{TokenIdentifier, "a", loc(1, 1)},
				{TokenDoubleEqual, "==", loc(1, 2)},
				{TokenIdentifier, "b", loc(1, 4)},
				{TokenNotEqual, "!=", loc(1, 5)},
				{TokenIdentifier, "c", loc(1, 7)},
				{TokenLessEqual, "<=", loc(1, 8)},
				{TokenIdentifier, "d", loc(1, 10)},
				{TokenGreaterEqual, ">=", loc(1, 11)},
				{TokenIdentifier, "e", loc(1, 13)},
				{TokenLess, "<", loc(1, 14)},
				{TokenIdentifier, "f", loc(1, 15)},
				{TokenGreater, ">", loc(1, 16)},
				{TokenIdentifier, "g", loc(1, 17)},
				{TokenDoubleAmpersand, "&&", loc(1, 18)},
				{TokenIdentifier, "h", loc(1, 20)},
				{TokenDoublePipe, "||", loc(1, 21)},
				{TokenIdentifier, "i", loc(1, 23)},
			},
		},
		{
			"if else while ifx x1 1x",
			false,
			[]Token{
				{TokenIf, "if", loc(1, 1)},
				{TokenElse, "else", loc(1, 4)},
				{TokenWhile, "while", loc(1, 9)},
				{TokenIdentifier, "ifx", loc(1, 15)},
				{TokenIdentifier, "x1", loc(1, 19)},
				{TokenInteger, "1", loc(1, 22)},
				{TokenIdentifier, "x", loc(1, 23)},
			},
		},
		{
			"f(a, b) * (c - d) / e",
			false,
			[]Token{
				{TokenIdentifier, "f", loc(1, 1)},
				{TokenOpenParentheses, "(", loc(1, 2)},
				{TokenIdentifier, "a", loc(1, 3)},
				{TokenComma, ",", loc(1, 4)},
				{TokenIdentifier, "b", loc(1, 6)},
				{TokenCloseParentheses, ")", loc(1, 7)},
				{TokenTimes, "*", loc(1, 9)},
				{TokenOpenParentheses, "(", loc(1, 11)},
				{TokenIdentifier, "c", loc(1, 12)},
				{TokenMinus, "-", loc(1, 14)},
				{TokenIdentifier, "d", loc(1, 16)},
				{TokenCloseParentheses, ")", loc(1, 17)},
				{TokenDivide, "/", loc(1, 19)},
				{TokenIdentifier, "e", loc(1, 21)},
			},
		},
		{
			"x =",
			false,
			[]Token{
				{TokenIdentifier, "x", loc(1, 1)},
				{TokenEqual, "=", loc(1, 3)},
			},
		},
		{
			"  \t\n  ",
			false,
			nil,
		},
		{
			"a & b",
			true,
			nil,
		},
		{
			"a | b",
			true,
			nil,
		},
		{
			"!x",
			true,
			nil,
		},
		{
			"@",
			true,
			nil,
		},
		{
			"únicode",
			true,
			nil,
		},
	}

	for _, c := range cases {
		l := NewLexer(strings.NewReader(c.data), "testing")

		toks, err := l.All()
		if c.fail {
			assert.Error(t, err, c.data)

			var se *SyntaxError
			assert.ErrorAs(t, err, &se, c.data)
		} else {
			assert.NoError(t, err, c.data)
		}

		assert.Equal(t, c.expect, toks, c.data)
	}
}

func TestLexerErrorMessages(t *testing.T) {
	cases := []struct {
		data string
		msg  string
	}{
		{"a & b", "Unexpected character '&' (expected '&&')"},
		{"a | b", "Unexpected character '|' (expected '||')"},
		{"a ! b", "Unexpected character '!' (expected '!=')"},
		{"#", "Unrecognized character '#'"},
	}

	for _, c := range cases {
		_, err := NewLexer(strings.NewReader(c.data), "testing").All()
		require.Error(t, err)
		assert.Equal(t, c.msg, ErrorMessage(err))
	}
}

func TestLexerPeek(t *testing.T) {
	l := NewLexer(strings.NewReader("x = 1;"), "testing")

	second, err := l.Peek(2)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, TokenEqual, second.Typ)

	first, err := l.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, TokenIdentifier, first.Typ)

	beyond, err := l.Peek(5)
	require.NoError(t, err)
	assert.Nil(t, beyond)

	for _, typ := range []TokenType{TokenIdentifier, TokenEqual, TokenInteger, TokenSemicolon} {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, typ, tok.Typ)
	}

	_, err = l.Next()
	require.Error(t, err)
	assert.True(t, IsIncomplete(err))
	assert.Equal(t, "Unexpected end of input", ErrorMessage(err))
}

// A lexing error past the requested lookahead does not hide earlier tokens.
func TestLexerPeekBeforeError(t *testing.T) {
	l := NewLexer(strings.NewReader("x @"), "testing")

	tok, err := l.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, "x", tok.Value)

	_, err = l.Peek(2)
	assert.Error(t, err)
}

func TestLexerRoundTrip(t *testing.T) {
	for n := 0; n < 50; n++ {
		data := test.GetRandomTokens(200)

		first, err := NewLexer(strings.NewReader(data), "testing").All()
		require.NoError(t, err, data)

		lexemes := make([]string, 0, len(first))
		for _, tok := range first {
			lexemes = append(lexemes, tok.Value)
		}

		second, err := NewLexer(strings.NewReader(strings.Join(lexemes, " ")), "testing").All()
		require.NoError(t, err)
		require.Len(t, second, len(first))

		for i := range first {
			assert.Equal(t, first[i].Typ, second[i].Typ)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "INTEGER_LITERAL", TokenInteger.String())
	assert.Equal(t, "DOUBLE_PIPE", TokenDoublePipe.String())
	assert.Equal(t, "WHILE", TokenWhile.String())
	assert.Equal(t, "LBRACE:{", Token{Typ: TokenOpenCurly, Value: "{"}.String())
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)
		l := NewLexer(strings.NewReader(data), "bench")

		var err error
		b.StartTimer()

		benchResult, err = l.All()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
