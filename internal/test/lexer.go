package test

import (
	"math/rand"
	"strings"
)

const validTokens = "var;function;if;else;while;main;x;y1;counter;fib;0;7;42;123456789;+;-;*;/;(;);;;{;};,;=;==;!=;<;<=;>;>=;&&;||"

// ValidTokens returns every lexeme GetRandomTokens draws from.
func ValidTokens() []string {
	return splitTokens()
}

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := splitTokens()

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// The semicolon is both a token and the separator, so it shows up as an
// empty field that has to be put back.
func splitTokens() []string {
	var out []string
	for _, s := range strings.Split(validTokens, ";") {
		if s == "" {
			s = ";"
		}

		out = append(out, s)
	}

	return out
}
