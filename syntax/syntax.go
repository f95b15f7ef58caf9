// Package syntax splits lines of source code into classified tokens
// and assigns each token a style category.
//
// Each line is tokenized on its own.
// Block comments and multi-line strings are not tracked across lines.
package syntax

import (
	"unicode"
	"unicode/utf8"

	"github.com/ozanyetkin/faux-code/lang"
)

// A Kind is the syntactic class of a token.
type Kind int

const (
	Whitespace Kind = iota
	Comment
	String
	Numeric
	Keyword
	Identifier
	Operator
)

var kindNames = [...]string{
	Whitespace: "Whitespace",
	Comment:    "Comment",
	String:     "String",
	Numeric:    "Numeric",
	Keyword:    "Keyword",
	Identifier: "Identifier",
	Operator:   "Operator",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// A Token is a classified substring of a line.
type Token struct {
	Kind Kind
	// Text is exactly the text consumed from the line.
	Text string
}

// Tokenize returns the tokens of a single line.
//
// The concatenated Text of the tokens is the line.
// A "//" comment runs to the end of the line.
// A string missing its closing quote runs to the end of the line.
// Bytes that are not valid UTF-8 become single-byte Operator tokens.
func Tokenize(line string, l lang.Lang) []Token {
	keywords := lang.Keywords(l)
	var toks []Token
	for i := 0; i < len(line); {
		r, w := utf8.DecodeRuneInString(line[i:])
		j := i + w
		var k Kind
		switch {
		case unicode.IsSpace(r):
			k = Whitespace

		case r == '/' && j < len(line) && line[j] == '/':
			return append(toks, Token{Kind: Comment, Text: line[i:]})

		case r == '"' || r == '\'' || r == '`':
			k, j = String, quoted(line, j, byte(r))

		case '0' <= r && r <= '9':
			k, j = Numeric, scan(line, j, numeric)

		case identStart(r):
			j = scan(line, j, ident)
			if keywords[line[i:j]] {
				k = Keyword
			} else {
				k = Identifier
			}

		default:
			k = Operator
		}
		toks = append(toks, Token{Kind: k, Text: line[i:j]})
		i = j
	}
	return toks
}

// quoted returns the end of a string whose opening quote ends at i.
// A backslash and the rune after it are consumed as a pair.
func quoted(line string, i int, quote byte) int {
	for i < len(line) {
		switch line[i] {
		case quote:
			return i + 1
		case '\\':
			i++
			if i >= len(line) {
				return i
			}
		}
		_, w := utf8.DecodeRuneInString(line[i:])
		i += w
	}
	return i
}

func scan(line string, i int, f func(rune) bool) int {
	for i < len(line) {
		r, w := utf8.DecodeRuneInString(line[i:])
		if r == utf8.RuneError && w == 1 || !f(r) {
			break
		}
		i += w
	}
	return i
}

func identStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func ident(r rune) bool {
	return identStart(r) || unicode.IsDigit(r)
}

func numeric(r rune) bool {
	switch r {
	case '.', '_', 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return '0' <= r && r <= '9'
}
