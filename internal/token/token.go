// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines realtree token types and the keyword table.
package token

// Token represents a realtree token type.
type Token int

const (
	EOF Token = iota
	// EOL is a newline or ';' and ends a command.
	EOL
	// ILLEGAL marks a lexical error; the scanner reports the details.
	ILLEGAL

	NUMBER // 12, 12., 12.5
	LETTER // single-letter slot name

	// Keywords
	EVAL
	EXIT
	HELP
	RESET
	PRINT

	// Punctuation
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	LPAREN  // (
	RPAREN  // )
	ASSIGN  // =
	DOT     // . (never valid on its own)
)

// Separator ends a command the same way a newline does.
const Separator = ';'

var keywords = map[string]Token{
	"eval":  EVAL,
	"exit":  EXIT,
	"help":  HELP,
	"reset": RESET,
	"print": PRINT,
}

// Keywords returns the command keywords in display order.
func Keywords() []string {
	return []string{"eval", "print", "reset", "help", "exit"}
}

// Lookup returns the keyword token for a lowercased word, if any.
func Lookup(word string) (Token, bool) {
	t, ok := keywords[word]
	return t, ok
}

// FromRune returns the punctuation token for r.
func FromRune(r rune) (Token, bool) {
	switch r {
	case '+':
		return PLUS, true
	case '-':
		return MINUS, true
	case '*':
		return STAR, true
	case '/':
		return SLASH, true
	case '%':
		return PERCENT, true
	case '(':
		return LPAREN, true
	case ')':
		return RPAREN, true
	case '=':
		return ASSIGN, true
	case '.':
		return DOT, true
	}
	return ILLEGAL, false
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case EOL:
		return "EOL"
	case ILLEGAL:
		return "ILLEGAL"
	case NUMBER:
		return "NUMBER"
	case LETTER:
		return "LETTER"
	case EVAL:
		return "eval"
	case EXIT:
		return "exit"
	case HELP:
		return "help"
	case RESET:
		return "reset"
	case PRINT:
		return "print"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case ASSIGN:
		return "="
	case DOT:
		return "."
	}
	return "UNKNOWN"
}

// IsKeyword returns true if the token is a command keyword.
func (t Token) IsKeyword() bool {
	switch t {
	case EVAL, EXIT, HELP, RESET, PRINT:
		return true
	}
	return false
}

// EndsCommand returns true if the token terminates a command.
func (t Token) EndsCommand() bool {
	return t == EOL || t == EOF
}
