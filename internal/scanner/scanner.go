// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming lexer for realtree commands.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"nickandperla.net/realtree/internal/expr"
	"nickandperla.net/realtree/internal/token"
)

// Scanner tokenizes realtree input rune-by-rune.
type Scanner struct {
	reader  *bufio.Reader
	buf     strings.Builder
	peeked  *Item
	line    int // Current line number (1-based)
	col     int // Column of the last rune read (1-based, 0 before any)
	prevCol int // Column before the last newline, for UnreadRune
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Text  string      // Source text of the token
	Num   float64     // Value of a NUMBER
	Slot  expr.SlotID // Slot of a LETTER
	Line  int         // Line number where this token started
	Col   int         // Column where this token started
	Err   *Error      // Set for ILLEGAL items
}

// Error is a lexical error.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input. Lexical errors are returned
// as ILLEGAL items; the error return is reserved for read failures.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	for {
		r, err := s.read()
		if err == io.EOF {
			return &Item{Token: token.EOF, Line: s.line, Col: s.col + 1}, nil
		}
		if err != nil {
			return nil, err
		}

		line, col := s.line, s.col
		switch {
		case r == '\n':
			return &Item{Token: token.EOL, Text: "\n", Line: line - 1, Col: s.prevCol + 1}, nil
		case r == token.Separator:
			return &Item{Token: token.EOL, Text: ";", Line: line, Col: col}, nil
		case unicode.IsSpace(r):
			continue
		case isDigit(r):
			return s.scanNumber(r, line, col)
		case unicode.IsLetter(r):
			return s.scanWord(r, line, col)
		}

		if t, ok := token.FromRune(r); ok {
			return &Item{Token: t, Text: string(r), Line: line, Col: col}, nil
		}
		return s.illegal(string(r), line, col, "illegal character %q", r), nil
	}
}

// scanNumber scans digits, an optional '.', and more digits.
func (s *Scanner) scanNumber(first rune, line, col int) (*Item, error) {
	s.buf.Reset()
	s.buf.WriteRune(first)
	if err := s.acceptWhile(isDigit); err != nil {
		return nil, err
	}
	r, err := s.read()
	switch {
	case err == io.EOF:
	case err != nil:
		return nil, err
	case r == '.':
		s.buf.WriteRune(r)
		if err := s.acceptWhile(isDigit); err != nil {
			return nil, err
		}
	default:
		s.unread()
	}

	text := s.buf.String()
	v, perr := strconv.ParseFloat(text, 64)
	if perr != nil {
		return s.illegal(text, line, col, "illegal number %q", text), nil
	}
	return &Item{Token: token.NUMBER, Text: text, Num: v, Line: line, Col: col}, nil
}

// scanWord scans a run of letters, folded to lower case.
func (s *Scanner) scanWord(first rune, line, col int) (*Item, error) {
	s.buf.Reset()
	s.buf.WriteRune(unicode.ToLower(first))
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !unicode.IsLetter(r) {
			s.unread()
			break
		}
		s.buf.WriteRune(unicode.ToLower(r))
	}

	word := s.buf.String()
	if t, ok := token.Lookup(word); ok {
		return &Item{Token: t, Text: word, Line: line, Col: col}, nil
	}
	if runes := []rune(word); len(runes) == 1 {
		if id, ok := expr.SlotFromRune(runes[0]); ok {
			return &Item{Token: token.LETTER, Text: word, Slot: id, Line: line, Col: col}, nil
		}
	}
	return s.illegal(word, line, col, "illegal name %q", word), nil
}

func (s *Scanner) acceptWhile(pred func(rune) bool) error {
	for {
		r, err := s.read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !pred(r) {
			s.unread()
			return nil
		}
		s.buf.WriteRune(r)
	}
}

func (s *Scanner) illegal(text string, line, col int, format string, args ...any) *Item {
	return &Item{
		Token: token.ILLEGAL,
		Text:  text,
		Line:  line,
		Col:   col,
		Err:   &Error{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)},
	}
}

// read returns the next rune, tracking line and column.
func (s *Scanner) read() (rune, error) {
	r, _, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		s.line++
		s.prevCol = s.col
		s.col = 0
	} else {
		s.col++
	}
	return r, nil
}

// unread puts back the last rune returned by read.
func (s *Scanner) unread() {
	if err := s.reader.UnreadRune(); err != nil {
		return
	}
	if s.col == 0 {
		s.line--
		s.col = s.prevCol
	} else {
		s.col--
	}
}

// SkipLine discards input up to and including the next command separator.
// It is used to resynchronize after an error.
func (s *Scanner) SkipLine() error {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		if item.Token.EndsCommand() {
			return nil
		}
	}
	for {
		r, err := s.read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == '\n' || r == token.Separator {
			return nil
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
