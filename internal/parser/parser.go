package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"nickandperla.net/realtree/internal/expr"
	"nickandperla.net/realtree/internal/scanner"
	"nickandperla.net/realtree/internal/token"
)

// SyntaxError reports input that does not match the command grammar.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: syntax error: %s", e.Line, e.Col, e.Msg)
}

// Parser reads commands from a scanner.
//
// Grammar:
//
//	line    := [command] EOL | EOF
//	command := "help" | "exit" | "print" | "reset"
//	         | "eval" expr
//	         | LETTER "=" expr
//	expr    := term { ("+" | "-") term }
//	term    := unary { ("*" | "/" | "%") unary }
//	unary   := "-" unary | primary
//	primary := NUMBER | LETTER | "(" expr ")"
type Parser struct {
	scan *scanner.Scanner
}

// New creates a Parser reading from r.
func New(r io.Reader) *Parser {
	return &Parser{scan: scanner.New(r)}
}

// NewFromString creates a Parser reading from s.
func NewFromString(s string) *Parser {
	return New(strings.NewReader(s))
}

// Next returns the next command. Empty commands are skipped. At the end of
// input it returns io.EOF. After a lexical (*scanner.Error) or syntax
// (*SyntaxError) error the rest of the offending command is discarded, so
// calling Next again continues with the following command.
func (p *Parser) Next() (Command, error) {
	for {
		item, err := p.scan.Peek()
		if err != nil {
			return nil, err
		}
		switch item.Token {
		case token.EOF:
			return nil, io.EOF
		case token.EOL:
			p.scan.Next()
			continue
		}

		cmd, bad, err := p.parseCommand()
		if err != nil {
			if bad != nil && !bad.Token.EndsCommand() {
				if serr := p.scan.SkipLine(); serr != nil {
					return nil, serr
				}
			}
			return nil, err
		}
		return cmd, nil
	}
}

// ParseExpr parses a single expression that must make up all of s.
func ParseExpr(s string) (expr.Node, error) {
	p := NewFromString(s)
	n, _, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	item, err := p.scan.Next()
	if err != nil {
		return nil, err
	}
	if item.Token != token.EOF {
		return nil, unexpected(item, "end of expression")
	}
	return n, nil
}

// parseCommand parses one command and its terminator. On error it also
// returns the offending item, which has been consumed.
func (p *Parser) parseCommand() (Command, *scanner.Item, error) {
	item, err := p.scan.Next()
	if err != nil {
		return nil, nil, err
	}

	var cmd Command
	switch item.Token {
	case token.HELP:
		cmd = Help{}
	case token.EXIT:
		cmd = Exit{}
	case token.PRINT:
		cmd = Print{}
	case token.RESET:
		cmd = Reset{}
	case token.EVAL:
		tree, bad, err := p.parseExpr()
		if err != nil {
			return nil, bad, err
		}
		cmd = Eval{Tree: tree}
	case token.LETTER:
		eq, err := p.scan.Next()
		if err != nil {
			return nil, nil, err
		}
		if eq.Token != token.ASSIGN {
			return nil, eq, unexpected(eq, "'=' after slot name")
		}
		tree, bad, err := p.parseExpr()
		if err != nil {
			return nil, bad, err
		}
		cmd = Assign{Slot: item.Slot, Tree: tree}
	case token.ILLEGAL:
		return nil, item, item.Err
	default:
		return nil, item, unexpected(item, "a command")
	}

	end, err := p.scan.Next()
	if err != nil {
		return nil, nil, err
	}
	switch {
	case end.Token == token.ILLEGAL:
		return nil, end, end.Err
	case !end.Token.EndsCommand():
		return nil, end, unexpected(end, "end of command")
	}
	return cmd, nil, nil
}

func (p *Parser) parseExpr() (expr.Node, *scanner.Item, error) {
	left, bad, err := p.parseTerm()
	if err != nil {
		return nil, bad, err
	}
	for {
		item, err := p.scan.Peek()
		if err != nil {
			return nil, nil, err
		}
		var op expr.Op
		switch item.Token {
		case token.PLUS:
			op = expr.Add
		case token.MINUS:
			op = expr.Sub
		default:
			return left, nil, nil
		}
		p.scan.Next()
		right, bad, err := p.parseTerm()
		if err != nil {
			return nil, bad, err
		}
		left = expr.NewBinary(op, left, right)
	}
}

func (p *Parser) parseTerm() (expr.Node, *scanner.Item, error) {
	left, bad, err := p.parseUnary()
	if err != nil {
		return nil, bad, err
	}
	for {
		item, err := p.scan.Peek()
		if err != nil {
			return nil, nil, err
		}
		var op expr.Op
		switch item.Token {
		case token.STAR:
			op = expr.Mul
		case token.SLASH:
			op = expr.Div
		case token.PERCENT:
			op = expr.Rem
		default:
			return left, nil, nil
		}
		p.scan.Next()
		right, bad, err := p.parseUnary()
		if err != nil {
			return nil, bad, err
		}
		left = expr.NewBinary(op, left, right)
	}
}

func (p *Parser) parseUnary() (expr.Node, *scanner.Item, error) {
	item, err := p.scan.Peek()
	if err != nil {
		return nil, nil, err
	}
	if item.Token == token.MINUS {
		p.scan.Next()
		child, bad, err := p.parseUnary()
		if err != nil {
			return nil, bad, err
		}
		return expr.NewNegate(child), nil, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (expr.Node, *scanner.Item, error) {
	item, err := p.scan.Next()
	if err != nil {
		return nil, nil, err
	}
	switch item.Token {
	case token.NUMBER:
		return expr.NewLiteral(item.Num), nil, nil
	case token.LETTER:
		return expr.NewReference(item.Slot), nil, nil
	case token.LPAREN:
		inner, bad, err := p.parseExpr()
		if err != nil {
			return nil, bad, err
		}
		closing, err := p.scan.Next()
		if err != nil {
			return nil, nil, err
		}
		if closing.Token != token.RPAREN {
			return nil, closing, unexpected(closing, "')'")
		}
		return inner, nil, nil
	case token.ILLEGAL:
		return nil, item, item.Err
	}
	return nil, item, unexpected(item, "a number, slot name or '('")
}

func unexpected(item *scanner.Item, want string) *SyntaxError {
	return &SyntaxError{
		Line: item.Line,
		Col:  item.Col,
		Msg:  fmt.Sprintf("unexpected %s, expected %s", describe(item), want),
	}
}

func describe(item *scanner.Item) string {
	switch item.Token {
	case token.EOF:
		return "end of input"
	case token.EOL:
		return "end of command"
	case token.NUMBER, token.LETTER:
		return strconv.Quote(item.Text)
	}
	if item.Token.IsKeyword() {
		return "keyword " + strconv.Quote(item.Text)
	}
	return strconv.Quote(item.Token.String())
}
