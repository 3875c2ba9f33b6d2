package scanner

import (
	"testing"

	"nickandperla.net/realtree/internal/expr"
	"nickandperla.net/realtree/internal/token"
)

func scanAll(t *testing.T, input string) []*Item {
	t.Helper()
	s := NewFromString(input)
	var items []*Item
	for {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		items = append(items, item)
		if item.Token == token.EOF {
			return items
		}
	}
}

func tokens(items []*Item) []token.Token {
	out := make([]token.Token, len(items))
	for i, it := range items {
		out[i] = it.Token
	}
	return out
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Token
	}{
		{"", []token.Token{token.EOF}},
		{"eval 1 + 2", []token.Token{token.EVAL, token.NUMBER, token.PLUS, token.NUMBER, token.EOF}},
		{"a = (b - 3) * -c", []token.Token{
			token.LETTER, token.ASSIGN, token.LPAREN, token.LETTER, token.MINUS, token.NUMBER,
			token.RPAREN, token.STAR, token.MINUS, token.LETTER, token.EOF,
		}},
		{"print; reset\nhelp", []token.Token{token.PRINT, token.EOL, token.RESET, token.EOL, token.HELP, token.EOF}},
		{"EXIT", []token.Token{token.EXIT, token.EOF}},
		{"x % 2 / y", []token.Token{token.LETTER, token.PERCENT, token.NUMBER, token.SLASH, token.LETTER, token.EOF}},
		{".5", []token.Token{token.DOT, token.NUMBER, token.EOF}},
		{"  \t\r\n", []token.Token{token.EOL, token.EOF}},
	}
	for _, tt := range tests {
		got := tokens(scanAll(t, tt.input))
		if len(got) != len(tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d: expected %v, got %v", tt.input, i, tt.want[i], got[i])
			}
		}
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"12.", 12},
		{"12.5", 12.5},
		{"007.250", 7.25},
	}
	for _, tt := range tests {
		items := scanAll(t, tt.input)
		if items[0].Token != token.NUMBER {
			t.Fatalf("%q: expected NUMBER, got %v", tt.input, items[0].Token)
		}
		if items[0].Num != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.want, items[0].Num)
		}
		if items[0].Text != tt.input {
			t.Errorf("%q: expected text %q, got %q", tt.input, tt.input, items[0].Text)
		}
	}
}

func TestScanLetterIsCaseInsensitive(t *testing.T) {
	items := scanAll(t, "Q")
	if items[0].Token != token.LETTER {
		t.Fatalf("expected LETTER, got %v", items[0].Token)
	}
	if items[0].Slot != expr.MustSlot('q') {
		t.Errorf("expected slot q, got %s", items[0].Slot)
	}
}

func TestScanIllegal(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"foo", `line 1:1: illegal name "foo"`},
		{"eval $", `line 1:6: illegal character '$'`},
		{"é", `line 1:1: illegal name "é"`},
	}
	for _, tt := range tests {
		var bad *Item
		for _, it := range scanAll(t, tt.input) {
			if it.Token == token.ILLEGAL {
				bad = it
				break
			}
		}
		if bad == nil {
			t.Errorf("%q: expected an ILLEGAL item", tt.input)
			continue
		}
		if bad.Err == nil || bad.Err.Error() != tt.msg {
			t.Errorf("%q: expected error '%s', got '%v'", tt.input, tt.msg, bad.Err)
		}
	}
}

func TestScanContinuesAfterIllegal(t *testing.T) {
	got := tokens(scanAll(t, "1 # 2"))
	want := []token.Token{token.NUMBER, token.ILLEGAL, token.NUMBER, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPositions(t *testing.T) {
	items := scanAll(t, "a = 1\n  eval b")
	want := []struct{ line, col int }{
		{1, 1}, {1, 3}, {1, 5}, {1, 6}, {2, 3}, {2, 8}, {2, 9},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, w := range want {
		if items[i].Line != w.line || items[i].Col != w.col {
			t.Errorf("item %d (%v): expected %d:%d, got %d:%d",
				i, items[i].Token, w.line, w.col, items[i].Line, items[i].Col)
		}
	}
}

func TestPeek(t *testing.T) {
	s := NewFromString("reset")
	p, err := s.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != n || n.Token != token.RESET {
		t.Errorf("expected Peek and Next to return the same RESET item")
	}
}

func TestSkipLine(t *testing.T) {
	s := NewFromString("eval 1 + ) junk\nprint")
	for i := 0; i < 4; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := s.SkipLine(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Token != token.PRINT {
		t.Errorf("expected PRINT after SkipLine, got %v", item.Token)
	}
	if s.Line() != 2 {
		t.Errorf("expected line 2, got %d", s.Line())
	}
}
