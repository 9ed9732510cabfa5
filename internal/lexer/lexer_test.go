// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.
package lexer

import (
	"testing"

	"github.com/nanocc/nanocc/internal/token"
)

func kinds(src string) []token.Kind {
	l := New([]byte(src))
	var out []token.Kind
	for {
		tk := l.NextToken()
		out = append(out, tk.Kind)
		if tk.Kind == token.EOF {
			return out
		}
	}
}

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	got := kinds("(){};,+-*/=")
	want := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMICOLON,
		token.COMMA, token.PLUS, token.MINUS, token.STAR, token.SLASH, token.ASSIGN,
		token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNextTokenKeywordVsIdentifier(t *testing.T) {
	l := New([]byte("int x return ret"))
	if tk := l.NextToken(); tk.Kind != token.KW_INT {
		t.Fatalf("got %v, want KW_INT", tk.Kind)
	}
	if tk := l.NextToken(); tk.Kind != token.IDENT || tk.Text != "x" {
		t.Fatalf("got %v %q, want IDENT x", tk.Kind, tk.Text)
	}
	if tk := l.NextToken(); tk.Kind != token.KW_RETURN {
		t.Fatalf("got %v, want KW_RETURN", tk.Kind)
	}
	if tk := l.NextToken(); tk.Kind != token.IDENT || tk.Text != "ret" {
		t.Fatalf("got %v %q, want IDENT ret (must not prefix-match a keyword)", tk.Kind, tk.Text)
	}
}

func TestLexNumberDecimal(t *testing.T) {
	l := New([]byte("42"))
	tk := l.NextToken()
	if tk.Kind != token.INT_LITERAL || tk.IntValue != 42 {
		t.Fatalf("got %v %d, want INT_LITERAL 42", tk.Kind, tk.IntValue)
	}
	if !tk.IsSigned || tk.IsLong {
		t.Errorf("42 should default to signed, non-long")
	}
}

func TestLexNumberHexOctalBinary(t *testing.T) {
	cases := []struct {
		src  string
		want uint64
	}{
		{"0x2A", 42},
		{"052", 42}, // octal
		{"0b101010", 42},
	}
	for _, c := range cases {
		l := New([]byte(c.src))
		tk := l.NextToken()
		if tk.Kind != token.INT_LITERAL || tk.IntValue != c.want {
			t.Errorf("lexing %q: got %v %d, want INT_LITERAL %d", c.src, tk.Kind, tk.IntValue, c.want)
		}
	}
}

func TestLexNumberSuffixes(t *testing.T) {
	l := New([]byte("10UL"))
	tk := l.NextToken()
	if tk.Kind != token.INT_LITERAL || tk.IntValue != 10 {
		t.Fatalf("got %v %d, want INT_LITERAL 10", tk.Kind, tk.IntValue)
	}
	if tk.IsSigned {
		t.Errorf("U suffix should mark the literal unsigned")
	}
	if !tk.IsLong {
		t.Errorf("L suffix should mark the literal long")
	}
}

func TestLexNumberTrailingGarbageIsInvalid(t *testing.T) {
	l := New([]byte("123abc"))
	tk := l.NextToken()
	if tk.Kind != token.INVALID {
		t.Fatalf("got %v, want INVALID for a digit run glued to letters", tk.Kind)
	}
}

func TestNextTokenTracksLineAndColumn(t *testing.T) {
	l := New([]byte("int\nx"))
	l.NextToken() // int
	tk := l.NextToken()
	if tk.Span.Start.Line != 2 {
		t.Errorf("x should be on line 2, got line %d", tk.Span.Start.Line)
	}
	if tk.Span.Start.Column != 1 {
		t.Errorf("x should be at column 1, got column %d", tk.Span.Start.Column)
	}
}
